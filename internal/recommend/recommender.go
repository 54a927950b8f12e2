package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pathwise/backend/internal/mastery"
)

// DefaultFreshnessWindow is how long a cached recommendation list stays
// valid without recomputation.
const DefaultFreshnessWindow = 24 * time.Hour

// ComputeError wraps a failed recommendation computation, typically a
// mastery lookup failure. The existing cache entry is left untouched.
type ComputeError struct {
	LearnerID string
	Err       error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("computing recommendations for %s: %v", e.LearnerID, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// RecommenderConfig holds dependencies for the recommender.
type RecommenderConfig struct {
	Engine          *Engine
	Mastery         mastery.Store
	Cache           CacheStore      // nil means in-memory
	FreshnessWindow time.Duration   // zero means DefaultFreshnessWindow
	Now             func() time.Time // zero means time.Now
}

// Recommender serves recommendation lists with a per-learner freshness
// cache. Recomputation for a given learner is single-flight: under
// concurrent load exactly one build runs and every waiting caller shares
// its result. Unrelated learners never contend.
type Recommender struct {
	engine  *Engine
	mastery mastery.Store
	cache   CacheStore
	window  time.Duration
	now     func() time.Time
	flight  singleflight.Group
}

// NewRecommender creates a recommender.
func NewRecommender(cfg RecommenderConfig) *Recommender {
	cache := cfg.Cache
	if cache == nil {
		cache = NewMemoryCache()
	}
	window := cfg.FreshnessWindow
	if window == 0 {
		window = DefaultFreshnessWindow
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Recommender{
		engine:  cfg.Engine,
		mastery: cfg.Mastery,
		cache:   cache,
		window:  window,
		now:     now,
	}
}

// Get returns the learner's recommendations, serving the cached list when
// it is younger than the freshness window.
func (r *Recommender) Get(ctx context.Context, learnerID string) ([]Recommendation, error) {
	if entry, ok := r.cached(ctx, learnerID); ok {
		return entry.Recommendations, nil
	}
	return r.build(ctx, learnerID, false)
}

// Refresh recomputes the learner's recommendations regardless of cache
// freshness, still under the single-flight discipline.
func (r *Recommender) Refresh(ctx context.Context, learnerID string) ([]Recommendation, error) {
	return r.build(ctx, learnerID, true)
}

func (r *Recommender) cached(ctx context.Context, learnerID string) (CacheEntry, bool) {
	entry, ok, err := r.cache.Get(ctx, learnerID)
	if err != nil {
		// A broken cache degrades to recomputation, it never fails the
		// request.
		slog.Warn("recommendation cache read failed", "learner_id", learnerID, "error", err)
		return CacheEntry{}, false
	}
	if !ok || r.now().Sub(entry.ComputedAt) >= r.window {
		return CacheEntry{}, false
	}
	return entry, true
}

func (r *Recommender) build(ctx context.Context, learnerID string, force bool) ([]Recommendation, error) {
	v, err, _ := r.flight.Do(learnerID, func() (any, error) {
		// Callers that lost the race to a just-finished build get the
		// fresh entry without recomputing.
		if !force {
			if entry, ok := r.cached(ctx, learnerID); ok {
				return entry.Recommendations, nil
			}
		}

		m, err := r.mastery.MasteryMap(ctx, learnerID)
		if err != nil {
			return nil, &ComputeError{LearnerID: learnerID, Err: err}
		}

		recs, err := r.engine.NextTopics(m)
		if err != nil {
			return nil, &ComputeError{LearnerID: learnerID, Err: err}
		}

		entry := CacheEntry{Recommendations: recs, ComputedAt: r.now()}
		if err := r.cache.Set(ctx, learnerID, entry); err != nil {
			slog.Warn("recommendation cache write failed", "learner_id", learnerID, "error", err)
		}

		slog.Info("recommendations computed", "learner_id", learnerID, "count", len(recs))
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Recommendation), nil
}
