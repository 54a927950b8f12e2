package recommend

import (
	"context"
	"sync"
	"time"
)

// CacheEntry is one learner's last computed recommendation list.
type CacheEntry struct {
	Recommendations []Recommendation `json:"recommendations"`
	ComputedAt      time.Time        `json:"computedAt"`
}

// CacheStore persists recommendation cache entries keyed by learner ID.
// Staleness is judged by the Recommender, not the store; a store may
// additionally expire entries on its own (TTL).
type CacheStore interface {
	Get(ctx context.Context, learnerID string) (CacheEntry, bool, error)
	Set(ctx context.Context, learnerID string, entry CacheEntry) error
}

// MemoryCache is an in-memory CacheStore implementation.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CacheEntry)}
}

func (c *MemoryCache) Get(_ context.Context, learnerID string) (CacheEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[learnerID]
	return entry, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, learnerID string, entry CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[learnerID] = entry
	return nil
}
