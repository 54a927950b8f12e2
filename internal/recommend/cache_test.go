package recommend_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pathwise/backend/internal/recommend"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	cache := recommend.NewMemoryCache()
	ctx := t.Context()

	_, ok, err := cache.Get(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() on empty cache should miss")
	}

	entry := recommend.CacheEntry{
		Recommendations: []recommend.Recommendation{{TopicID: "Arrays", Confidence: 0.8}},
		ComputedAt:      time.Now(),
	}
	if err := cache.Set(ctx, "learner-1", entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := cache.Get(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0].TopicID != "Arrays" {
		t.Errorf("Get() = %+v, want the stored entry", got)
	}
}

func TestMemoryCache_EntriesAreIndependent(t *testing.T) {
	cache := recommend.NewMemoryCache()
	ctx := t.Context()

	_ = cache.Set(ctx, "a", recommend.CacheEntry{ComputedAt: time.Now()})

	_, ok, _ := cache.Get(ctx, "b")
	if ok {
		t.Error("Get(b) should miss when only a was set")
	}
}

func TestNewRedisCache_Validation(t *testing.T) {
	if _, err := recommend.NewRedisCache(nil, time.Hour); err == nil {
		t.Error("NewRedisCache(nil client) should fail")
	}

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	if _, err := recommend.NewRedisCache(client, 0); err == nil {
		t.Error("NewRedisCache(zero ttl) should fail")
	}
}
