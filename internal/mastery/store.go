package mastery

import (
	"context"
	"sync"
)

// Store persists mastery records per learner.
type Store interface {
	// MasteryMap returns the learner's full mastery map. A learner with no
	// records gets an empty map, not an error.
	MasteryMap(ctx context.Context, learnerID string) (Map, error)
	// SetRecord upserts the latest record for one (learner, topic) pair.
	SetRecord(ctx context.Context, learnerID, topicID string, rec Record) error
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Map // learnerID -> topicID -> record
}

// NewMemoryStore creates an empty in-memory mastery store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Map)}
}

func (s *MemoryStore) MasteryMap(_ context.Context, learnerID string) (Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Map, len(s.records[learnerID]))
	for topicID, rec := range s.records[learnerID] {
		out[topicID] = rec
	}
	return out, nil
}

func (s *MemoryStore) SetRecord(_ context.Context, learnerID, topicID string, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[learnerID] == nil {
		s.records[learnerID] = make(Map)
	}
	s.records[learnerID][topicID] = rec
	return nil
}
