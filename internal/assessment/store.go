package assessment

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"
)

// Submission is one scored (assessment, learner) pair. Immutable once
// stored; resubmitting the same assessment appends a new record.
type Submission struct {
	ID          string       `json:"id"`
	LearnerID   string       `json:"learnerId"`
	TargetTopic string       `json:"targetTopic"`
	Result      ScoredResult `json:"result"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

// ResponseStore persists scored submissions as an append-only history.
type ResponseStore interface {
	Append(ctx context.Context, sub Submission) (string, error)
	ListByLearner(ctx context.Context, learnerID string) ([]Submission, error)
}

// MemoryResponseStore is an in-memory ResponseStore implementation.
type MemoryResponseStore struct {
	mu   sync.RWMutex
	subs []Submission
}

// NewMemoryResponseStore creates an empty in-memory response store.
func NewMemoryResponseStore() *MemoryResponseStore {
	return &MemoryResponseStore{}
}

func (s *MemoryResponseStore) Append(_ context.Context, sub Submission) (string, error) {
	if sub.LearnerID == "" {
		return "", fmt.Errorf("learner_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = generateID()
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	s.subs = append(s.subs, sub)
	return sub.ID, nil
}

func (s *MemoryResponseStore) ListByLearner(_ context.Context, learnerID string) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Submission
	for _, sub := range s.subs {
		if sub.LearnerID == learnerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func generateID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
