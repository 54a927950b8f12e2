// Package mastery tracks per-learner topic mastery scores.
package mastery

import "fmt"

// Status describes a learner's progress on a topic.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Record is the latest mastery fact for one (learner, topic) pair.
// Records are superseded, never deleted.
type Record struct {
	Score  int    `json:"score"` // 0-100
	Status Status `json:"status"`
}

// Validate checks the record's invariants.
func (r Record) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("mastery score %d out of range [0,100]", r.Score)
	}
	switch r.Status {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return nil
	}
	return fmt.Errorf("invalid mastery status %q", r.Status)
}

// Map holds one learner's mastery records keyed by topic ID.
type Map map[string]Record

// Score returns the mastery score for a topic. A topic the learner never
// attempted scores 0.
func (m Map) Score(topicID string) int {
	return m[topicID].Score
}

// Completed reports whether the learner finished the topic.
func (m Map) Completed(topicID string) bool {
	return m[topicID].Status == StatusCompleted
}
