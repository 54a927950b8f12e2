// Package readiness decides whether a learner may attempt a topic based on
// prerequisite mastery.
package readiness

import (
	"github.com/pathwise/backend/internal/graph"
	"github.com/pathwise/backend/internal/mastery"
)

// DefaultThreshold is the mastery score a prerequisite must reach before
// its dependents open up.
const DefaultThreshold = 70

// CanAttempt reports whether the learner is eligible to attempt topicID.
//
// A topic with no prerequisites is always eligible. Otherwise every direct
// prerequisite must score at or above threshold; a topic missing from the
// mastery map counts as score 0. Pure: no side effects, deterministic for
// the same inputs.
func CanAttempt(g *graph.DAG, topicID string, m mastery.Map, threshold int) (bool, error) {
	preds, err := g.Predecessors(topicID)
	if err != nil {
		return false, err
	}

	for _, p := range preds {
		if m.Score(p) < threshold {
			return false, nil
		}
	}
	return true, nil
}
