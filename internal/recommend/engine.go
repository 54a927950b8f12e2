// Package recommend computes ranked next-topic recommendations from a
// learner's mastery map and caches them per learner.
package recommend

import (
	"sort"

	"github.com/pathwise/backend/internal/graph"
	"github.com/pathwise/backend/internal/mastery"
	"github.com/pathwise/backend/internal/readiness"
)

// Priority labels derived from difficulty tier: easier topics are pushed
// harder because they unlock more of the graph.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// baselineConfidence is the fixed confidence attached to every
// recommendation until a richer signal exists.
const baselineConfidence = 0.8

// Recommendation is one ranked next-topic entry.
type Recommendation struct {
	TopicID          string           `json:"topicId"`
	Name             string           `json:"name,omitempty"`
	Difficulty       graph.Difficulty `json:"difficulty"`
	Category         string           `json:"category,omitempty"`
	EstimatedMinutes int              `json:"estimatedTime,omitempty"`
	Confidence       float64          `json:"confidence"`
	Priority         string           `json:"priority"`
}

// Engine computes the eligible frontier and ranks it. Stateless and safe
// for unlimited concurrent use.
type Engine struct {
	g         *graph.DAG
	threshold int
}

// NewEngine creates an engine over the given graph. threshold is the
// prerequisite mastery score required to open a topic; zero means
// readiness.DefaultThreshold.
func NewEngine(g *graph.DAG, threshold int) *Engine {
	if threshold == 0 {
		threshold = readiness.DefaultThreshold
	}
	return &Engine{g: g, threshold: threshold}
}

// NextTopics returns the learner's frontier: every topic not yet completed
// whose direct prerequisites are all mastered, ranked by difficulty tier
// ascending with ties broken by topic ID. Does not mutate mastery state.
func (e *Engine) NextTopics(m mastery.Map) ([]Recommendation, error) {
	var out []Recommendation

	for _, t := range e.g.Topics() {
		if m.Completed(t.ID) {
			continue
		}
		ok, err := readiness.CanAttempt(e.g, t.ID, m, e.threshold)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, Recommendation{
			TopicID:          t.ID,
			Name:             t.Name,
			Difficulty:       t.Difficulty,
			Category:         t.Category,
			EstimatedMinutes: t.EstimatedMinutes,
			Confidence:       baselineConfidence,
			Priority:         priorityFor(t.Difficulty),
		})
	}

	// Topics() is ID-sorted and the sort is stable, so equal tiers keep
	// deterministic ID order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Difficulty.Rank() < out[j].Difficulty.Rank()
	})
	return out, nil
}

func priorityFor(d graph.Difficulty) string {
	switch d {
	case graph.DifficultyBeginner:
		return PriorityHigh
	case graph.DifficultyIntermediate:
		return PriorityMedium
	}
	return PriorityLow
}
