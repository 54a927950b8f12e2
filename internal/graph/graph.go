// Package graph models the prerequisite structure between topics as a
// directed acyclic graph. An edge A -> B means A must be mastered before B.
package graph

import (
	"fmt"
	"sort"
	"sync"
)

// Difficulty is a topic's difficulty tier.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Rank orders tiers for recommendation sorting: beginner first.
// Unknown tiers sort last so malformed catalog data never jumps the queue.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 1
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	}
	return 4
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}

// Topic is a unit of curriculum content.
type Topic struct {
	ID               string     `json:"id"`
	Name             string     `json:"name,omitempty"`
	Difficulty       Difficulty `json:"difficulty"`
	Category         string     `json:"category,omitempty"`
	EstimatedMinutes int        `json:"estimatedTime,omitempty"`
}

// DAG holds topics and their prerequisite edges. Edge insertion rejects
// anything that would introduce a cycle, so traversals never need cycle
// guards. Safe for concurrent use; reads take a shared lock.
type DAG struct {
	mu     sync.RWMutex
	topics map[string]Topic
	preds  map[string][]string // dependent -> direct prerequisites
	succs  map[string][]string // prerequisite -> direct dependents
}

// New returns an empty graph.
func New() *DAG {
	return &DAG{
		topics: make(map[string]Topic),
		preds:  make(map[string][]string),
		succs:  make(map[string][]string),
	}
}

// AddTopic registers a topic. Re-adding an existing ID replaces its
// attributes and keeps its edges (administrative edit).
func (g *DAG) AddTopic(t Topic) error {
	if t.ID == "" {
		return fmt.Errorf("topic id is empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.topics[t.ID] = t
	return nil
}

// AddEdge records that prereqID must be mastered before dependentID.
// Both topics must already exist. Returns *CycleError if the edge would
// close a cycle; the graph is left unchanged. Duplicate edges are no-ops.
func (g *DAG) AddEdge(prereqID, dependentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.topics[prereqID]; !ok {
		return &UnknownTopicError{ID: prereqID}
	}
	if _, ok := g.topics[dependentID]; !ok {
		return &UnknownTopicError{ID: dependentID}
	}
	if prereqID == dependentID {
		return &CycleError{Prerequisite: prereqID, Dependent: dependentID}
	}

	for _, p := range g.preds[dependentID] {
		if p == prereqID {
			return nil
		}
	}

	// The edge prereq -> dependent closes a cycle iff prereq is already
	// reachable from dependent.
	if g.reachable(dependentID, prereqID) {
		return &CycleError{Prerequisite: prereqID, Dependent: dependentID}
	}

	g.preds[dependentID] = append(g.preds[dependentID], prereqID)
	g.succs[prereqID] = append(g.succs[prereqID], dependentID)
	return nil
}

// Predecessors returns the direct prerequisites of a topic, sorted by ID.
// Transitive ancestors are deliberately not included: gating is defined
// over direct prerequisites only.
func (g *DAG) Predecessors(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.topics[id]; !ok {
		return nil, &UnknownTopicError{ID: id}
	}

	out := append([]string(nil), g.preds[id]...)
	sort.Strings(out)
	return out, nil
}

// Dependents returns the topics that list id as a direct prerequisite,
// sorted by ID.
func (g *DAG) Dependents(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.topics[id]; !ok {
		return nil, &UnknownTopicError{ID: id}
	}

	out := append([]string(nil), g.succs[id]...)
	sort.Strings(out)
	return out, nil
}

// HasTopic reports whether the topic ID is known to the graph.
func (g *DAG) HasTopic(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.topics[id]
	return ok
}

// Topic returns a topic by ID.
func (g *DAG) Topic(id string) (Topic, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t, ok := g.topics[id]
	return t, ok
}

// Topics returns all topics sorted by ID.
func (g *DAG) Topics() []Topic {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Topic, 0, len(g.topics))
	for _, t := range g.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of topics.
func (g *DAG) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.topics)
}

// reachable reports whether target can be reached from start by following
// dependency edges. Caller must hold at least a read lock.
func (g *DAG) reachable(start, target string) bool {
	visited := map[string]bool{start: true}
	stack := []string{start}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.succs[n] {
			if next == target {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
