package readiness_test

import (
	"errors"
	"testing"

	"github.com/pathwise/backend/internal/graph"
	"github.com/pathwise/backend/internal/mastery"
	"github.com/pathwise/backend/internal/readiness"
)

func dsaGraph(t *testing.T) *graph.DAG {
	t.Helper()
	g := graph.New()
	for _, id := range []string{"arrays", "sorting", "searching", "hashing"} {
		if err := g.AddTopic(graph.Topic{ID: id, Difficulty: graph.DifficultyBeginner}); err != nil {
			t.Fatalf("AddTopic(%s) error = %v", id, err)
		}
	}
	edges := [][2]string{
		{"arrays", "sorting"},
		{"sorting", "searching"},
		{"arrays", "hashing"},
		{"searching", "hashing"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s) error = %v", e[0], e[1], err)
		}
	}
	return g
}

func TestCanAttempt_NoPrerequisites(t *testing.T) {
	g := dsaGraph(t)

	tests := []struct {
		name string
		m    mastery.Map
	}{
		{"empty map", mastery.Map{}},
		{"nil map", nil},
		{"unrelated scores", mastery.Map{"sorting": {Score: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := readiness.CanAttempt(g, "arrays", tt.m, readiness.DefaultThreshold)
			if err != nil {
				t.Fatalf("CanAttempt() error = %v", err)
			}
			if !ok {
				t.Error("CanAttempt(arrays) = false, want true for topic with no prerequisites")
			}
		})
	}
}

func TestCanAttempt_Threshold(t *testing.T) {
	g := dsaGraph(t)

	tests := []struct {
		name      string
		topic     string
		m         mastery.Map
		threshold int
		want      bool
	}{
		{
			name:      "prerequisite at threshold",
			topic:     "sorting",
			m:         mastery.Map{"arrays": {Score: 70}},
			threshold: 70,
			want:      true,
		},
		{
			name:      "prerequisite just below threshold",
			topic:     "sorting",
			m:         mastery.Map{"arrays": {Score: 69}},
			threshold: 70,
			want:      false,
		},
		{
			name:      "missing prerequisite counts as zero",
			topic:     "sorting",
			m:         mastery.Map{},
			threshold: 70,
			want:      false,
		},
		{
			name:  "all conjunctive prerequisites met",
			topic: "hashing",
			m: mastery.Map{
				"arrays":    {Score: 80},
				"searching": {Score: 75},
			},
			threshold: 70,
			want:      true,
		},
		{
			name:  "one of several prerequisites unmet",
			topic: "hashing",
			m: mastery.Map{
				"arrays":    {Score: 95},
				"searching": {Score: 50},
			},
			threshold: 70,
			want:      false,
		},
		{
			name:      "custom threshold",
			topic:     "sorting",
			m:         mastery.Map{"arrays": {Score: 55}},
			threshold: 50,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readiness.CanAttempt(g, tt.topic, tt.m, tt.threshold)
			if err != nil {
				t.Fatalf("CanAttempt() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CanAttempt(%s) = %v, want %v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestCanAttempt_DirectPredecessorsOnly(t *testing.T) {
	// arrays -> sorting -> searching: a learner who mastered sorting may
	// attempt searching even with no arrays record. Gating never walks
	// the ancestor chain.
	g := dsaGraph(t)

	ok, err := readiness.CanAttempt(g, "searching", mastery.Map{"sorting": {Score: 90}}, readiness.DefaultThreshold)
	if err != nil {
		t.Fatalf("CanAttempt() error = %v", err)
	}
	if !ok {
		t.Error("CanAttempt(searching) = false, want true with direct prerequisite mastered")
	}
}

func TestCanAttempt_UnknownTopic(t *testing.T) {
	g := dsaGraph(t)

	_, err := readiness.CanAttempt(g, "quantum-computing", mastery.Map{}, readiness.DefaultThreshold)
	var unknown *graph.UnknownTopicError
	if !errors.As(err, &unknown) {
		t.Fatalf("CanAttempt() error = %v, want UnknownTopicError", err)
	}
}

func TestCanAttempt_Deterministic(t *testing.T) {
	g := dsaGraph(t)
	m := mastery.Map{"arrays": {Score: 90}, "sorting": {Score: 40}}

	first, err := readiness.CanAttempt(g, "searching", m, readiness.DefaultThreshold)
	if err != nil {
		t.Fatalf("CanAttempt() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		got, err := readiness.CanAttempt(g, "searching", m, readiness.DefaultThreshold)
		if err != nil {
			t.Fatalf("CanAttempt() error = %v", err)
		}
		if got != first {
			t.Fatalf("CanAttempt() flipped from %v to %v on call %d", first, got, i)
		}
	}
}
