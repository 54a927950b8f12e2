package assessment_test

import (
	"encoding/json"
	"testing"

	"github.com/pathwise/backend/internal/assessment"
)

const validDefinition = `{
  "targetTopic": "Graphs",
  "questions": [
    {
      "question": "Which traversal uses a stack?",
      "options": ["DFS", "BFS", "Dijkstra", "Prim"],
      "correct_answer": "DFS",
      "type": "single-correct-mcq",
      "topic_tested": "DFS"
    },
    {
      "question": "Select all linear structures.",
      "options": ["Array", "Tree", "Queue", "Graph"],
      "correct_answer": ["Array", "Queue"],
      "type": "multiple-correct-mcq",
      "topic_tested": "Arrays"
    },
    {
      "question": "A tree is an acyclic graph.",
      "correct_answer": ["True"],
      "type": "true-false",
      "topic_tested": "Trees"
    }
  ]
}`

func TestParseDefinition_Valid(t *testing.T) {
	a, err := assessment.ParseDefinition([]byte(validDefinition))
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}

	if a.TargetTopic != "Graphs" {
		t.Errorf("TargetTopic = %q, want Graphs", a.TargetTopic)
	}
	if len(a.Questions) != 3 {
		t.Fatalf("len(Questions) = %d, want 3", len(a.Questions))
	}
	if a.Questions[0].CorrectAnswer.IsMultiple() {
		t.Error("scalar key decoded as set")
	}
	if !a.Questions[1].CorrectAnswer.IsMultiple() {
		t.Error("array key decoded as scalar")
	}
}

func TestParseDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing target topic", `{"questions": []}`},
		{"missing questions", `{"targetTopic": "Graphs"}`},
		{
			"question without answer key",
			`{"targetTopic": "t", "questions": [{"question": "q", "type": "single-correct-mcq", "topic_tested": "x"}]}`,
		},
		{
			"unsupported question type",
			`{"targetTopic": "t", "questions": [{"question": "q", "correct_answer": "A", "type": "one-word", "topic_tested": "x"}]}`,
		},
		{
			"numeric answer key",
			`{"targetTopic": "t", "questions": [{"question": "q", "correct_answer": 42, "type": "single-correct-mcq", "topic_tested": "x"}]}`,
		},
		{
			"empty answer key array",
			`{"targetTopic": "t", "questions": [{"question": "q", "correct_answer": [], "type": "multiple-correct-mcq", "topic_tested": "x"}]}`,
		},
		{
			"missing topic_tested",
			`{"targetTopic": "t", "questions": [{"question": "q", "correct_answer": "A", "type": "single-correct-mcq"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := assessment.ParseDefinition([]byte(tt.raw)); err == nil {
				t.Error("ParseDefinition() should fail")
			}
		})
	}
}

func TestAssessmentValidate_KeyShapeMatchesType(t *testing.T) {
	tests := []struct {
		name    string
		q       assessment.Question
		wantErr bool
	}{
		{
			"single with scalar key",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Single("A"), Type: assessment.TypeSingleChoice, TopicTested: "x"},
			false,
		},
		{
			"multi with set key",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Multiple("A", "B"), Type: assessment.TypeMultipleChoice, TopicTested: "x"},
			false,
		},
		{
			"multi with scalar key",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Single("A"), Type: assessment.TypeMultipleChoice, TopicTested: "x"},
			true,
		},
		{
			"true-false one-element set",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Multiple("True"), Type: assessment.TypeTrueFalse, TopicTested: "x"},
			false,
		},
		{
			"true-false scalar",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Single("False"), Type: assessment.TypeTrueFalse, TopicTested: "x"},
			false,
		},
		{
			"true-false with bogus value",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Single("Maybe"), Type: assessment.TypeTrueFalse, TopicTested: "x"},
			true,
		},
		{
			"true-false with two values",
			assessment.Question{Text: "q", CorrectAnswer: assessment.Multiple("True", "False"), Type: assessment.TypeTrueFalse, TopicTested: "x"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assessment.Assessment{TargetTopic: "t", Questions: []assessment.Question{tt.q}}
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnswer_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want assessment.Answer
	}{
		{"scalar", `"DFS"`, assessment.Single("DFS")},
		{"array", `["A","B"]`, assessment.Multiple("A", "B")},
		{"empty array", `[]`, assessment.Multiple()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a assessment.Answer
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if a.IsMultiple() != tt.want.IsMultiple() {
				t.Errorf("IsMultiple() = %v, want %v", a.IsMultiple(), tt.want.IsMultiple())
			}

			out, err := json.Marshal(a)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.raw {
				t.Errorf("Marshal() = %s, want %s", out, tt.raw)
			}
		})
	}
}

func TestAnswer_RejectsOtherShapes(t *testing.T) {
	var a assessment.Answer
	if err := json.Unmarshal([]byte(`42`), &a); err == nil {
		t.Error("Unmarshal(42) should fail")
	}
	if err := json.Unmarshal([]byte(`{"a":1}`), &a); err == nil {
		t.Error("Unmarshal(object) should fail")
	}
}
