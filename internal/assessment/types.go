// Package assessment scores diagnostic assessment submissions and derives
// which prerequisite concepts a learner is weak in.
package assessment

import (
	"encoding/json"
	"fmt"
	"sort"
)

// QuestionType identifies how a question's answer key is interpreted.
type QuestionType string

const (
	TypeSingleChoice   QuestionType = "single-correct-mcq"
	TypeMultipleChoice QuestionType = "multiple-correct-mcq"
	TypeTrueFalse      QuestionType = "true-false"
)

// Valid reports whether t is a supported question type.
func (t QuestionType) Valid() bool {
	return t == TypeSingleChoice || t == TypeMultipleChoice || t == TypeTrueFalse
}

// Answer is a tagged union: either a single value or a set of values.
// Submissions arrive loosely typed (scalar and array interchangeably), so
// the shape is resolved once at the JSON boundary instead of duck-typed
// throughout scoring.
type Answer struct {
	values []string
	multi  bool
}

// Single returns a scalar answer.
func Single(v string) Answer {
	return Answer{values: []string{v}}
}

// Multiple returns a set answer.
func Multiple(vs ...string) Answer {
	return Answer{values: append([]string(nil), vs...), multi: true}
}

// IsMultiple reports whether the answer is a set.
func (a Answer) IsMultiple() bool { return a.multi }

// IsEmpty reports whether the answer carries no value: an unanswered
// question.
func (a Answer) IsEmpty() bool {
	for _, v := range a.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Value returns the scalar value. Empty for set answers with more than
// one element.
func (a Answer) Value() string {
	if len(a.values) == 1 {
		return a.values[0]
	}
	return ""
}

// Values returns a copy of the underlying values.
func (a Answer) Values() []string {
	return append([]string(nil), a.values...)
}

// set returns the sorted, deduplicated values.
func (a Answer) set() []string {
	seen := make(map[string]bool, len(a.values))
	out := make([]string, 0, len(a.values))
	for _, v := range a.values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Single(s)
		return nil
	}

	var vs []string
	if err := json.Unmarshal(data, &vs); err == nil {
		*a = Multiple(vs...)
		return nil
	}

	return fmt.Errorf("answer must be a string or an array of strings")
}

// MarshalJSON writes a set as an array and a scalar as a string.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		vs := a.values
		if vs == nil {
			vs = []string{}
		}
		return json.Marshal(vs)
	}
	return json.Marshal(a.Value())
}

// Question is one assessment item with its answer key.
type Question struct {
	Text          string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correct_answer"`
	Type          QuestionType `json:"type"`
	TopicTested   string       `json:"topic_tested"`
}

// Assessment is an immutable, externally authored question set probing the
// prerequisites of a target topic.
type Assessment struct {
	TargetTopic string     `json:"targetTopic"`
	Questions   []Question `json:"questions"`
}

// QuestionResult is the scored outcome of one question.
type QuestionResult struct {
	QuestionText  string `json:"questionText"`
	UserAnswer    Answer `json:"userAnswer"`
	CorrectAnswer Answer `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	TopicTested   string `json:"topic_tested"`
}

// ScoredResult is the complete, immutable outcome of scoring one
// submission. It is the sole contract surface toward mastery updates.
type ScoredResult struct {
	TotalQuestions  int              `json:"totalQuestions"`
	CorrectAnswers  int              `json:"correctAnswers"`
	PercentageScore int              `json:"percentageScore"`
	Responses       []QuestionResult `json:"responses"`
	WeakTopics      []string         `json:"weakTopics"`
	Recommendations string           `json:"recommendations"`
}
