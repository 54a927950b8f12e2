package assessment

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
)

// ErrEmptyAssessment is returned when scoring is attempted on an
// assessment with zero questions.
var ErrEmptyAssessment = errors.New("assessment has no questions")

// Score evaluates submitted answers against the assessment's answer keys.
// answers are aligned by question index; a missing or empty entry scores
// incorrect. Returns either a complete ScoredResult or an error, never a
// partial result.
func Score(a Assessment, answers []Answer) (*ScoredResult, error) {
	if len(a.Questions) == 0 {
		return nil, ErrEmptyAssessment
	}

	result := &ScoredResult{
		TotalQuestions: len(a.Questions),
		Responses:      make([]QuestionResult, 0, len(a.Questions)),
	}

	weak := make(map[string]bool)
	for i, q := range a.Questions {
		var submitted Answer
		if i < len(answers) {
			submitted = answers[i]
		}

		correct := evaluate(q, submitted)
		if correct {
			result.CorrectAnswers++
		} else if q.TopicTested != "" {
			weak[q.TopicTested] = true
		}

		result.Responses = append(result.Responses, QuestionResult{
			QuestionText:  q.Text,
			UserAnswer:    submitted,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			TopicTested:   q.TopicTested,
		})
	}

	result.PercentageScore = int(math.Round(float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100))
	result.WeakTopics = sortedKeys(weak)
	result.Recommendations = recommendationsSentence(result.WeakTopics)

	return result, nil
}

// evaluate scores one question. Shape mismatches are recovered locally as
// incorrect so one malformed answer never aborts the submission.
func evaluate(q Question, submitted Answer) bool {
	if submitted.IsEmpty() {
		return false
	}

	// A set key compares set-to-set; a scalar submission is normalized to
	// a one-element set (the true-false case).
	if q.CorrectAnswer.IsMultiple() {
		return equalSets(q.CorrectAnswer.set(), submitted.set())
	}

	if submitted.IsMultiple() {
		slog.Warn("answer shape mismatch, scoring incorrect",
			"question", q.Text,
			"type", q.Type,
		)
		return false
	}
	return submitted.Value() == q.CorrectAnswer.Value()
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func recommendationsSentence(weakTopics []string) string {
	if len(weakTopics) == 0 {
		return "Great job! You're ready to move forward with the target topic."
	}
	return fmt.Sprintf("Please revisit the following prerequisite topics before continuing: %s.",
		strings.Join(weakTopics, ", "))
}
