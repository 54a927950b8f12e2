// Package report renders a learner's submission history as an xlsx
// workbook for download.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pathwise/backend/internal/assessment"
)

const (
	summarySheet   = "Summary"
	responsesSheet = "Responses"
)

// Write renders the submissions as a workbook with a Summary sheet (one
// row per submission) and a Responses sheet (one row per question) and
// writes it to w.
func Write(w io.Writer, learnerID string, submissions []assessment.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(responsesSheet); err != nil {
		return fmt.Errorf("creating responses sheet: %w", err)
	}

	if err := writeSummary(f, learnerID, submissions); err != nil {
		return err
	}
	if err := writeResponses(f, submissions); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, learnerID string, submissions []assessment.Submission) error {
	header := []any{"Learner", "Submission ID", "Target Topic", "Submitted At", "Questions", "Correct", "Score %", "Weak Topics"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}

	for i, sub := range submissions {
		row := []any{
			learnerID,
			sub.ID,
			sub.TargetTopic,
			sub.SubmittedAt.Format("2006-01-02 15:04:05"),
			sub.Result.TotalQuestions,
			sub.Result.CorrectAnswers,
			sub.Result.PercentageScore,
			strings.Join(sub.Result.WeakTopics, ", "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeResponses(f *excelize.File, submissions []assessment.Submission) error {
	header := []any{"Submission ID", "Target Topic", "Question", "Topic Tested", "Your Answer", "Correct Answer", "Correct"}
	if err := f.SetSheetRow(responsesSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing responses header: %w", err)
	}

	rowNum := 2
	for _, sub := range submissions {
		for _, resp := range sub.Result.Responses {
			row := []any{
				sub.ID,
				sub.TargetTopic,
				resp.QuestionText,
				resp.TopicTested,
				answerText(resp.UserAnswer),
				answerText(resp.CorrectAnswer),
				resp.IsCorrect,
			}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(responsesSheet, cell, &row); err != nil {
				return fmt.Errorf("writing response row %d: %w", rowNum-1, err)
			}
			rowNum++
		}
	}
	return nil
}

func answerText(a assessment.Answer) string {
	if a.IsEmpty() {
		return ""
	}
	if a.IsMultiple() {
		return strings.Join(a.Values(), ", ")
	}
	return a.Value()
}
