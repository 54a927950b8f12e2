package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pathwise/backend/internal/assessment"
	"github.com/pathwise/backend/internal/report"
)

func sampleSubmissions(t *testing.T) []assessment.Submission {
	t.Helper()
	submitted := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	return []assessment.Submission{
		{
			ID:          "sub-1",
			LearnerID:   "learner-1",
			TargetTopic: "Sorting",
			SubmittedAt: submitted,
			Result: assessment.ScoredResult{
				TotalQuestions:  2,
				CorrectAnswers:  1,
				PercentageScore: 50,
				WeakTopics:      []string{"Arrays"},
				Responses: []assessment.QuestionResult{
					{
						QuestionText:  "What is the index of the first element?",
						TopicTested:   "Arrays",
						UserAnswer:    assessment.Single("1"),
						CorrectAnswer: assessment.Single("0"),
						IsCorrect:     false,
					},
					{
						QuestionText:  "Which of these are stable sorts?",
						TopicTested:   "Sorting",
						UserAnswer:    assessment.Multiple("Merge Sort", "Insertion Sort"),
						CorrectAnswer: assessment.Multiple("Insertion Sort", "Merge Sort"),
						IsCorrect:     true,
					},
				},
			},
		},
	}
}

func TestWriteProducesWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, "learner-1", sampleSubmissions(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Responses" {
		t.Fatalf("GetSheetList() = %v, want [Summary Responses]", sheets)
	}

	got, err := f.GetCellValue("Summary", "C2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Sorting" {
		t.Errorf("Summary!C2 = %q, want Sorting", got)
	}

	got, err = f.GetCellValue("Summary", "G2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "50" {
		t.Errorf("Summary!G2 = %q, want 50", got)
	}

	got, err = f.GetCellValue("Responses", "E3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Merge Sort, Insertion Sort" {
		t.Errorf("Responses!E3 = %q, want joined answer", got)
	}
}

func TestWriteEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, "learner-1", nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Summary", "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Learner" {
		t.Errorf("Summary!A1 = %q, want Learner", got)
	}
}
