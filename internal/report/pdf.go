package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/quiz"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

type ReviewData struct {
	SessionID string
	Mode      session.Mode
	Date      time.Time
	Summary   quiz.Summary
	Entries   []quiz.ReviewEntry
}

// FromState collects the review of a finished run.
func FromState(s quiz.State, now time.Time) ReviewData {
	return ReviewData{
		SessionID: s.Session().ID,
		Mode:      s.Mode(),
		Date:      now,
		Summary:   s.Summary(),
		Entries:   s.ReviewEntries(),
	}
}

func GeneratePDF(data ReviewData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Quiz review", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Quiz Review", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Score: %d/%d (%.1f%%) | Mode: %s | Date: %s",
			data.Summary.Score, data.Summary.Total, data.Summary.Percentage, data.Mode, data.Date.Format("2006-01-02")),
		"", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Session ID: "+data.SessionID, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(data.Entries) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 10, "No wrong answers. Well done!", "", 1, "C", false, 0, "")
		return output(pdf)
	}

	for _, e := range data.Entries {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("Question %d: %s", e.Number, e.Question)), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		for _, o := range e.Options {
			setVerdictColor(pdf, o.Verdict)
			pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s) %s", o.Letter, o.Text)), "1", "L", true)
		}
		pdf.SetFillColor(255, 255, 255)

		pdf.Ln(1)
		pdf.SetTextColor(180, 30, 30)
		pdf.MultiCell(0, 6, tr("Your answer: "+e.UserAnswer), "", "L", false)
		pdf.SetTextColor(20, 120, 40)
		pdf.MultiCell(0, 6, tr("Correct answer: "+e.Correct), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	return output(pdf)
}

func setVerdictColor(pdf *fpdf.Fpdf, v grading.Verdict) {
	switch v {
	case grading.Correct:
		pdf.SetFillColor(212, 237, 218)
	case grading.Wrong:
		pdf.SetFillColor(248, 215, 218)
	default:
		pdf.SetFillColor(255, 255, 255)
	}
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render review pdf: %w", err)
	}
	return buf.Bytes(), nil
}
