package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sadopc/peak/internal/task"
)

// TasksToPDF renders a one-column checklist report.
func TasksToPDF(tasks []task.Task, path string, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Task Report: %s", now.Format("2006-01-02"))))
	pdf.Ln(12)

	open, done := task.FromSlice(tasks).Counts()
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d open, %d done", open, done))
	pdf.Ln(10)

	if len(tasks) == 0 {
		pdf.Cell(0, 8, "  - No tasks.")
		pdf.Ln(8)
	}

	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Title)
		if tags := labels(t); len(tags) > 0 {
			line += "  #" + strings.Join(tags, " #")
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 7, tr(line), "", "", false)

		pdf.SetFont("Arial", "", 11)
		for _, s := range t.Subtasks {
			sub := "[ ]"
			if s.Completed {
				sub = "[x]"
			}
			pdf.Cell(0, 6, tr(fmt.Sprintf("      %s %s", sub, s.Title)))
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	return nil
}
