// Package export writes the task list to CSV, JSON or PDF files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/peak/internal/task"
)

// ErrUnknownFormat is returned for a format name Write does not support.
var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	PDF  Format = "pdf"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{CSV, JSON, PDF}

// FileName is peak-tasks-YYYY-MM-DD.<ext> for the day of now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("peak-tasks-%s.%s", now.Format("2006-01-02"), f)
}

// Write exports tasks in format f into dir and returns the file path.
func Write(f Format, tasks []task.Task, dir string, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(f, now))
	var err error
	switch f {
	case CSV:
		err = TasksToCSV(tasks, path)
	case JSON:
		err = TasksToJSON(tasks, path, now)
	case PDF:
		err = TasksToPDF(tasks, path, now)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func status(completed bool) string {
	if completed {
		return "done"
	}
	return "open"
}

func labels(t task.Task) []string {
	out := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		out = append(out, tag.Label)
	}
	return out
}

func subtaskProgress(t task.Task) string {
	done := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(t.Subtasks))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

func joinLabels(t task.Task) string {
	return strings.Join(labels(t), ";")
}
