package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/peak/internal/task"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID          string        `json:"id"`
	Order       int           `json:"order"`
	Title       string        `json:"title"`
	Status      string        `json:"status"`
	Tags        []string      `json:"tags"`
	Subtasks    []jsonSubtask `json:"subtasks"`
	CreatedAt   string        `json:"created_at"`
	CompletedAt string        `json:"completed_at,omitempty"`
}

type jsonSubtask struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// TasksToJSON writes the tasks with their subtasks and tags.
func TasksToJSON(tasks []task.Task, path string, now time.Time) error {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(tasks),
		Tasks:      []jsonTask{},
	}

	for _, t := range tasks {
		jt := jsonTask{
			ID:          t.ID,
			Order:       t.Order,
			Title:       t.Title,
			Status:      status(t.Completed),
			Tags:        labels(t),
			Subtasks:    []jsonSubtask{},
			CreatedAt:   t.CreatedAt.Local().Format(time.RFC3339),
			CompletedAt: formatTime(t.CompletedAt),
		}
		for _, s := range t.Subtasks {
			jt.Subtasks = append(jt.Subtasks, jsonSubtask{Title: s.Title, Status: status(s.Completed)})
		}
		export.Tasks = append(export.Tasks, jt)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
