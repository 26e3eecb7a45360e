package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/peak/internal/task"
)

// TasksToCSV writes one row per task.
func TasksToCSV(tasks []task.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Order", "Title", "Status", "Tags", "Subtasks", "Created", "Completed"}); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			t.ID,
			strconv.Itoa(t.Order),
			t.Title,
			status(t.Completed),
			joinLabels(t),
			subtaskProgress(t),
			t.CreatedAt.Local().Format(time.RFC3339),
			formatTime(t.CompletedAt),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
