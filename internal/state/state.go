// Package state holds the canonical application snapshot, the actions that
// change it, the reducer and the Store that owns the current value.
package state

import (
	"time"

	"github.com/sadopc/peak/internal/task"
	"github.com/sadopc/peak/internal/timer"
)

// Stats counts completed sessions. There is no day rollover.
type Stats struct {
	SessionsToday   int        `json:"sessionsToday"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
}

// AppState is one immutable snapshot. ActiveTaskID is empty or names an
// existing, not-completed task.
type AppState struct {
	Timer        timer.Snapshot  `json:"timer"`
	Stats        Stats           `json:"stats"`
	Tasks        []task.Task     `json:"tasks"`
	Templates    []task.Template `json:"templates"`
	Settings     Settings        `json:"settings"`
	ActiveTaskID string          `json:"activeTaskId,omitempty"`
}

// Default returns the state of a fresh install.
func Default() *AppState {
	return &AppState{
		Timer:     timer.DefaultSnapshot(),
		Tasks:     []task.Task{},
		Templates: task.DefaultTemplates(),
		Settings:  DefaultSettings(),
	}
}

// TaskList wraps the tasks in the list aggregate.
func (s *AppState) TaskList() task.List {
	return task.FromSlice(s.Tasks)
}

// Task looks up a task by id.
func (s *AppState) Task(id string) (task.Task, bool) {
	if id == "" {
		return task.Task{}, false
	}
	return s.TaskList().Find(id)
}

// ActiveTask returns the focused task, if any.
func (s *AppState) ActiveTask() (task.Task, bool) {
	return s.Task(s.ActiveTaskID)
}

// Template looks up a template by id.
func (s *AppState) Template(id string) (task.Template, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return task.Template{}, false
}
