// Package task models the to-do list attached to the timer: tasks with
// subtasks and tags, the ordered List aggregate, and reusable templates.
package task

import (
	"strconv"
	"strings"
	"time"
)

// SubTask is a checklist entry inside a Task.
type SubTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Tag is a free-form label. Labels are unique per task, ignoring case.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Task is one item of the list. Order defines display position.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Subtasks    []SubTask  `json:"subtasks"`
	Tags        []Tag      `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	Order       int        `json:"order"`
}

// New builds an incomplete task with no subtasks or tags.
func New(id, title string, order int, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Title:     title,
		Subtasks:  []SubTask{},
		Tags:      []Tag{},
		CreatedAt: createdAt,
		Order:     order,
	}
}

// HasLabel reports whether t already carries label, ignoring case and
// surrounding whitespace.
func (t Task) HasLabel(label string) bool {
	label = strings.TrimSpace(label)
	for _, tag := range t.Tags {
		if strings.EqualFold(tag.Label, label) {
			return true
		}
	}
	return false
}

// Subtask returns the subtask with id.
func (t Task) Subtask(id string) (SubTask, bool) {
	for _, s := range t.Subtasks {
		if s.ID == id {
			return s, true
		}
	}
	return SubTask{}, false
}

// SubtasksMarked returns a copy of the subtasks with every Completed flag set
// to completed. CompletedAt is stamped with at when completing and cleared
// otherwise.
func (t Task) SubtasksMarked(completed bool, at time.Time) []SubTask {
	out := make([]SubTask, len(t.Subtasks))
	for i, s := range t.Subtasks {
		out[i] = s.Marked(completed, at)
	}
	return out
}

// Marked returns s with its completion flag set.
func (s SubTask) Marked(completed bool, at time.Time) SubTask {
	s.Completed = completed
	s.CompletedAt = nil
	if completed {
		stamp := at
		s.CompletedAt = &stamp
	}
	return s
}

// TemplateItem is the blueprint of one task.
type TemplateItem struct {
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Subtasks []string `json:"subtasks"`
}

// Template is a named, reusable set of task blueprints.
type Template struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Items     []TemplateItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FromTemplate materializes item into a task with the given id. Subtask and
// tag ids are derived from id and their index, not generated.
func FromTemplate(item TemplateItem, id string, order int, createdAt time.Time) Task {
	t := New(id, item.Title, order, createdAt)
	for i, title := range item.Subtasks {
		t.Subtasks = append(t.Subtasks, SubTask{ID: id + "-sub-" + strconv.Itoa(i), Title: title})
	}
	for i, label := range item.Tags {
		t.Tags = append(t.Tags, Tag{ID: id + "-tag-" + strconv.Itoa(i), Label: label})
	}
	return t
}

// ItemFromTask captures t as a template item, dropping ids and completion.
func ItemFromTask(t Task) TemplateItem {
	item := TemplateItem{Title: t.Title, Tags: []string{}, Subtasks: []string{}}
	for _, tag := range t.Tags {
		item.Tags = append(item.Tags, tag.Label)
	}
	for _, s := range t.Subtasks {
		item.Subtasks = append(item.Subtasks, s.Title)
	}
	return item
}

// DefaultTemplateID names the built-in template.
const DefaultTemplateID = "template-focus-start"

// DefaultTemplates returns a fresh copy of the built-in templates.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:   DefaultTemplateID,
			Name: "Focus Sprint",
			Items: []TemplateItem{
				{
					Title:    "Plan sprint goals",
					Tags:     []string{"planning"},
					Subtasks: []string{"Outline priorities", "Clarify blockers"},
				},
				{
					Title:    "Deep work block",
					Tags:     []string{"focus"},
					Subtasks: []string{"Silence notifications", "Set timer"},
				},
			},
		},
	}
}
