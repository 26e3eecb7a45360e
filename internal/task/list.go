package task

import (
	"sort"
	"time"
)

// Patch is a partial task update.
// nil pointer => no change
// nil slice => keep the existing subtasks/tags; non-nil => replace wholesale
// Completed=false also clears CompletedAt.
type Patch struct {
	Title       *string
	Completed   *bool
	CompletedAt *time.Time
	Order       *int
	Subtasks    []SubTask
	Tags        []Tag
}

func (p Patch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
		if !t.Completed {
			t.CompletedAt = nil
		}
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		t.CompletedAt = &at
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]SubTask{}, p.Subtasks...)
	}
	if p.Tags != nil {
		t.Tags = append([]Tag{}, p.Tags...)
	}
	return t
}

// List is the ordered task collection. Operations that change nothing return
// the receiver unchanged, so callers can detect no-ops with Same.
type List struct {
	tasks []Task
}

// FromSlice wraps tasks. The slice is treated as read-only.
func FromSlice(tasks []Task) List {
	return List{tasks: tasks}
}

// Tasks returns the underlying slice in display order.
func (l List) Tasks() []Task {
	return l.tasks
}

// Len returns the number of tasks.
func (l List) Len() int {
	return len(l.tasks)
}

// Same reports whether l and other share the same backing storage.
func (l List) Same(other List) bool {
	if len(l.tasks) != len(other.tasks) {
		return false
	}
	return len(l.tasks) == 0 || &l.tasks[0] == &other.tasks[0]
}

// Find returns the task with id.
func (l List) Find(id string) (Task, bool) {
	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (l List) index(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l List) clone() []Task {
	return append(make([]Task, 0, len(l.tasks)+1), l.tasks...)
}

func sorted(tasks []Task) List {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
	return List{tasks: tasks}
}

// Add appends tasks and re-sorts by order. Ties keep arrival order.
func (l List) Add(tasks ...Task) List {
	if len(tasks) == 0 {
		return l
	}
	return sorted(append(l.clone(), tasks...))
}

// Update merges patch into the task with id.
func (l List) Update(id string, patch Patch) List {
	i := l.index(id)
	if i < 0 {
		return l
	}
	next := l.clone()
	next[i] = patch.apply(next[i])
	return List{tasks: next}
}

// Remove drops the task with id.
func (l List) Remove(id string) List {
	i := l.index(id)
	if i < 0 {
		return l
	}
	next := make([]Task, 0, len(l.tasks)-1)
	next = append(next, l.tasks[:i]...)
	next = append(next, l.tasks[i+1:]...)
	return List{tasks: next}
}

// Reorder gives each listed task its position in ids as the new order.
// Unlisted tasks keep their order. The result is re-sorted.
func (l List) Reorder(ids []string) List {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	next := l.clone()
	for i := range next {
		if r, ok := rank[next[i].ID]; ok {
			next[i].Order = r
		}
	}
	return sorted(next)
}

// UpdateSubtask replaces the subtask of taskID that has the same id as sub.
func (l List) UpdateSubtask(taskID string, sub SubTask) List {
	i := l.index(taskID)
	if i < 0 {
		return l
	}
	subs := l.tasks[i].Subtasks
	for j := range subs {
		if subs[j].ID != sub.ID {
			continue
		}
		replaced := append([]SubTask{}, subs...)
		replaced[j] = sub
		return l.Update(taskID, Patch{Subtasks: replaced})
	}
	return l
}

// RemoveSubtask drops subtaskID from taskID.
func (l List) RemoveSubtask(taskID, subtaskID string) List {
	t, ok := l.Find(taskID)
	if !ok {
		return l
	}
	if _, ok := t.Subtask(subtaskID); !ok {
		return l
	}
	kept := make([]SubTask, 0, len(t.Subtasks)-1)
	for _, s := range t.Subtasks {
		if s.ID != subtaskID {
			kept = append(kept, s)
		}
	}
	return l.Update(taskID, Patch{Subtasks: kept})
}

// ReplaceSubtasks swaps the whole subtask sequence of taskID.
func (l List) ReplaceSubtasks(taskID string, subs []SubTask) List {
	if subs == nil {
		subs = []SubTask{}
	}
	return l.Update(taskID, Patch{Subtasks: subs})
}

// CompletedLast returns the ids in auto-sort order: incomplete tasks first,
// then completed ones, each group keeping its current relative order.
func (l List) CompletedLast() []string {
	ids := make([]string, 0, len(l.tasks))
	for _, t := range l.tasks {
		if !t.Completed {
			ids = append(ids, t.ID)
		}
	}
	for _, t := range l.tasks {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// FirstIncomplete returns the id of the first task not yet completed, or ""
// when every task is done.
func (l List) FirstIncomplete() string {
	for _, t := range l.tasks {
		if !t.Completed {
			return t.ID
		}
	}
	return ""
}

// Counts returns the number of open and completed tasks.
func (l List) Counts() (open, done int) {
	for _, t := range l.tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}
