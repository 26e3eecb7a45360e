package service

import (
	"strings"

	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/task"
)

// TodoService is the command layer for tasks, subtasks and tags. It keeps
// the active task pointing at an existing, incomplete task.
type TodoService struct {
	store StateStore
	clock Clock
	ids   IDGenerator
}

func newTodoService(store StateStore, clock Clock, ids IDGenerator) *TodoService {
	return &TodoService{store: store, clock: clock, ids: ids}
}

// AddTask appends a task titled title. Blank titles are ignored.
func (s *TodoService) AddTask(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	order := len(s.store.GetState().Tasks)
	t := task.New(s.ids.Generate(), title, order, s.clock.Now())
	s.store.Dispatch(state.TaskAdd{Tasks: []task.Task{t}})
	syncActiveTask(s.store)
}

// UpdateTitle sets the title verbatim. Unlike AddTask it does not trim or
// reject blank titles.
func (s *TodoService) UpdateTitle(id, title string) {
	s.store.Dispatch(state.TaskUpdate{ID: id, Patch: task.Patch{Title: &title}})
}

// ToggleTask flips the completion of a task and of all its subtasks.
func (s *TodoService) ToggleTask(id string) {
	t, ok := s.store.GetState().Task(id)
	if !ok {
		return
	}
	completed := !t.Completed
	now := s.clock.Now()
	patch := task.Patch{
		Completed: &completed,
		Subtasks:  t.SubtasksMarked(completed, now),
	}
	if completed {
		patch.CompletedAt = &now
	}
	s.store.Dispatch(state.TaskUpdate{ID: id, Patch: patch})
	applyAutoSort(s.store)
	syncActiveTask(s.store)
}

// RemoveTask deletes a task.
func (s *TodoService) RemoveTask(id string) {
	s.store.Dispatch(state.TaskRemove{ID: id})
	applyAutoSort(s.store)
	syncActiveTask(s.store)
}

// Reorder gives the listed tasks their position in ids as new order.
func (s *TodoService) Reorder(ids []string) {
	s.store.Dispatch(state.TaskReorder{IDs: ids})
	syncActiveTask(s.store)
}

// Move shifts a task by delta positions in display order.
func (s *TodoService) Move(id string, delta int) {
	tasks := s.store.GetState().Tasks
	from := -1
	for i, t := range tasks {
		if t.ID == id {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(tasks) || to == from {
		return
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{moved}, ids[to:]...)...)
	s.Reorder(ids)
}

// AddSubtask appends a subtask to taskID. Blank titles are ignored.
func (s *TodoService) AddSubtask(taskID, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	t, ok := s.store.GetState().Task(taskID)
	if !ok {
		return
	}
	subs := append(append([]task.SubTask{}, t.Subtasks...), task.SubTask{ID: s.ids.Generate(), Title: title})
	s.store.Dispatch(state.SubtasksReplace{TaskID: taskID, Subtasks: subs})
	syncActiveTask(s.store)
}

// ToggleSubtask flips the completion of one subtask.
func (s *TodoService) ToggleSubtask(taskID, subtaskID string) {
	t, ok := s.store.GetState().Task(taskID)
	if !ok {
		return
	}
	sub, ok := t.Subtask(subtaskID)
	if !ok {
		return
	}
	s.store.Dispatch(state.SubtaskUpdate{TaskID: taskID, Subtask: sub.Marked(!sub.Completed, s.clock.Now())})
}

// RemoveSubtask deletes one subtask.
func (s *TodoService) RemoveSubtask(taskID, subtaskID string) {
	s.store.Dispatch(state.SubtaskRemove{TaskID: taskID, SubtaskID: subtaskID})
}

// AddTag labels a task. Blank labels and labels the task already has
// (ignoring case) are ignored.
func (s *TodoService) AddTag(taskID, label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	t, ok := s.store.GetState().Task(taskID)
	if !ok || t.HasLabel(label) {
		return
	}
	tags := append(append([]task.Tag{}, t.Tags...), task.Tag{ID: s.ids.Generate(), Label: label})
	s.store.Dispatch(state.TaskUpdate{ID: taskID, Patch: task.Patch{Tags: tags}})
}

// RemoveTag drops one tag from a task.
func (s *TodoService) RemoveTag(taskID, tagID string) {
	t, ok := s.store.GetState().Task(taskID)
	if !ok {
		return
	}
	tags := make([]task.Tag, 0, len(t.Tags))
	for _, tag := range t.Tags {
		if tag.ID != tagID {
			tags = append(tags, tag)
		}
	}
	if len(tags) == len(t.Tags) {
		return
	}
	s.store.Dispatch(state.TaskUpdate{ID: taskID, Patch: task.Patch{Tags: tags}})
}

// ApplyTemplate appends one new task per template item.
func (s *TodoService) ApplyTemplate(tmpl task.Template) {
	if len(tmpl.Items) == 0 {
		return
	}
	base := len(s.store.GetState().Tasks)
	now := s.clock.Now()
	tasks := make([]task.Task, 0, len(tmpl.Items))
	for i, item := range tmpl.Items {
		tasks = append(tasks, task.FromTemplate(item, s.ids.Generate(), base+i, now))
	}
	s.store.Dispatch(state.TaskAdd{Tasks: tasks})
	applyAutoSort(s.store)
	syncActiveTask(s.store)
}

// FocusTask makes id the active task. Missing or completed tasks are
// ignored.
func (s *TodoService) FocusTask(id string) {
	t, ok := s.store.GetState().Task(id)
	if !ok || t.Completed {
		return
	}
	s.store.Dispatch(state.TaskSetActive{ID: id})
}

// syncActiveTask keeps a valid active task and otherwise falls back to the
// first incomplete task in display order, or to none.
func syncActiveTask(store StateStore) {
	st := store.GetState()
	if t, ok := st.ActiveTask(); ok && !t.Completed {
		return
	}
	store.Dispatch(state.TaskSetActive{ID: st.TaskList().FirstIncomplete()})
}

// applyAutoSort sinks completed tasks below incomplete ones when the
// setting is on.
func applyAutoSort(store StateStore) {
	st := store.GetState()
	if !st.Settings.Tasks.AutoSortCompleted {
		return
	}
	store.Dispatch(state.TaskReorder{IDs: st.TaskList().CompletedLast()})
}
