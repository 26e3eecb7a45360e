package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/task"
)

func TestAddTask(t *testing.T) {
	f := newFixture(t, nil)

	f.svc.Todo.AddTask("")
	f.svc.Todo.AddTask("   ")
	assert.Empty(t, f.state().Tasks)

	f.svc.Todo.AddTask("  Write report ")
	require.Len(t, f.state().Tasks, 1)
	tk := f.state().Tasks[0]
	assert.Equal(t, "Write report", tk.Title)
	assert.Equal(t, 0, tk.Order)
	assert.False(t, tk.Completed)
	assert.True(t, tk.CreatedAt.Equal(t0))
	assert.Equal(t, tk.ID, f.state().ActiveTaskID, "first task becomes active")
}

func TestUpdateTitleDoesNotTrim(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")

	f.svc.Todo.UpdateTitle("id-1", "  spaced  ")
	tk, _ := f.state().Task("id-1")
	assert.Equal(t, "  spaced  ", tk.Title)

	f.svc.Todo.UpdateTitle("id-1", "")
	tk, _ = f.state().Task("id-1")
	assert.Equal(t, "", tk.Title, "blank titles are accepted on update")
}

func TestToggleWithAutoSort(t *testing.T) {
	initial := state.Default()
	initial.Settings.Tasks.AutoSortCompleted = true
	f := newFixture(t, initial)
	f.svc.Todo.AddTask("A")
	f.svc.Todo.AddTask("B")

	f.svc.Todo.ToggleTask("id-1")

	assert.Equal(t, []string{"id-2", "id-1"}, f.taskIDs())
	assert.Equal(t, "id-2", f.state().ActiveTaskID)
}

func TestToggleWithoutAutoSortKeepsOrder(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")
	f.svc.Todo.AddTask("B")

	f.svc.Todo.ToggleTask("id-1")
	assert.Equal(t, []string{"id-1", "id-2"}, f.taskIDs())
	assert.Equal(t, "id-2", f.state().ActiveTaskID)
}

func TestToggleCascadesToSubtasks(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")
	f.svc.Todo.AddSubtask("id-1", "one")
	f.svc.Todo.AddSubtask("id-1", "two")

	f.svc.Todo.ToggleTask("id-1")
	tk, _ := f.state().Task("id-1")
	require.True(t, tk.Completed)
	require.NotNil(t, tk.CompletedAt)
	for _, s := range tk.Subtasks {
		assert.True(t, s.Completed)
		assert.NotNil(t, s.CompletedAt)
	}
	assert.Equal(t, "", f.state().ActiveTaskID)

	f.svc.Todo.ToggleTask("id-1")
	tk, _ = f.state().Task("id-1")
	assert.False(t, tk.Completed)
	assert.Nil(t, tk.CompletedAt)
	for _, s := range tk.Subtasks {
		assert.False(t, s.Completed)
	}
	assert.Equal(t, "id-1", f.state().ActiveTaskID)
}

func TestToggleMissingTask(t *testing.T) {
	f := newFixture(t, nil)
	before := f.state()
	f.svc.Todo.ToggleTask("nope")
	assert.Same(t, before, f.state())
}

func TestRemoveActiveTaskMovesFocus(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")
	f.svc.Todo.AddTask("B")
	f.svc.Todo.AddTask("C")
	f.svc.Todo.ToggleTask("id-2")

	f.svc.Todo.RemoveTask("id-1")
	assert.Equal(t, "id-3", f.state().ActiveTaskID)

	f.svc.Todo.RemoveTask("id-3")
	assert.Equal(t, "", f.state().ActiveTaskID)
}

func TestReorderSubsetKeepsOthers(t *testing.T) {
	f := newFixture(t, nil)
	for _, title := range []string{"A", "B", "C", "D"} {
		f.svc.Todo.AddTask(title)
	}
	f.svc.Todo.Reorder([]string{"id-4", "id-3"})

	pos := map[string]int{}
	for i, id := range f.taskIDs() {
		pos[id] = i
	}
	assert.Less(t, pos["id-4"], pos["id-3"])
	assert.Less(t, pos["id-1"], pos["id-2"])
	assertActiveInvariant(t, f.state())
}

func TestMove(t *testing.T) {
	f := newFixture(t, nil)
	for _, title := range []string{"A", "B", "C"} {
		f.svc.Todo.AddTask(title)
	}

	f.svc.Todo.Move("id-3", -1)
	assert.Equal(t, []string{"id-1", "id-3", "id-2"}, f.taskIDs())

	f.svc.Todo.Move("id-1", 1)
	assert.Equal(t, []string{"id-3", "id-1", "id-2"}, f.taskIDs())

	before := f.state()
	f.svc.Todo.Move("id-3", -1)
	f.svc.Todo.Move("id-2", 1)
	f.svc.Todo.Move("missing", 1)
	assert.Same(t, before, f.state())
}

func TestSubtasks(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")

	f.svc.Todo.AddSubtask("id-1", " ")
	f.svc.Todo.AddSubtask("missing", "x")
	f.svc.Todo.AddSubtask("id-1", " one ")
	tk, _ := f.state().Task("id-1")
	require.Len(t, tk.Subtasks, 1)
	assert.Equal(t, "one", tk.Subtasks[0].Title)
	subID := tk.Subtasks[0].ID

	f.svc.Todo.ToggleSubtask("id-1", subID)
	tk, _ = f.state().Task("id-1")
	assert.True(t, tk.Subtasks[0].Completed)
	assert.NotNil(t, tk.Subtasks[0].CompletedAt)
	assert.False(t, tk.Completed, "parent is untouched")

	f.svc.Todo.ToggleSubtask("id-1", subID)
	tk, _ = f.state().Task("id-1")
	assert.False(t, tk.Subtasks[0].Completed)
	assert.Nil(t, tk.Subtasks[0].CompletedAt)

	f.svc.Todo.RemoveSubtask("id-1", subID)
	tk, _ = f.state().Task("id-1")
	assert.Empty(t, tk.Subtasks)
}

func TestTags(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")

	f.svc.Todo.AddTag("id-1", "Urgent")
	f.svc.Todo.AddTag("id-1", "urgent")
	f.svc.Todo.AddTag("id-1", "  ")
	f.svc.Todo.AddTag("id-1", "home")

	tk, _ := f.state().Task("id-1")
	require.Len(t, tk.Tags, 2)
	assert.Equal(t, "Urgent", tk.Tags[0].Label)
	assert.Equal(t, "home", tk.Tags[1].Label)

	before := f.state()
	f.svc.Todo.RemoveTag("id-1", "missing")
	assert.Same(t, before, f.state())

	f.svc.Todo.RemoveTag("id-1", tk.Tags[0].ID)
	tk, _ = f.state().Task("id-1")
	require.Len(t, tk.Tags, 1)
	assert.Equal(t, "home", tk.Tags[0].Label)
}

func TestApplyTemplateScenario(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.ApplyTemplate(task.Template{
		ID:    "tmpl",
		Name:  "T",
		Items: []task.TemplateItem{{Title: "X", Tags: []string{"t"}, Subtasks: []string{"s1", "s2"}}},
	})

	require.Len(t, f.state().Tasks, 1)
	tk := f.state().Tasks[0]
	assert.Equal(t, "X", tk.Title)
	require.Len(t, tk.Subtasks, 2)
	require.Len(t, tk.Tags, 1)
	assert.NotEmpty(t, tk.ID)
	for _, s := range tk.Subtasks {
		assert.NotEmpty(t, s.ID)
	}
	assert.NotEmpty(t, tk.Tags[0].ID)
	assert.Equal(t, tk.ID, f.state().ActiveTaskID)
}

func TestApplyTemplateYieldsDistinctTasks(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("existing")

	tmpl := task.DefaultTemplates()[0]
	f.svc.Todo.ApplyTemplate(tmpl)
	f.svc.Todo.ApplyTemplate(tmpl)

	st := f.state()
	require.Len(t, st.Tasks, 1+2*len(tmpl.Items))
	seen := map[string]bool{}
	for _, tk := range st.Tasks {
		assert.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}
	assert.Equal(t, "id-1", st.Tasks[0].ID, "template tasks append after existing ones")
}

func TestFocusTask(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Todo.AddTask("A")
	f.svc.Todo.AddTask("B")
	f.svc.Todo.AddTask("C")
	f.svc.Todo.ToggleTask("id-3")

	f.svc.Todo.FocusTask("id-2")
	assert.Equal(t, "id-2", f.state().ActiveTaskID)

	f.svc.Todo.FocusTask("id-3")
	f.svc.Todo.FocusTask("missing")
	assert.Equal(t, "id-2", f.state().ActiveTaskID)
}

func TestActiveTaskInvariantUnderRandomCommands(t *testing.T) {
	initial := state.Default()
	initial.Settings.Tasks.AutoSortCompleted = true
	f := newFixture(t, initial)
	rng := rand.New(rand.NewSource(7))

	pick := func() string {
		tasks := f.state().Tasks
		if len(tasks) == 0 || rng.Intn(10) == 0 {
			return "missing"
		}
		return tasks[rng.Intn(len(tasks))].ID
	}

	for i := 0; i < 500; i++ {
		switch rng.Intn(8) {
		case 0, 1:
			f.svc.Todo.AddTask("task")
		case 2:
			f.svc.Todo.ToggleTask(pick())
		case 3:
			f.svc.Todo.RemoveTask(pick())
		case 4:
			f.svc.Todo.Reorder([]string{pick(), pick()})
		case 5:
			f.svc.Todo.FocusTask(pick())
		case 6:
			f.svc.Todo.ApplyTemplate(task.DefaultTemplates()[0])
		case 7:
			f.svc.Todo.AddSubtask(pick(), "sub")
		}
		assertActiveInvariant(t, f.state())
	}
}
