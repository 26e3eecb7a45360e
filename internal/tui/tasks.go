package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/peak/internal/service"
	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/task"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputTask
	inputRename
	inputSubtask
	inputTag
)

var inputPrompts = map[inputKind]string{
	inputTask:    "New task: ",
	inputRename:  "Rename: ",
	inputSubtask: "New subtask: ",
	inputTag:     "New tag: ",
}

// detailRow is one line of the detail pane: a subtask or a tag.
type detailRow struct {
	subtask *task.SubTask
	tag     *task.Tag
}

type tasksModel struct {
	svc    *service.Services
	width  int
	height int

	cursor    int
	detail    bool // true = browsing subtasks and tags of the selected task
	subCursor int

	input     textinput.Model
	inputKind inputKind
}

func newTasksModel(svc *service.Services) tasksModel {
	ti := textinput.New()
	ti.CharLimit = 200
	return tasksModel{svc: svc, input: ti}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(w-20, 10)
}

func (m tasksModel) inputActive() bool {
	return m.inputKind != inputNone
}

func (m tasksModel) tasks() []task.Task {
	return m.svc.Store.GetState().Tasks
}

func (m tasksModel) selected() (task.Task, bool) {
	tasks := m.tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func detailRows(t task.Task) []detailRow {
	rows := make([]detailRow, 0, len(t.Subtasks)+len(t.Tags))
	for i := range t.Subtasks {
		rows = append(rows, detailRow{subtask: &t.Subtasks[i]})
	}
	for i := range t.Tags {
		rows = append(rows, detailRow{tag: &t.Tags[i]})
	}
	return rows
}

// clamp keeps both cursors inside the current list after a change.
func (m *tasksModel) clamp() {
	n := len(m.tasks())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if t, ok := m.selected(); ok {
		if rows := len(detailRows(t)); m.subCursor >= rows {
			m.subCursor = max(0, rows-1)
		}
	} else {
		m.detail = false
		m.subCursor = 0
	}
}

func (m tasksModel) startInput(kind inputKind, value string) (tasksModel, tea.Cmd) {
	m.inputKind = kind
	m.input.Prompt = inputPrompts[kind]
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.inputActive() {
		return m.updateInput(msg)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.detail {
		return m.updateDetail(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m tasksModel) updateInput(msg tea.Msg) (tasksModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Back):
			m.inputKind = inputNone
			m.input.Blur()
			return m, nil
		case key.Matches(k, keys.Enter):
			value := strings.TrimSpace(m.input.Value())
			kind := m.inputKind
			m.inputKind = inputNone
			m.input.Blur()
			m.input.Reset()
			return m, m.submit(kind, value)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tasksModel) submit(kind inputKind, value string) tea.Cmd {
	if value == "" {
		return nil
	}
	if kind == inputTask {
		m.svc.Todo.AddTask(value)
		m.cursor = len(m.tasks()) - 1
		return nil
	}
	t, ok := m.selected()
	if !ok {
		return nil
	}
	switch kind {
	case inputRename:
		m.svc.Todo.UpdateTitle(t.ID, value)
	case inputSubtask:
		m.svc.Todo.AddSubtask(t.ID, value)
	case inputTag:
		if t.HasLabel(value) {
			return func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Tag %q already set", value), isError: true}
			}
		}
		m.svc.Todo.AddTag(t.ID, value)
	}
	return nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	t, hasTask := m.selected()
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		return m.startInput(inputTask, "")
	case !hasTask:
		return m, nil
	case key.Matches(msg, keys.Complete):
		m.svc.Todo.ToggleTask(t.ID)
		m.cursor = indexOf(m.tasks(), t.ID, m.cursor)
	case key.Matches(msg, keys.Delete):
		m.svc.Todo.RemoveTask(t.ID)
		m.clamp()
	case key.Matches(msg, keys.Active):
		m.svc.Todo.FocusTask(t.ID)
	case key.Matches(msg, keys.Rename):
		return m.startInput(inputRename, t.Title)
	case key.Matches(msg, keys.Subtask):
		return m.startInput(inputSubtask, "")
	case key.Matches(msg, keys.Tag):
		return m.startInput(inputTag, "")
	case key.Matches(msg, keys.MoveUp):
		m.svc.Todo.Move(t.ID, -1)
		m.cursor = indexOf(m.tasks(), t.ID, m.cursor)
	case key.Matches(msg, keys.MoveDown):
		m.svc.Todo.Move(t.ID, 1)
		m.cursor = indexOf(m.tasks(), t.ID, m.cursor)
	case key.Matches(msg, keys.Right):
		m.detail = true
		m.subCursor = 0
	}
	return m, nil
}

func (m tasksModel) updateDetail(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		m.detail = false
		return m, nil
	}
	rows := detailRows(t)

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Left):
		m.detail = false
	case key.Matches(msg, keys.Up):
		if m.subCursor > 0 {
			m.subCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.subCursor < len(rows)-1 {
			m.subCursor++
		}
	case key.Matches(msg, keys.Subtask):
		return m.startInput(inputSubtask, "")
	case key.Matches(msg, keys.Tag):
		return m.startInput(inputTag, "")
	case len(rows) == 0:
		return m, nil
	case key.Matches(msg, keys.Complete):
		if row := rows[m.subCursor]; row.subtask != nil {
			m.svc.Todo.ToggleSubtask(t.ID, row.subtask.ID)
		}
	case key.Matches(msg, keys.Delete):
		row := rows[m.subCursor]
		if row.subtask != nil {
			m.svc.Todo.RemoveSubtask(t.ID, row.subtask.ID)
		} else {
			m.svc.Todo.RemoveTag(t.ID, row.tag.ID)
		}
		m.clamp()
	}
	return m, nil
}

func indexOf(tasks []task.Task, id string, fallback int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return fallback
}

func (m tasksModel) view(st *state.AppState) string {
	w := m.width - 4
	open, done := st.TaskList().Counts()

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Tasks"), "  ",
		subtitleStyle.Render(fmt.Sprintf("%d open · %d done", open, done)),
	), "")

	if len(st.Tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks yet. Press n to add one."))
	}

	titleWidth := max(w-30, 10)
	for i, t := range st.Tasks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		box := "[ ]"
		title := ansi.Truncate(t.Title, titleWidth, "…")
		if t.Completed {
			box = "[x]"
			title = doneStyle.Render(title)
		}
		line := style.Render(cursor+box+" ") + title
		if t.ID == st.ActiveTaskID {
			line += " " + highlightStyle.Render("◉ focus")
		}
		if len(t.Subtasks) > 0 {
			line += mutedStyle.Render(fmt.Sprintf(" %d/%d", completedSubtasks(t), len(t.Subtasks)))
		}
		for _, tag := range t.Tags {
			line += " " + accentStyle.Render("#"+tag.Label)
		}
		rows = append(rows, line)

		if m.detail && i == m.cursor {
			rows = append(rows, m.detailView(t, titleWidth)...)
		}
	}

	rows = append(rows, "")
	if m.inputActive() {
		rows = append(rows, m.input.View())
	} else if m.detail {
		rows = append(rows, mutedStyle.Render("  enter: toggle  a: subtask  t: tag  d: delete  esc: back"))
	} else {
		rows = append(rows, mutedStyle.Render("  n: new  enter: done  f: focus  e: rename  →: details  K/J: move  d: delete"))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m tasksModel) detailView(t task.Task, width int) []string {
	rows := detailRows(t)
	if len(rows) == 0 {
		return []string{mutedStyle.Render("      no subtasks or tags")}
	}
	out := make([]string, 0, len(rows))
	for i, row := range rows {
		cursor := "    "
		if i == m.subCursor {
			cursor = "  ▸ "
		}
		if row.subtask != nil {
			box := "[ ]"
			title := ansi.Truncate(row.subtask.Title, max(width-8, 1), "…")
			if row.subtask.Completed {
				box = "[x]"
				title = doneStyle.Render(title)
			}
			out = append(out, "  "+cursor+box+" "+title)
			continue
		}
		out = append(out, "  "+cursor+accentStyle.Render("#"+row.tag.Label))
	}
	return out
}

func completedSubtasks(t task.Task) int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}
