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
)

type templatesModel struct {
	svc    *service.Services
	width  int
	height int

	cursor int
	naming bool
	input  textinput.Model
}

func newTemplatesModel(svc *service.Services) templatesModel {
	ti := textinput.New()
	ti.Prompt = "Template name: "
	ti.CharLimit = 80
	return templatesModel{svc: svc, input: ti}
}

func (m *templatesModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(w-24, 10)
}

func (m templatesModel) inputActive() bool {
	return m.naming
}

func (m templatesModel) update(msg tea.Msg) (templatesModel, tea.Cmd) {
	if m.naming {
		return m.updateInput(msg)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	templates := m.svc.Store.GetState().Templates
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		if len(m.svc.Store.GetState().Tasks) == 0 {
			return m, statusCmd("Add some tasks before saving a template", true)
		}
		m.naming = true
		m.input.Reset()
		return m, m.input.Focus()
	case len(templates) == 0:
		return m, nil
	case key.Matches(keyMsg, keys.Enter):
		tmpl := templates[m.cursor]
		m.svc.Todo.ApplyTemplate(tmpl)
		return m, statusCmd(fmt.Sprintf("Added %s from %q", plural(len(tmpl.Items), "task"), tmpl.Name), false)
	case key.Matches(keyMsg, keys.Delete):
		m.svc.Templates.Remove(templates[m.cursor].ID)
		if n := len(m.svc.Store.GetState().Templates); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
	}
	return m, nil
}

func (m templatesModel) updateInput(msg tea.Msg) (templatesModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Back):
			m.naming = false
			m.input.Blur()
			return m, nil
		case key.Matches(k, keys.Enter):
			name := strings.TrimSpace(m.input.Value())
			m.naming = false
			m.input.Blur()
			tmpl, ok := m.svc.Templates.CreateFromCurrentTasks(name)
			if !ok {
				return m, statusCmd("Template needs a name and at least one task", true)
			}
			m.cursor = len(m.svc.Store.GetState().Templates) - 1
			return m, statusCmd(fmt.Sprintf("Saved template %q", tmpl.Name), false)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m templatesModel) view(st *state.AppState) string {
	w := m.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Templates"), "")
	if len(st.Templates) == 0 {
		rows = append(rows, mutedStyle.Render("  No templates. Press n to save the current tasks."))
	}

	for i, tmpl := range st.Templates {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+ansi.Truncate(tmpl.Name, max(w-20, 10), "…"))+
			mutedStyle.Render(" ("+plural(len(tmpl.Items), "item")+")"))

		if i != m.cursor {
			continue
		}
		for _, item := range tmpl.Items {
			line := "      • " + ansi.Truncate(item.Title, max(w-16, 10), "…")
			if len(item.Subtasks) > 0 {
				line += mutedStyle.Render(" +" + plural(len(item.Subtasks), "subtask"))
			}
			for _, tag := range item.Tags {
				line += " " + accentStyle.Render("#"+tag)
			}
			rows = append(rows, line)
		}
	}

	rows = append(rows, "")
	if m.naming {
		rows = append(rows, m.input.View())
	} else {
		rows = append(rows, mutedStyle.Render("  enter: add tasks  n: save current tasks  d: delete"))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
