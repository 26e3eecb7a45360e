package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peak/internal/export"
	"github.com/sadopc/peak/internal/service"
	"github.com/sadopc/peak/internal/timer"
)

const (
	defaultTickInterval     = time.Second
	defaultPresenceInterval = 5 * time.Second
	presenceTimeout         = 2 * time.Second
)

// Options tune the App. Zero values fall back to defaults.
type Options struct {
	TickInterval     time.Duration
	PresenceInterval time.Duration
	// Presence is optional; without it the instance count stays at one.
	Presence Presence
	// ExportDir receives export files.
	ExportDir string
	Logger    service.Logger
	Now       func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	svc    *service.Services
	opts   Options
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timer     timerModel
	tasks     tasksModel
	templates templatesModel
	stats     statsModel
	settings  settingsModel

	help    help.Model
	status  string
	isError bool
	online  int
}

func NewApp(svc *service.Services, opts Options) App {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.PresenceInterval <= 0 {
		opts.PresenceInterval = defaultPresenceInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	h := help.New()
	h.ShowAll = false

	return App{
		svc:        svc,
		opts:       opts,
		activeView: viewTimer,
		timer:      newTimerModel(),
		tasks:      newTasksModel(svc),
		templates:  newTemplatesModel(svc),
		settings:   newSettingsModel(svc),
		help:       h,
		online:     1,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(a.opts.TickInterval),
		a.beatCmd(),
	)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// beatCmd records a presence heartbeat off the event loop.
func (a App) beatCmd() tea.Cmd {
	p := a.opts.Presence
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		defer cancel()
		n, err := p.Beat(ctx)
		return presenceMsg{count: n, err: err}
	}
}

// nextBeat schedules the following heartbeat.
func (a App) nextBeat() tea.Cmd {
	beat := a.beatCmd()
	if beat == nil {
		return nil
	}
	return tea.Tick(a.opts.PresenceInterval, func(time.Time) tea.Msg {
		return beat()
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.templates.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		case key.Matches(msg, keys.ShiftTab):
			a.activeView = (a.activeView + viewState(len(viewNames)) - 1) % viewState(len(viewNames))
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		}

		if a.shortcutsActive() {
			if handled := a.handleTimerKey(msg); handled {
				return a, nil
			}
		}

		if a.activeView == viewTimer && key.Matches(msg, keys.New) {
			a.activeView = viewTasks
			var cmd tea.Cmd
			a.tasks, cmd = a.tasks.startInput(inputTask, "")
			return a, cmd
		}

	case tickMsg:
		a.svc.Timer.Tick()
		return a, tickCmd(a.opts.TickInterval)

	case presenceMsg:
		if msg.err != nil {
			if a.opts.Logger != nil {
				a.opts.Logger.Printf("presence heartbeat: %v", msg.err)
			}
		} else if msg.count > 0 {
			a.online = msg.count
		}
		return a, a.nextBeat()

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// shortcutsActive reports whether the timer keys apply in the current view.
// The timer view always takes them.
func (a App) shortcutsActive() bool {
	if a.activeView == viewTimer {
		return true
	}
	return a.svc.Store.GetState().Settings.Shortcuts.Enabled
}

func (a App) handleTimerKey(msg tea.KeyMsg) bool {
	t := a.svc.Timer
	switch {
	case key.Matches(msg, keys.Toggle):
		t.Toggle()
	case key.Matches(msg, keys.Reset):
		t.Reset("")
	case key.Matches(msg, keys.Focus):
		t.SwitchMode(timer.Focus)
	case key.Matches(msg, keys.ShortBreak):
		t.SwitchMode(timer.ShortBreak)
	case key.Matches(msg, keys.LongBreak):
		t.SwitchMode(timer.LongBreak)
	case key.Matches(msg, keys.Cycle):
		t.CycleMode()
	case key.Matches(msg, keys.Skip):
		t.Skip()
	default:
		return false
	}
	return true
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewTemplates:
		a.templates, cmd = a.templates.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.inputActive()
	case viewTemplates:
		return a.templates.inputActive()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	st := a.svc.Store.GetState()
	applyTheme(st.Settings)

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view(st, a.online)
	case viewTasks:
		content = a.tasks.view(st)
	case viewTemplates:
		content = a.templates.view(st)
	case viewStats:
		content = a.stats.view(st, a.online)
	case viewSettings:
		content = a.settings.view(st)
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("peak")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Countdown in the footer when the timer view is hidden
	timerInfo := ""
	if a.activeView != viewTimer {
		snap := a.svc.Store.GetState().Timer
		clock := formatRemaining(snap.State.RemainingMs)
		if snap.State.IsRunning {
			timerInfo = successStyle.Render(" ● " + clock)
		} else {
			timerInfo = warningStyle.Render(" ⏸ " + clock)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Tasks")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format export.Format) tea.Cmd {
	tasks := a.svc.Store.GetState().Tasks
	dir := a.opts.ExportDir
	now := a.opts.Now()
	return func() tea.Msg {
		path, err := export.Write(format, tasks, dir, now)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
