package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/timer"
)

// timerModel renders the countdown. All timer state lives in the store; the
// model only keeps the progress bar and its size.
type timerModel struct {
	width  int
	height int

	bar progress.Model
}

func newTimerModel() timerModel {
	return timerModel{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) view(st *state.AppState, online int) string {
	switch st.Settings.Layout.TimerView {
	case state.ViewMini:
		return t.miniView(st)
	case state.ViewMaximal:
		return t.panel(st, online, t.width-4)
	default:
		return t.splitView(st, online)
	}
}

// panel is the full timer card: mode tabs, clock, progress and status.
func (t timerModel) panel(st *state.AppState, online, w int) string {
	snap := st.Timer
	clock := formatRemaining(snap.State.RemainingMs)

	clockStyle := timerStyle
	if snap.State.IsRunning {
		clockStyle = timerRunningStyle
	}
	inner := max(w-6, 10)
	clockView := clockStyle.Width(inner).Render(spaced(clock))

	bar := t.bar
	bar.Width = inner
	total := snap.Config.Durations.Millis(snap.State.Mode)
	barView := bar.ViewAs(progressOf(snap.State.RemainingMs, total))

	status := warningStyle.Render("⏸ paused")
	if snap.State.IsRunning {
		status = successStyle.Render("● running")
	}

	focusLine := mutedStyle.Render("No task in focus")
	if active, ok := st.ActiveTask(); ok {
		focusLine = "Now: " + highlightStyle.Render(ansi.Truncate(active.Title, max(inner-5, 1), "…"))
	}

	meta := mutedStyle.Render(fmt.Sprintf("%s today · %s online",
		plural(st.Stats.SessionsToday, "session"), plural(online, "instance")))

	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		center.Render(modeTabs(snap.State.Mode)),
		"",
		clockView,
		"",
		barView,
		"",
		center.Render(status),
		center.Render(focusLine),
		center.Render(meta),
	))
}

// splitView puts the timer card next to a short task summary.
func (t timerModel) splitView(st *state.AppState, online int) string {
	w := t.width - 4
	if w < 60 {
		return t.panel(st, online, w)
	}
	left := w * 3 / 5
	right := w - left - 1

	var rows []string
	rows = append(rows, titleStyle.Render("Up next"), "")
	open, done := st.TaskList().Counts()
	shown := 0
	for _, tk := range st.Tasks {
		if tk.Completed {
			continue
		}
		marker := "  "
		if tk.ID == st.ActiveTaskID {
			marker = "▸ "
		}
		rows = append(rows, normalItemStyle.Render(marker+ansi.Truncate(tk.Title, max(right-10, 1), "…")))
		shown++
		if shown == 8 {
			break
		}
	}
	if shown == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing left to do"))
	}
	rows = append(rows, "", mutedStyle.Render(fmt.Sprintf("%d open · %d done", open, done)))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		t.panel(st, online, left),
		" ",
		panelStyle.Width(right).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
}

// miniView is a single status line.
func (t timerModel) miniView(st *state.AppState) string {
	snap := st.Timer
	icon := warningStyle.Render("⏸")
	clockStyle := timerStyle
	if snap.State.IsRunning {
		icon = successStyle.Render("●")
		clockStyle = timerRunningStyle
	}
	line := fmt.Sprintf("%s %s %s", icon, modeActiveStyle.Render(snap.State.Mode.Label()), clockStyle.Render(formatRemaining(snap.State.RemainingMs)))
	if active, ok := st.ActiveTask(); ok {
		line += mutedStyle.Render(" · ") + ansi.Truncate(active.Title, max(t.width-30, 1), "…")
	}
	return headerStyle.Render(line)
}

func modeTabs(current timer.Mode) string {
	tabs := make([]string, 0, len(timer.Modes))
	for i, m := range timer.Modes {
		label := fmt.Sprintf("%d %s", i+1, m.Label())
		if m == current {
			tabs = append(tabs, modeActiveStyle.Render(label))
		} else {
			tabs = append(tabs, modeInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// spaced widens the clock digits so it reads as the centrepiece.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
