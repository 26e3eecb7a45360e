package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peak/internal/state"
)

type statsModel struct {
	width  int
	height int
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// buildChart draws one bar per counter.
func (s statsModel) buildChart(st *state.AppState) barchart.Model {
	chartWidth := max(s.width-8, 20)
	chartHeight := 10
	if s.height > 30 {
		chartHeight = 14
	}

	open, done := st.TaskList().Counts()
	bars := []barchart.BarData{
		statBar("Sessions", float64(st.Stats.SessionsToday), colorPrimary),
		statBar("Open", float64(open), colorWarning),
		statBar("Done", float64(done), colorSuccess),
	}

	chart := barchart.New(chartWidth, chartHeight)
	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func statBar(label string, value float64, color lipgloss.Color) barchart.BarData {
	return barchart.BarData{
		Label: label,
		Values: []barchart.BarValue{{
			Name:  label,
			Value: value,
			Style: lipgloss.NewStyle().Foreground(color),
		}},
	}
}

func (s statsModel) view(st *state.AppState, online int) string {
	w := s.width - 4

	open, done := st.TaskList().Counts()
	last := "never"
	if st.Stats.LastCompletedAt != nil {
		last = st.Stats.LastCompletedAt.Local().Format("Mon 15:04")
	}

	rows := []string{
		fmt.Sprintf("  %-22s %s", "Sessions completed", highlightStyle.Render(fmt.Sprint(st.Stats.SessionsToday))),
		fmt.Sprintf("  %-22s %s", "Last session ended", highlightStyle.Render(last)),
		fmt.Sprintf("  %-22s %s", "Open tasks", highlightStyle.Render(fmt.Sprint(open))),
		fmt.Sprintf("  %-22s %s", "Completed tasks", highlightStyle.Render(fmt.Sprint(done))),
		fmt.Sprintf("  %-22s %s", "Running instances", highlightStyle.Render(fmt.Sprint(online))),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Stats"),
		"",
		s.buildChart(st).View(),
		"",
		mutedStyle.Render("  "+strings.Repeat("─", min(max(w-6, 1), 40))),
		strings.Join(rows, "\n"),
	))
}
