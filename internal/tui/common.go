package tui

import (
	"context"
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewTemplates
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Templates", "Stats", "Settings"}

// Presence reports how many instances are running. It is satisfied by
// *store.Presence.
type Presence interface {
	Beat(ctx context.Context) (int, error)
}

// --- Messages ---

type tickMsg time.Time

type presenceMsg struct {
	count int
	err   error
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatRemaining renders a countdown as MM:SS, rounding partial seconds up
// so the clock only reads 00:00 once the session is over.
func formatRemaining(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := (ms + 999) / 1000
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func progressOf(remaining, total int64) float64 {
	if total <= 0 {
		return 0
	}
	f := 1 - float64(remaining)/float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
