package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/sadopc/peak/internal/state"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type seqIDs struct {
	n int
}

func (g *seqIDs) Generate() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixture struct {
	store    *state.Store
	clock    *fakeClock
	ids      *seqIDs
	audio    *MockAudio
	notifier *MockNotifier
	svc      *Services
}

// newFixture builds services over a store seeded with initial (defaults
// when nil). Audio and notifier are strict mocks: every call must be
// expected by the test.
func newFixture(t *testing.T, initial *state.AppState) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		store:    state.NewStore(initial),
		clock:    &fakeClock{now: t0},
		ids:      &seqIDs{},
		audio:    NewMockAudio(ctrl),
		notifier: NewMockNotifier(ctrl),
	}
	f.svc = New(Deps{
		Store:    f.store,
		Clock:    f.clock,
		IDs:      f.ids,
		Audio:    f.audio,
		Notifier: f.notifier,
	})
	t.Cleanup(f.svc.Wait)
	return f
}

func (f *fixture) state() *state.AppState {
	return f.store.GetState()
}

func (f *fixture) taskIDs() []string {
	out := []string{}
	for _, t := range f.state().Tasks {
		out = append(out, t.ID)
	}
	return out
}

// assertActiveInvariant fails when the active task is missing or completed.
func assertActiveInvariant(t *testing.T, st *state.AppState) {
	t.Helper()
	if st.ActiveTaskID == "" {
		return
	}
	tk, ok := st.Task(st.ActiveTaskID)
	if !ok {
		t.Fatalf("active task %q does not exist", st.ActiveTaskID)
	}
	if tk.Completed {
		t.Fatalf("active task %q is completed", st.ActiveTaskID)
	}
}
