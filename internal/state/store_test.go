package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/peak/internal/task"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore(nil)
	require.NotNil(t, s.GetState())
	assert.Equal(t, Default().Timer, s.GetState().Timer)
}

func TestDispatchNotifiesOnChangeOnly(t *testing.T) {
	s := NewStore(nil)
	calls := 0
	s.Subscribe(func() { calls++ })

	s.Dispatch(TimerPause{})
	assert.Equal(t, 0, calls, "no-op dispatch must not notify")

	s.Dispatch(TimerStart{At: t0})
	assert.Equal(t, 1, calls)
	assert.True(t, s.GetState().Timer.State.IsRunning)
}

func TestListenerSeesCommittedState(t *testing.T) {
	s := NewStore(nil)
	var seen []int
	s.Subscribe(func() { seen = append(seen, s.GetState().Stats.SessionsToday) })

	s.Dispatch(StatsIncrementSession{At: t0})
	s.Dispatch(StatsIncrementSession{At: t0})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestUnsubscribe(t *testing.T) {
	s := NewStore(nil)
	a, b := 0, 0
	unsubA := s.Subscribe(func() { a++ })
	s.Subscribe(func() { b++ })

	s.Dispatch(StatsIncrementSession{At: t0})
	unsubA()
	unsubA()
	s.Dispatch(StatsIncrementSession{At: t0})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestReentrantDispatchFromListener(t *testing.T) {
	s := NewStore(nil)
	s.Subscribe(func() {
		st := s.GetState()
		if _, ok := st.Task("a"); ok && st.ActiveTaskID == "" {
			s.Dispatch(TaskSetActive{ID: "a"})
		}
	})

	s.Dispatch(TaskAdd{Tasks: []task.Task{task.New("a", "a", 0, t0)}})
	assert.Equal(t, "a", s.GetState().ActiveTaskID)
}

func TestConcurrentDispatchesAreSerialized(t *testing.T) {
	s := NewStore(nil)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(StatsIncrementSession{At: t0})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.GetState().Stats.SessionsToday)
}
