package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/task"
	"github.com/sadopc/peak/internal/timer"
)

func TestTimerCompletionScenario(t *testing.T) {
	initial := state.Default()
	initial.Timer.Config.Preferences.TickSound = true
	initial.Settings.Notification.Desktop = true
	f := newFixture(t, initial)

	f.audio.EXPECT().PlayTick().Times(1)
	f.audio.EXPECT().PlayAlarm().Times(1)
	f.notifier.EXPECT().RequestPermission(gomock.Any()).Return(PermissionGranted)
	f.notifier.EXPECT().Notify(CompletionTitle, "Your focus session is done.")

	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 2000})
	f.svc.Timer.Start()

	f.clock.Advance(1000 * time.Millisecond)
	f.svc.Timer.Tick()
	remaining := f.state().Timer.State.RemainingMs
	assert.GreaterOrEqual(t, remaining, int64(900))
	assert.LessOrEqual(t, remaining, int64(1000))

	f.clock.Advance(2000 * time.Millisecond)
	f.svc.Timer.Tick()
	f.svc.Wait()

	st := f.state()
	assert.Equal(t, timer.ShortBreak, st.Timer.State.Mode)
	assert.Equal(t, 1, st.Stats.SessionsToday)
	require.NotNil(t, st.Stats.LastCompletedAt)
	assert.True(t, st.Timer.State.IsRunning, "autoStartBreaks is on by default")
	assert.Equal(t, timer.DefaultDurations.Millis(timer.ShortBreak), st.Timer.State.RemainingMs)
}

func TestCompletionRunsOnce(t *testing.T) {
	initial := state.Default()
	initial.Timer.Config.Preferences.AutoStartBreaks = false
	f := newFixture(t, initial)
	f.audio.EXPECT().PlayAlarm().Times(1)

	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 500})
	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()

	for range 3 {
		f.clock.Advance(time.Second)
		f.svc.Timer.Tick()
	}

	st := f.state()
	assert.Equal(t, 1, st.Stats.SessionsToday)
	assert.Equal(t, timer.ShortBreak, st.Timer.State.Mode)
	assert.False(t, st.Timer.State.IsRunning)
	assert.Nil(t, st.Timer.State.LastStartedAt)
}

func TestCompletionNotificationDenied(t *testing.T) {
	initial := state.Default()
	initial.Settings.Notification.Desktop = true
	initial.Timer.Config.Preferences.AlarmSound = false
	f := newFixture(t, initial)
	f.notifier.EXPECT().RequestPermission(gomock.Any()).Return(PermissionDenied)

	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 10})
	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()
	f.svc.Wait()

	assert.Equal(t, 1, f.state().Stats.SessionsToday)
}

func TestBreakCompletionNamesMode(t *testing.T) {
	initial := state.Default()
	initial.Settings.Notification.Desktop = true
	initial.Timer.Config.Preferences.AlarmSound = false
	f := newFixture(t, initial)
	f.notifier.EXPECT().RequestPermission(gomock.Any()).Return(PermissionGranted)
	f.notifier.EXPECT().Notify(CompletionTitle, "Your long break session is done.")

	f.svc.Timer.SwitchMode(timer.LongBreak)
	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 10})
	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()
	f.svc.Wait()

	st := f.state()
	assert.Equal(t, timer.Focus, st.Timer.State.Mode)
	assert.False(t, st.Timer.State.IsRunning, "autoStartFocus is off by default")
}

func TestTickIgnoresZeroDelta(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.Start()
	before := f.state()

	f.svc.Timer.Tick()
	f.svc.Timer.Tick()
	assert.Same(t, before, f.state())
}

func TestTickWhenStoppedIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	before := f.state()
	f.clock.Advance(time.Minute)
	f.svc.Timer.Tick()
	assert.Same(t, before, f.state())
}

func TestTickIsMonotonic(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.Start()
	prev := f.state().Timer.State.RemainingMs
	for _, step := range []time.Duration{0, 300 * time.Millisecond, time.Second, 0, 1700 * time.Millisecond} {
		f.clock.Advance(step)
		f.svc.Timer.Tick()
		got := f.state().Timer.State.RemainingMs
		assert.LessOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, int64(0))
		prev = got
	}
	assert.Equal(t, timer.DefaultDurations.Millis(timer.Focus)-3000, prev)
}

func TestFirstTickUsesStoredStartAnchor(t *testing.T) {
	initial := state.Default()
	started := t0.Add(-3 * time.Second)
	initial.Timer.State.IsRunning = true
	initial.Timer.State.LastStartedAt = &started
	f := newFixture(t, initial)

	f.svc.Timer.Tick()
	assert.Equal(t, timer.DefaultDurations.Millis(timer.Focus)-3000, f.state().Timer.State.RemainingMs)
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.Start()
	first := f.state()

	f.clock.Advance(5 * time.Second)
	f.svc.Timer.Start()
	assert.Same(t, first, f.state())
	assert.True(t, f.state().Timer.State.LastStartedAt.Equal(t0))
}

func TestPauseDiscardsUntickedTime(t *testing.T) {
	f := newFixture(t, nil)
	full := timer.DefaultDurations.Millis(timer.Focus)

	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()
	f.svc.Timer.Pause()
	f.svc.Timer.Pause()

	f.clock.Advance(10 * time.Second)
	f.svc.Timer.Tick()
	assert.Equal(t, full-1000, f.state().Timer.State.RemainingMs)

	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()
	assert.Equal(t, full-2000, f.state().Timer.State.RemainingMs)
}

func TestToggle(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.Toggle()
	assert.True(t, f.state().Timer.State.IsRunning)
	f.svc.Timer.Toggle()
	assert.False(t, f.state().Timer.State.IsRunning)
}

func TestResetAlwaysRefills(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.Start()
	f.clock.Advance(time.Minute)
	f.svc.Timer.Tick()

	f.svc.Timer.Reset("")
	st := f.state().Timer.State
	assert.False(t, st.IsRunning)
	assert.Equal(t, timer.DefaultDurations.Millis(timer.Focus), st.RemainingMs)

	f.svc.Timer.Reset(timer.ShortBreak)
	assert.Equal(t, timer.ShortBreak, f.state().Timer.State.Mode)
}

func TestSkipAutoStartsPerNewMode(t *testing.T) {
	f := newFixture(t, nil)

	f.svc.Timer.Skip()
	st := f.state().Timer.State
	assert.Equal(t, timer.ShortBreak, st.Mode)
	assert.True(t, st.IsRunning)

	f.svc.Timer.Skip()
	st = f.state().Timer.State
	assert.Equal(t, timer.LongBreak, st.Mode)
	assert.True(t, st.IsRunning)

	f.svc.Timer.Skip()
	st = f.state().Timer.State
	assert.Equal(t, timer.Focus, st.Mode)
	assert.False(t, st.IsRunning)
	assert.Equal(t, 0, f.state().Stats.SessionsToday, "skipping is not completing")
}

func TestSwitchAndCycleNeverAutoStart(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.SwitchMode(timer.ShortBreak)
	assert.False(t, f.state().Timer.State.IsRunning)

	for range 3 {
		f.svc.Timer.CycleMode()
		assert.False(t, f.state().Timer.State.IsRunning)
	}
	assert.Equal(t, timer.ShortBreak, f.state().Timer.State.Mode)
}

func TestUpdateDurationsClampsAndCaps(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.Timer.UpdateDurations(timer.Durations{Focus: 0, ShortBreak: 3, LongBreak: -1})

	snap := f.state().Timer
	assert.Equal(t, timer.Durations{Focus: 1, ShortBreak: 3, LongBreak: 1}, snap.Config.Durations)
	assert.LessOrEqual(t, snap.State.RemainingMs, snap.Config.Durations.Millis(snap.State.Mode))
}

func TestUpdatePreferences(t *testing.T) {
	f := newFixture(t, nil)
	on := true
	f.svc.Timer.UpdatePreferences(timer.PreferencesPatch{AutoStartFocus: &on})
	assert.True(t, f.state().Timer.Config.Preferences.AutoStartFocus)
	assert.True(t, f.state().Timer.Config.Preferences.AlarmSound)
}

func TestFocusCompletionAutoCompletesActiveTask(t *testing.T) {
	initial := state.Default()
	initial.Settings.Tasks.AutoCompleteOnFocusEnd = true
	initial.Settings.Tasks.AutoSortCompleted = true
	initial.Timer.Config.Preferences.AlarmSound = false
	f := newFixture(t, initial)

	f.svc.Todo.AddTask("A")
	f.svc.Todo.AddTask("B")
	f.svc.Todo.AddSubtask("id-1", "first")
	require.Equal(t, "id-1", f.state().ActiveTaskID)

	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 1000})
	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()

	st := f.state()
	a, ok := st.Task("id-1")
	require.True(t, ok)
	assert.True(t, a.Completed)
	require.NotNil(t, a.CompletedAt)
	for _, s := range a.Subtasks {
		assert.True(t, s.Completed)
	}
	assert.Equal(t, []string{"id-2", "id-1"}, f.taskIDs())
	assert.Equal(t, "id-2", st.ActiveTaskID)
	assertActiveInvariant(t, st)
}

func TestBreakCompletionLeavesTasksAlone(t *testing.T) {
	initial := state.Default()
	initial.Settings.Tasks.AutoCompleteOnFocusEnd = true
	initial.Timer.Config.Preferences.AlarmSound = false
	f := newFixture(t, initial)

	f.svc.Todo.AddTask("A")
	f.svc.Timer.SwitchMode(timer.ShortBreak)
	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 1000})
	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()

	a, _ := f.state().Task("id-1")
	assert.False(t, a.Completed)
	assert.Equal(t, "id-1", f.state().ActiveTaskID)
}

func TestCompletionWithoutActiveTask(t *testing.T) {
	initial := state.Default()
	initial.Settings.Tasks.AutoCompleteOnFocusEnd = true
	initial.Timer.Config.Preferences.AlarmSound = false
	initial.Tasks = []task.Task{}
	f := newFixture(t, initial)

	f.store.Dispatch(state.TimerApplyRemaining{RemainingMs: 1})
	f.svc.Timer.Start()
	f.clock.Advance(time.Second)
	f.svc.Timer.Tick()

	assert.Equal(t, 1, f.state().Stats.SessionsToday)
	assert.Empty(t, f.state().Tasks)
}
