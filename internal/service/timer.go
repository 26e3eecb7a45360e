package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/task"
	"github.com/sadopc/peak/internal/timer"
)

// CompletionTitle is the title of the session-complete notification.
const CompletionTitle = "Session complete!"

const notifyTimeout = 10 * time.Second

// TimerService turns timer intents into store actions and owns everything
// that happens when a session runs out. Methods are meant to be called from
// a single goroutine.
type TimerService struct {
	store    StateStore
	audio    Audio
	notifier Notifier
	clock    Clock
	logger   Logger

	// lastTick is the anchor for elapsed-time accounting; zero when unset.
	lastTick time.Time
	pending  sync.WaitGroup
}

func newTimerService(store StateStore, audio Audio, notifier Notifier, clock Clock, logger Logger) *TimerService {
	return &TimerService{
		store:    store,
		audio:    audio,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

func (s *TimerService) running() bool {
	return s.store.GetState().Timer.State.IsRunning
}

// Start runs the timer from now. Calling it while running does nothing.
func (s *TimerService) Start() {
	if s.running() {
		return
	}
	now := s.clock.Now()
	s.lastTick = now
	s.store.Dispatch(state.TimerStart{At: now})
}

// Pause stops the timer. Calling it while stopped does nothing.
func (s *TimerService) Pause() {
	if !s.running() {
		return
	}
	s.store.Dispatch(state.TimerPause{})
	s.lastTick = time.Time{}
}

// Toggle pauses a running timer and starts a stopped one.
func (s *TimerService) Toggle() {
	if s.running() {
		s.Pause()
		return
	}
	s.Start()
}

// Reset stops and refills the timer for mode, or for the current mode when
// mode is empty.
func (s *TimerService) Reset(mode timer.Mode) {
	s.store.Dispatch(state.TimerReset{At: s.clock.Now(), Mode: mode})
	s.lastTick = time.Time{}
}

// Skip moves to the next mode in the cycle, ignoring the remaining time, and
// auto-starts when the new mode's preference says so.
func (s *TimerService) Skip() {
	snap := s.store.GetState().Timer
	next := timer.Next(snap.State.Mode)
	s.store.Dispatch(state.TimerSetMode{At: s.clock.Now(), Mode: next})
	s.lastTick = time.Time{}
	if snap.Config.Preferences.AutoStart(next) {
		s.Start()
	}
}

// SwitchMode selects mode directly. It never auto-starts.
func (s *TimerService) SwitchMode(mode timer.Mode) {
	s.store.Dispatch(state.TimerSetMode{At: s.clock.Now(), Mode: mode})
	s.lastTick = time.Time{}
}

// CycleMode switches to the next mode in the cycle without auto-starting.
func (s *TimerService) CycleMode() {
	s.SwitchMode(timer.Next(s.store.GetState().Timer.State.Mode))
}

// UpdateDurations replaces the duration table. Values below one minute are
// raised to one minute.
func (s *TimerService) UpdateDurations(d timer.Durations) {
	s.store.Dispatch(state.TimerSetDurations{Durations: d.Normalize()})
}

// UpdatePreferences merges the present flags of patch.
func (s *TimerService) UpdatePreferences(patch timer.PreferencesPatch) {
	s.store.Dispatch(state.TimerSetPreferences{Patch: patch})
}

// Tick accounts for the wall-clock time since the last tick (or since the
// session started) and handles completion when the countdown reaches zero.
// It is safe to call at any cadence; stopped timers and zero deltas are
// ignored.
func (s *TimerService) Tick() {
	snap := s.store.GetState().Timer
	if !snap.State.IsRunning {
		s.lastTick = time.Time{}
		return
	}

	now := s.clock.Now()
	anchor := now
	switch {
	case !s.lastTick.IsZero():
		anchor = s.lastTick
	case snap.State.LastStartedAt != nil:
		anchor = *snap.State.LastStartedAt
	}
	delta := max(now.Sub(anchor).Milliseconds(), 0)
	if delta <= 0 {
		return
	}

	s.lastTick = now
	s.store.Dispatch(state.TimerTick{DeltaMs: delta})

	updated := s.store.GetState().Timer
	if updated.State.RemainingMs == 0 {
		s.complete(now)
		return
	}
	if updated.Config.Preferences.TickSound {
		s.audio.PlayTick()
	}
}

// complete runs once per session, on the tick that drives the remaining time
// to zero. The pause dispatched here makes later ticks no-ops.
func (s *TimerService) complete(at time.Time) {
	st := s.store.GetState()
	mode := st.Timer.State.Mode
	prefs := st.Timer.Config.Preferences

	if mode == timer.Focus && st.Settings.Tasks.AutoCompleteOnFocusEnd {
		s.completeActiveTask(st, at)
	}

	s.store.Dispatch(state.TimerPause{})
	s.lastTick = time.Time{}
	s.store.Dispatch(state.StatsIncrementSession{At: at})
	s.logger.Printf("session complete: mode=%s sessions=%d", mode, s.store.GetState().Stats.SessionsToday)

	if prefs.AlarmSound {
		s.audio.PlayAlarm()
	}
	if s.store.GetState().Settings.Notification.Desktop {
		s.notifyCompletion(mode)
	}

	next := timer.Next(mode)
	s.store.Dispatch(state.TimerSetMode{At: at, Mode: next})
	if prefs.AutoStart(next) {
		s.Start()
	}
}

func (s *TimerService) completeActiveTask(st *state.AppState, at time.Time) {
	active, ok := st.ActiveTask()
	if !ok || active.Completed {
		return
	}
	done := true
	s.store.Dispatch(state.TaskUpdate{ID: active.ID, Patch: task.Patch{
		Completed:   &done,
		CompletedAt: &at,
		Subtasks:    active.SubtasksMarked(true, at),
	}})
	applyAutoSort(s.store)
	s.store.Dispatch(state.TaskSetActive{ID: s.store.GetState().TaskList().FirstIncomplete()})
}

// notifyCompletion asks for permission and notifies on a separate goroutine;
// the rest of completion does not wait for it.
func (s *TimerService) notifyCompletion(mode timer.Mode) {
	body := fmt.Sprintf("Your %s session is done.", mode.Label())
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if p := s.notifier.RequestPermission(ctx); p != PermissionGranted {
			s.logger.Printf("notification skipped: permission %s", p)
			return
		}
		s.notifier.Notify(CompletionTitle, body)
	}()
}

// Wait blocks until in-flight notifications have been delivered or dropped.
func (s *TimerService) Wait() {
	s.pending.Wait()
}
