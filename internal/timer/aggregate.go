package timer

import "time"

// Aggregate wraps a Snapshot with its transition rules. Methods never modify
// the receiver; they return the aggregate for the next snapshot.
type Aggregate struct {
	snap Snapshot
}

// FromSnapshot wraps s.
func FromSnapshot(s Snapshot) Aggregate {
	return Aggregate{snap: s}
}

// Snapshot returns the wrapped value.
func (a Aggregate) Snapshot() Snapshot {
	return a.snap
}

// Start marks the session running from now. Remaining time is untouched.
func (a Aggregate) Start(now time.Time) Aggregate {
	if a.snap.State.IsRunning {
		return a
	}
	next := a.snap
	next.State.IsRunning = true
	next.State.LastStartedAt = &now
	return Aggregate{snap: next}
}

// Pause stops the session and keeps whatever the last tick left in
// RemainingMs. Callers tick first when real time has elapsed.
func (a Aggregate) Pause() Aggregate {
	if !a.snap.State.IsRunning {
		return a
	}
	next := a.snap
	next.State.IsRunning = false
	next.State.LastStartedAt = nil
	return Aggregate{snap: next}
}

// Reset stops the timer and refills it for mode. An empty mode keeps the
// current one.
func (a Aggregate) Reset(mode Mode) Aggregate {
	if mode == "" {
		mode = a.snap.State.Mode
	}
	next := a.snap
	next.State = State{
		Mode:        mode,
		RemainingMs: next.Config.Durations.Millis(mode),
	}
	return Aggregate{snap: next}
}

// SetMode switches to mode, stopping and refilling like Reset.
func (a Aggregate) SetMode(mode Mode) Aggregate {
	return a.Reset(mode)
}

// Tick subtracts deltaMs from the remaining time, flooring at zero.
func (a Aggregate) Tick(deltaMs int64) Aggregate {
	remaining := max(a.snap.State.RemainingMs-deltaMs, 0)
	if remaining == a.snap.State.RemainingMs {
		return a
	}
	next := a.snap
	next.State.RemainingMs = remaining
	return Aggregate{snap: next}
}

// ApplyRemaining overrides the remaining time without validation. It is used
// when restoring or synchronizing state.
func (a Aggregate) ApplyRemaining(ms int64) Aggregate {
	next := a.snap
	next.State.RemainingMs = ms
	return Aggregate{snap: next}
}

// SetDurations replaces the duration table and caps the remaining time to the
// new length of the current mode.
func (a Aggregate) SetDurations(d Durations) Aggregate {
	next := a.snap
	next.Config.Durations = d
	next.State.RemainingMs = min(next.State.RemainingMs, d.Millis(next.State.Mode))
	return Aggregate{snap: next}
}

// SetPreferences merges the present fields of patch.
func (a Aggregate) SetPreferences(patch PreferencesPatch) Aggregate {
	next := a.snap
	next.Config.Preferences = patch.Apply(next.Config.Preferences)
	return Aggregate{snap: next}
}
