// Package timer holds the countdown state machine for one focus or break
// session. Every transition takes a Snapshot and returns a new one; nothing in
// here reads the clock or schedules work. Wall-clock advancement arrives from
// outside through repeated Tick calls.
package timer

import "time"

// Mode is one of the three session kinds.
type Mode string

const (
	Focus      Mode = "focus"
	ShortBreak Mode = "shortBreak"
	LongBreak  Mode = "longBreak"
)

// Modes lists every mode in cycle order.
var Modes = []Mode{Focus, ShortBreak, LongBreak}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Focus, ShortBreak, LongBreak:
		return true
	}
	return false
}

// Label is the human readable name used in notifications and the UI.
func (m Mode) Label() string {
	switch m {
	case ShortBreak:
		return "short break"
	case LongBreak:
		return "long break"
	default:
		return "focus"
	}
}

// Next returns the mode that follows m in the fixed cycle
// focus -> shortBreak -> longBreak -> focus.
func Next(m Mode) Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Focus
}

// Durations maps each mode to a length in whole minutes.
type Durations struct {
	Focus      int `json:"focus"`
	ShortBreak int `json:"shortBreak"`
	LongBreak  int `json:"longBreak"`
}

// Of returns the configured minutes for m.
func (d Durations) Of(m Mode) int {
	switch m {
	case ShortBreak:
		return d.ShortBreak
	case LongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

// Millis returns the configured length of m in milliseconds.
func (d Durations) Millis(m Mode) int64 {
	return int64(d.Of(m)) * int64(time.Minute/time.Millisecond)
}

// Normalize raises every value below one minute to one minute.
func (d Durations) Normalize() Durations {
	d.Focus = max(d.Focus, 1)
	d.ShortBreak = max(d.ShortBreak, 1)
	d.LongBreak = max(d.LongBreak, 1)
	return d
}

// Preferences controls auto-start chaining and sounds.
type Preferences struct {
	AutoStartFocus  bool `json:"autoStartFocus"`
	AutoStartBreaks bool `json:"autoStartBreaks"`
	TickSound       bool `json:"tickSound"`
	AlarmSound      bool `json:"alarmSound"`
}

// AutoStart reports whether a session of mode m should start on its own.
func (p Preferences) AutoStart(m Mode) bool {
	if m == Focus {
		return p.AutoStartFocus
	}
	return p.AutoStartBreaks
}

// PreferencesPatch is a partial update. nil fields are left unchanged.
type PreferencesPatch struct {
	AutoStartFocus  *bool
	AutoStartBreaks *bool
	TickSound       *bool
	AlarmSound      *bool
}

// Apply merges the present fields of p into prefs.
func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	if p.AutoStartFocus != nil {
		prefs.AutoStartFocus = *p.AutoStartFocus
	}
	if p.AutoStartBreaks != nil {
		prefs.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.TickSound != nil {
		prefs.TickSound = *p.TickSound
	}
	if p.AlarmSound != nil {
		prefs.AlarmSound = *p.AlarmSound
	}
	return prefs
}

// State is the live countdown. LastStartedAt is set exactly when IsRunning.
type State struct {
	Mode          Mode       `json:"mode"`
	RemainingMs   int64      `json:"remainingMs"`
	IsRunning     bool       `json:"isRunning"`
	LastStartedAt *time.Time `json:"lastStartedAt,omitempty"`
}

// Config groups the user-tunable parts of the timer.
type Config struct {
	Durations   Durations   `json:"durations"`
	Preferences Preferences `json:"preferences"`
}

// Snapshot is the complete timer value. It is comparable with ==, which is
// how callers detect no-op transitions.
type Snapshot struct {
	State  State  `json:"state"`
	Config Config `json:"config"`
}

var (
	DefaultDurations = Durations{Focus: 25, ShortBreak: 5, LongBreak: 15}

	DefaultPreferences = Preferences{
		AutoStartFocus:  false,
		AutoStartBreaks: true,
		TickSound:       false,
		AlarmSound:      true,
	}
)

// DefaultSnapshot is a stopped focus session with the default configuration.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		State: State{
			Mode:        Focus,
			RemainingMs: DefaultDurations.Millis(Focus),
		},
		Config: Config{
			Durations:   DefaultDurations,
			Preferences: DefaultPreferences,
		},
	}
}
