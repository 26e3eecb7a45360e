package state

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sadopc/peak/internal/task"
	"github.com/sadopc/peak/internal/timer"
)

// Encode serializes s as the persisted JSON document.
func Encode(s *AppState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode app state: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document. Fields missing from data keep their
// default values, and out-of-range values are repaired, so documents written
// by older versions still load.
func Decode(data []byte) (*AppState, error) {
	s := Default()
	// Slices are decoded into fresh storage so stale default elements never
	// merge with stored ones.
	s.Tasks = nil
	s.Templates = nil
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode app state: %w", err)
	}
	s.sanitize()
	return s, nil
}

func (s *AppState) sanitize() {
	def := timer.DefaultSnapshot()
	st := &s.Timer.State
	d := &s.Timer.Config.Durations

	if !st.Mode.Valid() {
		st.Mode = timer.Focus
	}
	if d.Focus < 1 {
		d.Focus = def.Config.Durations.Focus
	}
	if d.ShortBreak < 1 {
		d.ShortBreak = def.Config.Durations.ShortBreak
	}
	if d.LongBreak < 1 {
		d.LongBreak = def.Config.Durations.LongBreak
	}
	if st.RemainingMs < 0 {
		st.RemainingMs = 0
	}
	if !st.IsRunning || st.LastStartedAt == nil {
		st.IsRunning = false
		st.LastStartedAt = nil
	}

	if s.Stats.SessionsToday < 0 {
		s.Stats.SessionsToday = 0
	}

	if s.Tasks == nil {
		s.Tasks = []task.Task{}
	}
	for i := range s.Tasks {
		if s.Tasks[i].Subtasks == nil {
			s.Tasks[i].Subtasks = []task.SubTask{}
		}
		if s.Tasks[i].Tags == nil {
			s.Tasks[i].Tags = []task.Tag{}
		}
	}
	sort.SliceStable(s.Tasks, func(i, j int) bool {
		return s.Tasks[i].Order < s.Tasks[j].Order
	})

	if len(s.Templates) == 0 {
		s.Templates = task.DefaultTemplates()
	}

	s.Settings = s.Settings.sanitize()

	if t, ok := s.ActiveTask(); !ok || t.Completed {
		s.ActiveTaskID = ""
	}
}
