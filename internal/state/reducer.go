package state

import (
	"github.com/sadopc/peak/internal/task"
	"github.com/sadopc/peak/internal/timer"
)

// Reduce computes the snapshot that follows s after a. It never modifies s.
// When a changes nothing, s itself is returned so the Store can skip
// notifying subscribers.
func Reduce(s *AppState, a Action) *AppState {
	agg := timer.FromSnapshot(s.Timer)
	list := s.TaskList()

	switch a := a.(type) {
	case TimerStart:
		return s.withTimer(agg.Start(a.At))
	case TimerPause:
		return s.withTimer(agg.Pause())
	case TimerReset:
		return s.withTimer(agg.Reset(a.Mode))
	case TimerSetMode:
		return s.withTimer(agg.SetMode(a.Mode))
	case TimerTick:
		return s.withTimer(agg.Tick(a.DeltaMs))
	case TimerSetDurations:
		return s.withTimer(agg.SetDurations(a.Durations))
	case TimerSetPreferences:
		return s.withTimer(agg.SetPreferences(a.Patch))
	case TimerApplyRemaining:
		return s.withTimer(agg.ApplyRemaining(a.RemainingMs))

	case StatsIncrementSession:
		at := a.At
		next := *s
		next.Stats = Stats{SessionsToday: s.Stats.SessionsToday + 1, LastCompletedAt: &at}
		return &next

	case TaskAdd:
		return s.withTasks(list.Add(a.Tasks...))
	case TaskUpdate:
		return s.withTasks(list.Update(a.ID, a.Patch))
	case TaskRemove:
		return s.withTasks(list.Remove(a.ID))
	case TaskReorder:
		return s.withTasks(list.Reorder(a.IDs))
	case SubtaskUpdate:
		return s.withTasks(list.UpdateSubtask(a.TaskID, a.Subtask))
	case SubtaskRemove:
		return s.withTasks(list.RemoveSubtask(a.TaskID, a.SubtaskID))
	case SubtasksReplace:
		return s.withTasks(list.ReplaceSubtasks(a.TaskID, a.Subtasks))
	case TaskSetActive:
		if s.ActiveTaskID == a.ID {
			return s
		}
		next := *s
		next.ActiveTaskID = a.ID
		return &next

	case SettingsUpdate:
		return s.withSettings(a.Patch.Apply(s.Settings))
	case SettingsUpdateBackground:
		bg := a.Background
		return s.withSettings(SettingsPatch{Background: &bg}.Apply(s.Settings))
	case TemplateUpsert:
		return s.withTemplate(a.Template)
	case TemplateRemove:
		return s.withoutTemplate(a.ID)
	}
	return s
}

func (s *AppState) withTimer(agg timer.Aggregate) *AppState {
	snap := agg.Snapshot()
	if snap == s.Timer {
		return s
	}
	next := *s
	next.Timer = snap
	return &next
}

func (s *AppState) withTasks(l task.List) *AppState {
	if l.Same(s.TaskList()) {
		return s
	}
	next := *s
	next.Tasks = l.Tasks()
	return &next
}

func (s *AppState) withSettings(settings Settings) *AppState {
	if settings == s.Settings {
		return s
	}
	next := *s
	next.Settings = settings
	return &next
}

func (s *AppState) withTemplate(t task.Template) *AppState {
	templates := make([]task.Template, 0, len(s.Templates)+1)
	replaced := false
	for _, existing := range s.Templates {
		if existing.ID == t.ID {
			existing = t
			replaced = true
		}
		templates = append(templates, existing)
	}
	if !replaced {
		templates = append(templates, t)
	}
	next := *s
	next.Templates = templates
	return &next
}

func (s *AppState) withoutTemplate(id string) *AppState {
	if _, ok := s.Template(id); !ok {
		return s
	}
	templates := make([]task.Template, 0, len(s.Templates)-1)
	for _, t := range s.Templates {
		if t.ID != id {
			templates = append(templates, t)
		}
	}
	next := *s
	next.Templates = templates
	return &next
}
