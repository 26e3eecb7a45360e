package state

import (
	"time"

	"github.com/sadopc/peak/internal/task"
	"github.com/sadopc/peak/internal/timer"
)

// Action is a request to change the snapshot. Only the types in this file
// implement it.
type Action interface {
	action()
}

type (
	TimerStart struct{ At time.Time }
	TimerPause struct{}
	// TimerReset refills the current mode, or Mode when it is set.
	TimerReset struct {
		At   time.Time
		Mode timer.Mode
	}
	TimerSetMode struct {
		At   time.Time
		Mode timer.Mode
	}
	TimerTick             struct{ DeltaMs int64 }
	TimerSetDurations     struct{ Durations timer.Durations }
	TimerSetPreferences   struct{ Patch timer.PreferencesPatch }
	TimerApplyRemaining   struct{ RemainingMs int64 }
	StatsIncrementSession struct{ At time.Time }
)

type (
	TaskAdd    struct{ Tasks []task.Task }
	TaskUpdate struct {
		ID    string
		Patch task.Patch
	}
	TaskRemove    struct{ ID string }
	TaskReorder   struct{ IDs []string }
	SubtaskUpdate struct {
		TaskID  string
		Subtask task.SubTask
	}
	SubtaskRemove struct {
		TaskID    string
		SubtaskID string
	}
	SubtasksReplace struct {
		TaskID   string
		Subtasks []task.SubTask
	}
	// TaskSetActive focuses ID; "" clears the focus.
	TaskSetActive struct{ ID string }
)

type (
	SettingsUpdate           struct{ Patch SettingsPatch }
	SettingsUpdateBackground struct{ Background Background }
	TemplateUpsert           struct{ Template task.Template }
	TemplateRemove           struct{ ID string }
)

func (TimerStart) action()               {}
func (TimerPause) action()               {}
func (TimerReset) action()               {}
func (TimerSetMode) action()             {}
func (TimerTick) action()                {}
func (TimerSetDurations) action()        {}
func (TimerSetPreferences) action()      {}
func (TimerApplyRemaining) action()      {}
func (StatsIncrementSession) action()    {}
func (TaskAdd) action()                  {}
func (TaskUpdate) action()               {}
func (TaskRemove) action()               {}
func (TaskReorder) action()              {}
func (SubtaskUpdate) action()            {}
func (SubtaskRemove) action()            {}
func (SubtasksReplace) action()          {}
func (TaskSetActive) action()            {}
func (SettingsUpdate) action()           {}
func (SettingsUpdateBackground) action() {}
func (TemplateUpsert) action()           {}
func (TemplateRemove) action()           {}
