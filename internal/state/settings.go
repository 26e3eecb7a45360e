package state

// Theme selects the colour palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// BackgroundKind tells how Background.Value is interpreted.
type BackgroundKind string

const (
	BackgroundSolid    BackgroundKind = "solid"
	BackgroundGradient BackgroundKind = "gradient"
	BackgroundImage    BackgroundKind = "image"
)

type Background struct {
	Kind    BackgroundKind `json:"kind"`
	Value   string         `json:"value"`
	Blur    float64        `json:"blur"`
	Opacity float64        `json:"opacity"`
}

// BackgroundPresets are the backgrounds offered in the settings form.
var BackgroundPresets = []Background{
	{Kind: BackgroundSolid, Value: "#141824", Blur: 0, Opacity: 1},
	{Kind: BackgroundGradient, Value: "linear-gradient(135deg, rgba(79,70,229,0.85), rgba(167,139,250,0.8))", Blur: 0, Opacity: 0.85},
	{Kind: BackgroundImage, Value: "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?auto=format&fit=crop&w=1600&q=80", Blur: 6, Opacity: 0.6},
}

type NotificationPreferences struct {
	Desktop bool `json:"desktop"`
}

type ShortcutConfig struct {
	Enabled bool `json:"enabled"`
}

// TaskAutomation toggles what happens to tasks around session completion.
type TaskAutomation struct {
	AutoCompleteOnFocusEnd bool `json:"autoCompleteOnFocusEnd"`
	AutoSortCompleted      bool `json:"autoSortCompleted"`
}

// TimerView is the layout of the timer screen.
type TimerView string

const (
	ViewSplit   TimerView = "split"
	ViewMaximal TimerView = "maximal"
	ViewMini    TimerView = "mini"
)

type Layout struct {
	TimerView TimerView `json:"timerView"`
}

// Settings are the user preferences that are not part of the timer config.
type Settings struct {
	Theme        Theme                   `json:"theme"`
	Background   Background              `json:"background"`
	Notification NotificationPreferences `json:"notification"`
	Shortcuts    ShortcutConfig          `json:"shortcuts"`
	Tasks        TaskAutomation          `json:"tasks"`
	Layout       Layout                  `json:"layout"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Theme:        ThemeDark,
		Background:   BackgroundPresets[0],
		Notification: NotificationPreferences{Desktop: false},
		Shortcuts:    ShortcutConfig{Enabled: true},
		Tasks: TaskAutomation{
			AutoCompleteOnFocusEnd: false,
			AutoSortCompleted:      false,
		},
		Layout: Layout{TimerView: ViewSplit},
	}
}

// SettingsPatch replaces whole sections; nil sections are kept.
type SettingsPatch struct {
	Theme        *Theme
	Background   *Background
	Notification *NotificationPreferences
	Shortcuts    *ShortcutConfig
	Tasks        *TaskAutomation
	Layout       *Layout
}

// Apply returns s with the present sections of p.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.Notification != nil {
		s.Notification = *p.Notification
	}
	if p.Shortcuts != nil {
		s.Shortcuts = *p.Shortcuts
	}
	if p.Tasks != nil {
		s.Tasks = *p.Tasks
	}
	if p.Layout != nil {
		s.Layout = *p.Layout
	}
	return s
}

func (s Settings) sanitize() Settings {
	def := DefaultSettings()
	switch s.Theme {
	case ThemeDark, ThemeLight:
	default:
		s.Theme = def.Theme
	}
	switch s.Background.Kind {
	case BackgroundSolid, BackgroundGradient, BackgroundImage:
		if s.Background.Value == "" {
			s.Background = def.Background
		}
	default:
		s.Background = def.Background
	}
	switch s.Layout.TimerView {
	case ViewSplit, ViewMaximal, ViewMini:
	default:
		s.Layout.TimerView = def.Layout.TimerView
	}
	return s
}
