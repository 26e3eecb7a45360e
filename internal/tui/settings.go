package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peak/internal/service"
	"github.com/sadopc/peak/internal/state"
	"github.com/sadopc/peak/internal/timer"
)

// settingsValues holds the form fields. huh writes through the pointers, so
// the struct is shared between copies of the model.
type settingsValues struct {
	focus      string
	shortBreak string
	longBreak  string

	autoStartFocus  bool
	autoStartBreaks bool
	tickSound       bool
	alarmSound      bool

	autoComplete bool
	autoSort     bool
	desktop      bool
	shortcuts    bool

	theme      state.Theme
	layout     state.TimerView
	background int
}

type settingsModel struct {
	svc    *service.Services
	width  int
	height int

	formActive bool
	form       *huh.Form
	values     *settingsValues
}

func newSettingsModel(svc *service.Services) settingsModel {
	return settingsModel{svc: svc, values: &settingsValues{}}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Rename):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) load(st *state.AppState) {
	v := s.values
	d := st.Timer.Config.Durations
	p := st.Timer.Config.Preferences
	set := st.Settings

	v.focus = strconv.Itoa(d.Focus)
	v.shortBreak = strconv.Itoa(d.ShortBreak)
	v.longBreak = strconv.Itoa(d.LongBreak)
	v.autoStartFocus = p.AutoStartFocus
	v.autoStartBreaks = p.AutoStartBreaks
	v.tickSound = p.TickSound
	v.alarmSound = p.AlarmSound
	v.autoComplete = set.Tasks.AutoCompleteOnFocusEnd
	v.autoSort = set.Tasks.AutoSortCompleted
	v.desktop = set.Notification.Desktop
	v.shortcuts = set.Shortcuts.Enabled
	v.theme = set.Theme
	v.layout = set.Layout.TimerView
	v.background = 0
	for i, bg := range state.BackgroundPresets {
		if bg == set.Background {
			v.background = i
		}
	}
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	s.load(s.svc.Store.GetState())
	v := s.values

	bgOptions := make([]huh.Option[int], len(state.BackgroundPresets))
	for i, bg := range state.BackgroundPresets {
		bgOptions[i] = huh.NewOption(backgroundLabel(bg), i)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(&v.focus).Validate(validMinutes),
			huh.NewInput().Title("Short break (min)").Value(&v.shortBreak).Validate(validMinutes),
			huh.NewInput().Title("Long break (min)").Value(&v.longBreak).Validate(validMinutes),
			huh.NewConfirm().Title("Auto-start focus after a break").Value(&v.autoStartFocus),
			huh.NewConfirm().Title("Auto-start breaks after focus").Value(&v.autoStartBreaks),
			huh.NewConfirm().Title("Tick sound").Value(&v.tickSound),
			huh.NewConfirm().Title("Alarm sound").Value(&v.alarmSound),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewConfirm().Title("Complete the focused task when focus ends").Value(&v.autoComplete),
			huh.NewConfirm().Title("Move completed tasks to the bottom").Value(&v.autoSort),
			huh.NewConfirm().Title("Desktop notifications").Value(&v.desktop),
			huh.NewConfirm().Title("Timer shortcuts in every view").Value(&v.shortcuts),
		).Title("Behaviour"),
		huh.NewGroup(
			huh.NewSelect[state.Theme]().Title("Theme").
				Options(
					huh.NewOption("Dark", state.ThemeDark),
					huh.NewOption("Light", state.ThemeLight),
				).Value(&v.theme),
			huh.NewSelect[state.TimerView]().Title("Timer layout").
				Options(
					huh.NewOption("Split", state.ViewSplit),
					huh.NewOption("Maximal", state.ViewMaximal),
					huh.NewOption("Mini", state.ViewMini),
				).Value(&v.layout),
			huh.NewSelect[int]().Title("Background").Options(bgOptions...).Value(&v.background),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		s.save()
		return s, statusCmd("Settings saved", false)
	}

	return s, cmd
}

// save pushes the form values through the services.
func (s settingsModel) save() {
	v := s.values
	cur := s.svc.Store.GetState()

	s.svc.Timer.UpdateDurations(timer.Durations{
		Focus:      atoiOr(v.focus, cur.Timer.Config.Durations.Focus),
		ShortBreak: atoiOr(v.shortBreak, cur.Timer.Config.Durations.ShortBreak),
		LongBreak:  atoiOr(v.longBreak, cur.Timer.Config.Durations.LongBreak),
	})
	s.svc.Timer.UpdatePreferences(timer.PreferencesPatch{
		AutoStartFocus:  &v.autoStartFocus,
		AutoStartBreaks: &v.autoStartBreaks,
		TickSound:       &v.tickSound,
		AlarmSound:      &v.alarmSound,
	})

	patch := state.SettingsPatch{
		Theme:     &v.theme,
		Shortcuts: &state.ShortcutConfig{Enabled: v.shortcuts},
		Tasks: &state.TaskAutomation{
			AutoCompleteOnFocusEnd: v.autoComplete,
			AutoSortCompleted:      v.autoSort,
		},
		Layout: &state.Layout{TimerView: v.layout},
	}
	if v.desktop != cur.Settings.Notification.Desktop {
		patch.Notification = &state.NotificationPreferences{Desktop: v.desktop}
	}
	s.svc.Settings.Update(patch)

	if v.background >= 0 && v.background < len(state.BackgroundPresets) {
		s.svc.Settings.UpdateBackground(state.BackgroundPresets[v.background])
	}
}

func (s settingsModel) view(st *state.AppState) string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	d := st.Timer.Config.Durations
	p := st.Timer.Config.Preferences
	set := st.Settings
	entries := []struct{ label, value string }{
		{"Focus", fmt.Sprintf("%d min", d.Focus)},
		{"Short break", fmt.Sprintf("%d min", d.ShortBreak)},
		{"Long break", fmt.Sprintf("%d min", d.LongBreak)},
		{"Auto-start focus", onOff(p.AutoStartFocus)},
		{"Auto-start breaks", onOff(p.AutoStartBreaks)},
		{"Tick sound", onOff(p.TickSound)},
		{"Alarm sound", onOff(p.AlarmSound)},
		{"Auto-complete task", onOff(set.Tasks.AutoCompleteOnFocusEnd)},
		{"Sort completed last", onOff(set.Tasks.AutoSortCompleted)},
		{"Desktop notifications", onOff(set.Notification.Desktop)},
		{"Shortcuts everywhere", onOff(set.Shortcuts.Enabled)},
		{"Theme", string(set.Theme)},
		{"Layout", string(set.Layout.TimerView)},
		{"Background", backgroundLabel(set.Background)},
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, e := range entries {
		label := lipgloss.NewStyle().Width(24).Render(e.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(e.value)))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func validMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of minutes, at least 1")
	}
	return nil
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func backgroundLabel(bg state.Background) string {
	switch bg.Kind {
	case state.BackgroundSolid:
		return "Solid " + bg.Value
	case state.BackgroundGradient:
		return "Gradient"
	case state.BackgroundImage:
		return "Image"
	}
	return string(bg.Kind)
}
