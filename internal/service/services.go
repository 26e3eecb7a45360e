package service

// Deps are the collaborators the services are built from. Store, Clock and
// IDs are required; the rest fall back to silent implementations.
type Deps struct {
	Store    StateStore
	Clock    Clock
	IDs      IDGenerator
	Audio    Audio
	Notifier Notifier
	Logger   Logger
}

// Services bundles every command service over one store.
type Services struct {
	Store     StateStore
	Timer     *TimerService
	Todo      *TodoService
	Settings  *SettingsService
	Templates *TemplateService
}

// New wires the services together.
func New(d Deps) *Services {
	if d.Store == nil || d.Clock == nil || d.IDs == nil {
		panic("service: store, clock and id generator are required")
	}
	if d.Audio == nil {
		d.Audio = nopAudio{}
	}
	if d.Notifier == nil {
		d.Notifier = deniedNotifier{}
	}
	if d.Logger == nil {
		d.Logger = nopLogger{}
	}
	return &Services{
		Store:     d.Store,
		Timer:     newTimerService(d.Store, d.Audio, d.Notifier, d.Clock, d.Logger),
		Todo:      newTodoService(d.Store, d.Clock, d.IDs),
		Settings:  newSettingsService(d.Store, d.Notifier, d.Logger),
		Templates: newTemplateService(d.Store, d.Clock, d.IDs),
	}
}

// Wait blocks until background notification work has finished.
func (s *Services) Wait() {
	s.Timer.Wait()
	s.Settings.Wait()
}
