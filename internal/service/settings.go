package service

import (
	"context"
	"sync"

	"github.com/sadopc/peak/internal/state"
)

// SettingsService applies settings changes.
type SettingsService struct {
	store    StateStore
	notifier Notifier
	logger   Logger
	pending  sync.WaitGroup
}

func newSettingsService(store StateStore, notifier Notifier, logger Logger) *SettingsService {
	return &SettingsService{store: store, notifier: notifier, logger: logger}
}

// Update merges patch into the settings. Turning desktop notifications on
// also asks the notifier for permission in the background.
func (s *SettingsService) Update(patch state.SettingsPatch) {
	if patch.Notification != nil && patch.Notification.Desktop {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			s.logger.Printf("notification permission: %s", s.notifier.RequestPermission(ctx))
		}()
	}
	s.store.Dispatch(state.SettingsUpdate{Patch: patch})
}

// UpdateBackground replaces the background.
func (s *SettingsService) UpdateBackground(bg state.Background) {
	s.store.Dispatch(state.SettingsUpdateBackground{Background: bg})
}

// Wait blocks until pending permission requests finish.
func (s *SettingsService) Wait() {
	s.pending.Wait()
}
