// Package service is the command layer between user intents and the state
// store. Services read the current snapshot, decide, and dispatch actions;
// they are the only code that talks to the audio, notification, clock and id
// ports.
package service

//go:generate mockgen -destination=mock_ports_test.go -package=service github.com/sadopc/peak/internal/service Audio,Notifier

import (
	"context"
	"time"

	"github.com/sadopc/peak/internal/state"
)

// StateStore is the part of state.Store the services need.
type StateStore interface {
	GetState() *state.AppState
	Dispatch(state.Action)
}

// Clock returns the current time. Values never go backwards within a run.
type Clock interface {
	Now() time.Time
}

// IDGenerator returns ids unique within the application's lifetime.
type IDGenerator interface {
	Generate() string
}

// Audio plays short cues. Implementations swallow their own failures.
type Audio interface {
	PlayTick()
	PlayAlarm()
}

// Permission is the outcome of a notification permission request.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Notifier delivers desktop notifications. Notify is a silent no-op unless
// permission was granted.
type Notifier interface {
	RequestPermission(ctx context.Context) Permission
	Notify(title, body string)
}

// Logger is satisfied by *logging.Logger and *log.Logger.
type Logger interface {
	Printf(format string, args ...any)
}

type nopAudio struct{}

func (nopAudio) PlayTick()  {}
func (nopAudio) PlayAlarm() {}

type deniedNotifier struct{}

func (deniedNotifier) RequestPermission(context.Context) Permission { return PermissionDenied }
func (deniedNotifier) Notify(string, string)                        {}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
