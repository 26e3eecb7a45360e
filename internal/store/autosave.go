package store

import (
	"context"
	"sync"
	"time"

	"github.com/sadopc/peak/internal/state"
)

// Saver is the persistence side the Autosaver writes to.
type Saver interface {
	Save(ctx context.Context, st *state.AppState) error
}

// Autosaver mirrors snapshots to a Saver off the caller's goroutine. Offers
// made while a save is pending replace each other, so bursts of dispatches
// cost a single write.
type Autosaver struct {
	saver  Saver
	delay  time.Duration
	logger Logger

	mu      sync.Mutex
	pending *state.AppState

	wake chan struct{}
	done chan struct{}
}

// NewAutosaver waits delay after the first offer of a burst before saving.
func NewAutosaver(saver Saver, delay time.Duration, logger Logger) *Autosaver {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Autosaver{
		saver:  saver,
		delay:  delay,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Offer queues st to be saved. It never blocks.
func (a *Autosaver) Offer(st *state.AppState) {
	a.mu.Lock()
	a.pending = st
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Run saves offered snapshots until ctx is cancelled, then flushes whatever
// is still pending and closes Done.
func (a *Autosaver) Run(ctx context.Context) {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			a.flush()
			return
		case <-a.wake:
			if a.delay > 0 {
				select {
				case <-time.After(a.delay):
				case <-ctx.Done():
				}
			}
			a.flush()
		}
	}
}

// Done is closed once Run has returned.
func (a *Autosaver) Done() <-chan struct{} {
	return a.done
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	st := a.pending
	a.pending = nil
	a.mu.Unlock()
	if st == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.saver.Save(ctx, st); err != nil {
		a.logger.Printf("autosave: %v", err)
	}
}
