package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sadopc/peak/internal/state"
)

type countingSaver struct {
	mu    sync.Mutex
	saves []*state.AppState
	err   error
}

func (c *countingSaver) Save(_ context.Context, st *state.AppState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves = append(c.saves, st)
	return c.err
}

func (c *countingSaver) snapshot() []*state.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*state.AppState(nil), c.saves...)
}

func TestAutosaverCoalescesBursts(t *testing.T) {
	saver := &countingSaver{}
	a := NewAutosaver(saver, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go a.Run(ctx)

	var last *state.AppState
	for i := 0; i < 10; i++ {
		last = state.Reduce(state.Default(), state.StatsIncrementSession{At: time.Now()})
		a.Offer(last)
	}

	cancel()
	<-a.Done()

	saves := saver.snapshot()
	if len(saves) != 1 {
		t.Fatalf("expected 1 save, got %d", len(saves))
	}
	if saves[0] != last {
		t.Fatal("expected the latest snapshot to be saved")
	}
}

func TestAutosaverSavesWithoutDelay(t *testing.T) {
	saver := &countingSaver{}
	a := NewAutosaver(saver, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		<-a.Done()
	}()
	go a.Run(ctx)

	a.Offer(state.Default())

	deadline := time.Now().Add(2 * time.Second)
	for len(saver.snapshot()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("snapshot was never saved")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAutosaverWithStore(t *testing.T) {
	s := newTestStore(t)
	a := NewAutosaver(s, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go a.Run(ctx)

	st := state.NewStore(nil)
	unsubscribe := st.Subscribe(func() { a.Offer(st.GetState()) })
	defer unsubscribe()
	st.Dispatch(state.StatsIncrementSession{At: time.Now()})

	cancel()
	<-a.Done()

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Stats.SessionsToday != 1 {
		t.Fatalf("expected persisted session count 1, got %+v", got)
	}
}

func TestAutosaverLogsErrors(t *testing.T) {
	logger := &recordingLogger{}
	saver := &countingSaver{err: errors.New("disk full")}
	a := NewAutosaver(saver, time.Hour, logger)
	ctx, cancel := context.WithCancel(context.Background())
	go a.Run(ctx)

	a.Offer(state.Default())
	cancel()
	<-a.Done()

	if logger.count() != 1 {
		t.Fatalf("expected one logged error, got %d", logger.count())
	}
}
