// Package platform implements the service ports on top of the operating
// system: wall clock, uuids, the terminal bell and desktop notifications.
package platform

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// UUIDGenerator hands out random v4 uuids.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string { return uuid.NewString() }
