package platform

import (
	"io"
	"sync"
)

// Bell plays cues by ringing the terminal bell on w. Write errors are
// ignored.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) PlayTick() {
	b.ring("\a")
}

// PlayAlarm rings twice so it stands out from ticks.
func (b *Bell) PlayAlarm() {
	b.ring("\a\a")
}

func (b *Bell) ring(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, s)
}

// Silent is the audio port for terminals without a bell.
type Silent struct{}

func (Silent) PlayTick()  {}
func (Silent) PlayAlarm() {}
