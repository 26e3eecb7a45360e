package state

import "sync"

// Listener is called after every committed change. It receives nothing;
// read the new snapshot with GetState.
type Listener func()

type subscription struct {
	id uint64
	fn Listener
}

// Store owns the current snapshot. Dispatch serializes the reduce-and-commit
// step; listeners run after the lock is released, on the dispatching
// goroutine, before Dispatch returns.
//
// A listener may dispatch again. That nested dispatch commits and notifies
// before the outer one finishes, so a listener must not dispatch
// unconditionally or the recursion never ends.
type Store struct {
	mu        sync.Mutex
	state     *AppState
	listeners []subscription
	nextID    uint64
}

// NewStore starts from initial, or from Default when initial is nil.
func NewStore(initial *AppState) *Store {
	if initial == nil {
		initial = Default()
	}
	return &Store{state: initial}
}

// GetState returns the current snapshot. Callers must not modify it.
func (s *Store) GetState() *AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and notifies listeners when the snapshot changed.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	cur := s.state
	next := Reduce(cur, a)
	if next == cur {
		s.mu.Unlock()
		return
	}
	s.state = next
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
