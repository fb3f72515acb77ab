// Package debounce provides trailing-debounce persistence for per-key text
// fields. Each key moves through an explicit Idle → Pending → Saved cycle so
// timer supersession is a named transition instead of loose timer-id
// bookkeeping.
package debounce

import (
	"sync"
	"time"
)

// State is where a field key currently sits in the save cycle.
type State int

const (
	// Idle means nothing has been typed since construction.
	Idle State = iota
	// Pending means input arrived and the delay timer is running.
	Pending
	// Saved means the last value reached the save function.
	Saved
)

func (s State) String() string {
	switch s {
	case Pending:
		return "saving"
	case Saved:
		return "saved"
	default:
		return "idle"
	}
}

// DefaultDelay is how long a field stays Pending after the last keystroke.
const DefaultDelay = 500 * time.Millisecond

// Saver debounces saves per field key. Only the last value before quiescence
// is persisted: a new input while Pending cancels and restarts the timer, and
// a superseded timer never fires.
type Saver struct {
	delay  time.Duration
	save   func(key, value string)
	status func(key string, state State)

	mu     sync.Mutex
	gens   map[string]int
	timers map[string]*time.Timer
	states map[string]State
}

// New builds a Saver. save runs when the delay elapses or Flush is called;
// status, if non-nil, observes every state transition (the UI "saving…" /
// "saved" labels).
func New(delay time.Duration, save func(key, value string), status func(key string, state State)) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Saver{
		delay:  delay,
		save:   save,
		status: status,
		gens:   make(map[string]int),
		timers: make(map[string]*time.Timer),
		states: make(map[string]State),
	}
}

// Input records a keystroke for key: the field enters Pending and the delay
// timer (re)starts with the new value.
func (s *Saver) Input(key, value string) {
	s.mu.Lock()
	s.gens[key]++
	gen := s.gens[key]
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.states[key] = Pending
	s.timers[key] = time.AfterFunc(s.delay, func() {
		s.fire(key, value, gen)
	})
	s.mu.Unlock()

	s.notify(key, Pending)
}

func (s *Saver) fire(key, value string, gen int) {
	s.mu.Lock()
	if s.gens[key] != gen {
		// Superseded by a later Input or Flush.
		s.mu.Unlock()
		return
	}
	delete(s.timers, key)
	s.states[key] = Saved
	s.mu.Unlock()

	s.save(key, value)
	s.notify(key, Saved)
}

// Flush persists value immediately, cancelling any pending timer. This is
// the blur path.
func (s *Saver) Flush(key, value string) {
	s.mu.Lock()
	s.gens[key]++
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
	s.states[key] = Saved
	s.mu.Unlock()

	s.save(key, value)
	s.notify(key, Saved)
}

// StateOf reports the current state for key.
func (s *Saver) StateOf(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[key]
}

// Stop cancels every pending timer without saving. Pending values are lost;
// callers that want them must Flush first.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		s.gens[key]++
		delete(s.timers, key)
	}
}

func (s *Saver) notify(key string, state State) {
	if s.status != nil {
		s.status(key, state)
	}
}
