package debounce

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	saves []string
}

func (r *recorder) save(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, key+"="+value)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.saves))
	copy(out, r.saves)
	return out
}

func TestBurstSavesOnlyLastValue(t *testing.T) {
	r := &recorder{}
	s := New(20*time.Millisecond, r.save, nil)

	s.Input("note", "h")
	s.Input("note", "he")
	s.Input("note", "hel")
	s.Input("note", "hello")

	time.Sleep(100 * time.Millisecond)

	saves := r.all()
	if len(saves) != 1 {
		t.Fatalf("expected exactly one save for the burst, got %v", saves)
	}
	if saves[0] != "note=hello" {
		t.Fatalf("expected the last value, got %q", saves[0])
	}
	if s.StateOf("note") != Saved {
		t.Fatalf("expected Saved state, got %v", s.StateOf("note"))
	}
}

func TestStateCycle(t *testing.T) {
	r := &recorder{}
	s := New(20*time.Millisecond, r.save, nil)

	if s.StateOf("note") != Idle {
		t.Fatalf("expected Idle before any input")
	}
	s.Input("note", "x")
	if s.StateOf("note") != Pending {
		t.Fatalf("expected Pending after input")
	}
	time.Sleep(100 * time.Millisecond)
	if s.StateOf("note") != Saved {
		t.Fatalf("expected Saved after the delay")
	}
}

func TestFlushSavesImmediately(t *testing.T) {
	r := &recorder{}
	s := New(time.Hour, r.save, nil)

	s.Input("note", "typed")
	s.Flush("note", "final")

	saves := r.all()
	if len(saves) != 1 || saves[0] != "note=final" {
		t.Fatalf("expected only the flushed value, got %v", saves)
	}

	// The cancelled timer must never fire.
	time.Sleep(50 * time.Millisecond)
	if got := r.all(); len(got) != 1 {
		t.Fatalf("expected superseded timer suppressed, got %v", got)
	}
}

func TestKeysDebounceIndependently(t *testing.T) {
	r := &recorder{}
	s := New(20*time.Millisecond, r.save, nil)

	s.Input("a", "one")
	s.Input("b", "two")

	time.Sleep(100 * time.Millisecond)

	saves := r.all()
	if len(saves) != 2 {
		t.Fatalf("expected one save per key, got %v", saves)
	}
}

func TestStopCancelsWithoutSaving(t *testing.T) {
	r := &recorder{}
	s := New(20*time.Millisecond, r.save, nil)

	s.Input("note", "doomed")
	s.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := r.all(); len(got) != 0 {
		t.Fatalf("expected no saves after Stop, got %v", got)
	}
}

func TestStatusObserver(t *testing.T) {
	r := &recorder{}
	var mu sync.Mutex
	var states []State
	s := New(20*time.Millisecond, r.save, func(key string, state State) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	s.Input("note", "x")
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(states) != 2 || states[0] != Pending || states[1] != Saved {
		t.Fatalf("expected Pending then Saved, got %v", states)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Pending.String() != "saving" || Saved.String() != "saved" {
		t.Fatalf("unexpected state strings: %v %v %v", Idle, Pending, Saved)
	}
}
