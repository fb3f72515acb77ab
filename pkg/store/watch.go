package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Persistence.Watch when another process mutates a
// storage key under the same base path.
type Event struct {
	Key string
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid losing notifications. Events echoing this
// instance's own writes are suppressed, so a consumer never re-reads state it
// just wrote. The channel is closed once ctx is done or the watcher hits an
// unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if !p.available {
		// Session-only storage has no external writers to observe; hand back
		// a channel that closes with the context so callers need no special
		// case.
		events := make(chan Event)
		go func() {
			<-ctx.Done()
			close(events)
		}()
		return events, nil
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// notification or an explicit reload picks the change up.
				// This keeps filesystem storms from blocking the watcher
				// goroutine.
			}
		}

		throttle := newKeyThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				_ = err // keep the CLI quiet; the next event resyncs.
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				key := p.keyForPath(evt.Name)
				if key == "" {
					continue
				}
				if p.wroteSelf(key) {
					continue
				}

				throttle.Enqueue(key, send)
			}
		}
	}()

	return events, nil
}

// keyForPath maps a filesystem path inside the base directory back to its
// storage key. Temp files and the probe sentinel are not keys.
func (p *persistence) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	if strings.ContainsRune(rel, os.PathSeparator) {
		return ""
	}
	if rel == sentinelKey || strings.HasSuffix(rel, ".tmp") || strings.HasPrefix(rel, ".") {
		return ""
	}
	return rel
}

// keyThrottle coalesces rapid change notifications so consumers rehydrate
// once per burst of filesystem activity instead of on every single write.
type keyThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newKeyThrottle(delay time.Duration) *keyThrottle {
	return &keyThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *keyThrottle) Enqueue(key string, send func(Event)) {
	t.mu.Lock()
	t.pending[key] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *keyThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for key := range pending {
		send(Event{Key: key})
	}
}

func (t *keyThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
