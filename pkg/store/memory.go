package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Persistence used by tests and by callers that want
// store semantics without touching disk. External mutations can be simulated
// with Inject, which feeds every active watcher, mirroring how another
// process's write shows up through the filesystem watcher.
type Memory struct {
	mu       sync.Mutex
	values   map[string][]byte
	writable bool
	watchers []chan Event
}

// NewMemory returns an empty, writable in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte), writable: true}
}

// NewUnavailableMemory returns a store whose writes fail, mimicking a probe
// failure: reads and writes still work against the session map but Write
// reports false and Available reports false.
func NewUnavailableMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writable
}

func (m *Memory) Read(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.values[key]
	return val, ok
}

func (m *Memory) Write(key string, data []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), data...)
	return m.writable
}

func (m *Memory) Erase(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return m.writable
}

func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// Inject stores data under key as if another process had written it and
// notifies every watcher. A nil data erases the key.
func (m *Memory) Inject(key string, data []byte) {
	m.mu.Lock()
	if data == nil {
		delete(m.values, key)
	} else {
		m.values[key] = append([]byte(nil), data...)
	}
	watchers := append([]chan Event(nil), m.watchers...)
	m.mu.Unlock()

	for _, w := range watchers {
		select {
		case w <- Event{Key: key}:
		default:
		}
	}
}
