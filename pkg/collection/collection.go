// Package collection implements an ordered, newest-first collection of
// uniquely-identified records persisted under a single storage key. Every
// tool with a record list (trigger logs, externalization plans, voice
// character profiles) instantiates this one store with its own record type
// and sanitizer instead of re-implementing load, migration write-back, and
// CRUD per feature.
package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Record is one uniquely-identified unit of user data.
type Record interface {
	RecordID() string
}

var (
	// ErrNotFound reports that the target record vanished, typically deleted
	// by another process. Callers abort any in-progress edit session and
	// re-render from current state.
	ErrNotFound = errors.New("collection: record not found")

	// ErrNotSaved reports that the mutation applied in memory but could not
	// be persisted. The session keeps working; durability is gone until
	// storage recovers.
	ErrNotSaved = errors.New("collection: changes not saved")
)

// Sanitize converts one raw stored element into a valid record. Returning
// false drops the element from the collection instead of failing the load.
type Sanitize[T Record] func(raw json.RawMessage) (T, bool)

// Store holds the in-memory collection and keeps it in sync with storage.
type Store[T Record] struct {
	key      string
	p        store.Persistence
	sanitize Sanitize[T]

	mu    sync.Mutex
	items []T
}

// New loads the collection under key, migrating whatever legacy shape it
// finds. A payload that is missing, malformed, or not an array loads as an
// empty collection, never an error.
func New[T Record](p store.Persistence, key string, sanitize Sanitize[T]) *Store[T] {
	s := &Store[T]{key: key, p: p, sanitize: sanitize}
	s.Reload()
	return s
}

// Key returns the storage key this collection lives under.
func (s *Store[T]) Key() string {
	return s.key
}

// NewID returns a fresh record id. IDs are opaque, unique even for records
// created within the same millisecond, and never reused.
func NewID() string {
	return uuid.NewString()
}

// Reload replaces the in-memory collection wholesale from storage, running
// sanitation on every element. When the normalized form differs from the
// stored form the normalized collection is written straight back, so later
// loads skip migration. Malformed payloads load empty without a write-back:
// garbage is not worth canonicalizing over a possibly transient read.
func (s *Store[T]) Reload() {
	items, migrated := s.load()
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	if migrated {
		s.persist()
	}
}

func (s *Store[T]) load() ([]T, bool) {
	raw, ok := s.p.Read(s.key)
	if !ok || len(raw) == 0 {
		return nil, false
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}

	items := make([]T, 0, len(elements))
	migrated := false
	for _, element := range elements {
		item, ok := s.sanitize(element)
		if !ok {
			migrated = true
			continue
		}
		canonical, err := json.Marshal(item)
		if err != nil {
			migrated = true
			continue
		}
		if !bytes.Equal(canonical, bytes.TrimSpace(element)) {
			migrated = true
		}
		items = append(items, item)
	}
	return items, migrated
}

func (s *Store[T]) persist() bool {
	s.mu.Lock()
	items := s.items
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	s.mu.Unlock()
	if err != nil {
		return false
	}
	return s.p.Write(s.key, data)
}

// List returns the records newest-first. The returned slice is a copy;
// mutating it never touches the store.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Insert prepends a fully-built record and persists. The caller is
// responsible for validation and for assigning the id and timestamp; see
// NewID.
func (s *Store[T]) Insert(rec T) error {
	s.mu.Lock()
	s.items = append([]T{rec}, s.items...)
	s.mu.Unlock()
	if !s.persist() {
		return ErrNotSaved
	}
	return nil
}

// Update replaces the record with apply's result, keeping its position in the
// ordering. The apply function must not change the record id. ErrNotFound
// means the record was deleted out from under the caller.
func (s *Store[T]) Update(id string, apply func(T) T) (T, error) {
	s.mu.Lock()
	idx := -1
	for i, item := range s.items {
		if item.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		var zero T
		return zero, ErrNotFound
	}
	updated := apply(s.items[idx])
	s.items[idx] = updated
	s.mu.Unlock()

	if !s.persist() {
		return updated, ErrNotSaved
	}
	return updated, nil
}

// Delete removes the record with the given id. It reports whether a record
// was removed; removal of an absent id is not an error.
func (s *Store[T]) Delete(id string) (bool, error) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, item := range s.items {
		if item.RecordID() == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	s.mu.Unlock()

	if !removed {
		return false, nil
	}
	if !s.persist() {
		return true, ErrNotSaved
	}
	return true, nil
}

// Clear empties the collection. Destructive and irreversible; the caller owns
// the confirmation step.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	if !s.persist() {
		return ErrNotSaved
	}
	return nil
}
