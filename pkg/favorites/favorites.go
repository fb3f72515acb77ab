// Package favorites is the set-valued store behind the favorite-tips hearts.
// Tip identifiers went through several historical formats; every load
// canonicalizes them and rewrites the stored set when anything changed.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Key is the storage key holding the sorted array of canonical tip ids.
const Key = "favoriteTips"

var (
	// ErrInvalidID reports an id no canonicalization rule recognizes.
	ErrInvalidID = errors.New("favorites: unrecognized tip id")

	// ErrNotSaved reports that the toggle applied in memory but could not be
	// persisted.
	ErrNotSaved = errors.New("favorites: changes not saved")
)

var (
	tipFormat = regexp.MustCompile(`^tip-(\d+)$`)
	// Legacy entries looked like "07: short title" with either an ASCII or a
	// full-width colon.
	legacyFormat = regexp.MustCompile(`^0*(\d+)\s*[:：]`)
)

// Normalize reduces any historical tip identifier to the canonical
// two-digit-padded "tip-NN" form. It is idempotent; unrecognized input yields
// the empty string.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}

	if m := tipFormat.FindStringSubmatch(id); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return fmt.Sprintf("tip-%02d", n)
		}
		return ""
	}

	if m := legacyFormat.FindStringSubmatch(id); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return fmt.Sprintf("tip-%02d", n)
		}
	}

	return ""
}

// Store is the favorites membership set.
type Store struct {
	p store.Persistence

	mu  sync.Mutex
	ids map[string]struct{}
}

// New loads the favorite set, migrating legacy id formats with an immediate
// write-back so later loads skip migration.
func New(p store.Persistence) *Store {
	s := &Store{p: p}
	s.Reload()
	return s
}

// Reload replaces the in-memory set wholesale from storage. Cross-process
// change events land here.
func (s *Store) Reload() {
	values, migrated := s.load()
	ids := make(map[string]struct{}, len(values))
	for _, v := range values {
		ids[v] = struct{}{}
	}
	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
	if migrated {
		s.persist()
	}
}

// load parses the stored payload into canonical ids. Elements that are not
// strings, or that no rule canonicalizes, are dropped with migrated=true.
// Malformed JSON and non-array payloads load empty with migrated=false;
// write-back never canonicalizes garbage.
func (s *Store) load() ([]string, bool) {
	raw, ok := s.p.Read(Key)
	if !ok || len(raw) == 0 {
		return nil, false
	}

	var parsed []any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}

	values := make([]string, 0, len(parsed))
	migrated := false
	for _, item := range parsed {
		str, ok := item.(string)
		if !ok {
			migrated = true
			continue
		}
		trimmed := strings.TrimSpace(str)
		if trimmed != str {
			migrated = true
		}
		if trimmed == "" {
			continue
		}
		normalized := Normalize(trimmed)
		if normalized == "" {
			migrated = true
			continue
		}
		if normalized != trimmed {
			migrated = true
		}
		values = append(values, normalized)
	}
	return values, migrated
}

func (s *Store) persist() bool {
	data, err := json.Marshal(s.List())
	if err != nil {
		return false
	}
	return s.p.Write(Key, data)
}

// Has reports membership for any historical form of id.
func (s *Store) Has(id string) bool {
	normalized := Normalize(id)
	if normalized == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[normalized]
	return ok
}

// Toggle flips membership and persists the full set. The returned bool is
// the new membership state. ErrNotSaved means the flip applied in memory but
// did not reach storage; the session keeps the new state.
func (s *Store) Toggle(id string) (bool, error) {
	normalized := Normalize(id)
	if normalized == "" {
		return false, ErrInvalidID
	}

	s.mu.Lock()
	_, had := s.ids[normalized]
	if had {
		delete(s.ids, normalized)
	} else {
		s.ids[normalized] = struct{}{}
	}
	s.mu.Unlock()

	if !s.persist() {
		return !had, ErrNotSaved
	}
	return !had, nil
}

// List returns the canonical ids sorted, the same deterministic order the
// set is serialized in.
func (s *Store) List() []string {
	s.mu.Lock()
	values := make([]string, 0, len(s.ids))
	for id := range s.ids {
		values = append(values, id)
	}
	s.mu.Unlock()
	sort.Strings(values)
	return values
}
