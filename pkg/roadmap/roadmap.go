// Package roadmap tracks where someone currently stands on the recovery
// roadmap and keeps one free-text note per stage, saved with a trailing
// debounce so typing does not hammer storage.
package roadmap

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/debounce"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

const (
	// StageKey holds the current stage id as a bare string, not JSON.
	StageKey = "traumaRoadmapCurrentStage"
	// NotesKey holds the stage id → note text map.
	NotesKey = "traumaRoadmapNotes"
)

const maxNote = 1000

// Stage is one step of the roadmap.
type Stage struct {
	ID    string
	Title string
}

// Stages returns the roadmap in order.
func Stages() []Stage {
	return []Stage{
		{ID: "safety", Title: "Securing day-to-day safety"},
		{ID: "stabilization", Title: "Stabilizing body and daily rhythm"},
		{ID: "remembrance", Title: "Facing and mourning what happened"},
		{ID: "reconnection", Title: "Reconnecting with people and life"},
		{ID: "growth", Title: "Growth beyond recovery"},
	}
}

func validStage(id string) bool {
	for _, stage := range Stages() {
		if stage.ID == id {
			return true
		}
	}
	return false
}

// Store holds the current stage marker and the per-stage notes.
type Store struct {
	p     store.Persistence
	saver *debounce.Saver

	mu      sync.Mutex
	current string
	notes   map[string]string
}

// Option adjusts store construction.
type Option func(*options)

type options struct {
	delay  time.Duration
	status func(stage string, state debounce.State)
}

// WithSaveDelay overrides the note debounce delay; tests shrink it.
func WithSaveDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithNoteStatus observes note save-state transitions for "saving…"/"saved"
// indicators.
func WithNoteStatus(fn func(stage string, state debounce.State)) Option {
	return func(o *options) { o.status = fn }
}

// New loads the roadmap state.
func New(p store.Persistence, opts ...Option) *Store {
	o := options{delay: debounce.DefaultDelay}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{p: p}
	s.saver = debounce.New(o.delay, s.saveNote, o.status)
	s.Reload()
	return s
}

// Reload replaces the in-memory stage and notes from storage. A stored stage
// id that no longer names a roadmap stage counts as unset; note entries that
// are not strings are dropped.
func (s *Store) Reload() {
	current := ""
	if raw, ok := s.p.Read(StageKey); ok {
		id := strings.TrimSpace(string(raw))
		if validStage(id) {
			current = id
		}
	}

	notes := make(map[string]string)
	if raw, ok := s.p.Read(NotesKey); ok && len(raw) > 0 {
		var parsed map[string]any
		if err := json.Unmarshal(raw, &parsed); err == nil {
			for stage, v := range parsed {
				if !validStage(stage) {
					continue
				}
				if note := codec.AnyMultiline(v, maxNote); note != "" {
					notes[stage] = note
				}
			}
		}
	}

	s.mu.Lock()
	s.current = current
	s.notes = notes
	s.mu.Unlock()
}

// Current returns the marked stage id, or "" when unset.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Mark sets the current stage; marking the already-current stage clears the
// marker. The returned string is the new current stage.
func (s *Store) Mark(id string) (string, error) {
	if !validStage(id) {
		errs := codec.FieldErrors{}
		errs.Set("stage", "unknown roadmap stage")
		return s.Current(), errs
	}

	s.mu.Lock()
	if s.current == id {
		s.current = ""
	} else {
		s.current = id
	}
	current := s.current
	s.mu.Unlock()

	saved := true
	if current == "" {
		saved = s.p.Erase(StageKey)
	} else {
		saved = s.p.Write(StageKey, []byte(current))
	}
	if !saved {
		return current, collection.ErrNotSaved
	}
	return current, nil
}

// Note returns the saved note for a stage.
func (s *Store) Note(stage string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes[stage]
}

// Notes returns a copy of every saved note.
func (s *Store) Notes() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.notes))
	for stage, note := range s.notes {
		out[stage] = note
	}
	return out
}

// SetNote records typed input for the stage note; persistence happens after
// the debounce delay, and only the last value before quiescence is written.
func (s *Store) SetNote(stage, value string) error {
	if !validStage(stage) {
		errs := codec.FieldErrors{}
		errs.Set("stage", "unknown roadmap stage")
		return errs
	}
	s.saver.Input(stage, value)
	return nil
}

// FlushNote persists the note immediately, the blur path.
func (s *Store) FlushNote(stage, value string) error {
	if !validStage(stage) {
		errs := codec.FieldErrors{}
		errs.Set("stage", "unknown roadmap stage")
		return errs
	}
	s.saver.Flush(stage, value)
	return nil
}

// NoteState reports where the stage's note sits in the save cycle.
func (s *Store) NoteState(stage string) debounce.State {
	return s.saver.StateOf(stage)
}

// Close cancels pending note timers without saving.
func (s *Store) Close() {
	s.saver.Stop()
}

// saveNote is the debounce sink. A value that trims to nothing deletes the
// stage's entry instead of storing an empty string.
func (s *Store) saveNote(stage, value string) {
	clean := codec.Multiline(value, maxNote)

	s.mu.Lock()
	if clean == "" {
		delete(s.notes, stage)
	} else {
		s.notes[stage] = clean
	}
	data, err := json.Marshal(s.notes)
	s.mu.Unlock()

	if err != nil {
		return
	}
	s.p.Write(NotesKey, data)
}
