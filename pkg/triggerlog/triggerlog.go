// Package triggerlog records flashback trigger observations: what set the
// episode off, what it felt like, and what helped.
package triggerlog

import (
	"encoding/json"
	"strings"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Key is the storage key holding the newest-first log array.
const Key = "triggerLogs"

const (
	maxTag     = 40
	maxOther   = 40
	maxDetails = 1000
)

// Entry is one logged episode.
type Entry struct {
	ID           string               `json:"id"`
	CreatedAt    collection.Timestamp `json:"createdAt"`
	Triggers     []string             `json:"triggers"`
	TriggerOther string               `json:"triggerOther"`
	Details      string               `json:"details"`
	Emotions     []string             `json:"emotions"`
	EmotionOther string               `json:"emotionOther"`
	Actions      []string             `json:"actions"`
	ActionOther  string               `json:"actionOther"`
}

func (e Entry) RecordID() string { return e.ID }

// Input carries a submission before validation. Selecting the "other" chip
// in a group corresponds to passing a non-empty *Other value.
type Input struct {
	Triggers     []string
	TriggerOther string
	Details      string
	Emotions     []string
	EmotionOther string
	Actions      []string
	ActionOther  string
}

// Store is the trigger log collection.
type Store struct {
	c *collection.Store[Entry]
}

// New loads the log under its storage key.
func New(p store.Persistence) *Store {
	return &Store{c: collection.New(p, Key, sanitizeEntry)}
}

// sanitizeEntry rebuilds one stored element field by field. Non-object
// elements are dropped; wrong-typed fields become empty rather than killing
// the entry. An entry that lost its id gets a fresh one, which flags the
// collection for write-back.
func sanitizeEntry(raw json.RawMessage) (Entry, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entry{}, false
	}

	e := Entry{
		Triggers:     codec.AnyTextSlice(fields["triggers"], maxTag),
		TriggerOther: codec.AnyText(fields["triggerOther"], maxOther),
		Details:      codec.AnyMultiline(fields["details"], maxDetails),
		Emotions:     codec.AnyTextSlice(fields["emotions"], maxTag),
		EmotionOther: codec.AnyText(fields["emotionOther"], maxOther),
		Actions:      codec.AnyTextSlice(fields["actions"], maxTag),
		ActionOther:  codec.AnyText(fields["actionOther"], maxOther),
	}

	if id, ok := fields["id"].(string); ok && id != "" {
		e.ID = id
	} else {
		e.ID = collection.NewID()
	}

	if createdAt, ok := fields["createdAt"].(string); ok {
		if t, err := collection.ParseTime(createdAt); err == nil {
			e.CreatedAt = collection.Timestamp{Time: t}
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = collection.Now()
	}

	return e, true
}

// validate applies the submission rules: at least one trigger chip or a
// non-empty "other" trigger, and length limits on the free-text fields.
func validate(in Input) error {
	errs := codec.FieldErrors{}

	if len(codec.TextSlice(in.Triggers, maxTag)) == 0 && strings.TrimSpace(in.TriggerOther) == "" {
		errs.Set("trigger", "select at least one trigger")
	}
	if in.TriggerOther != "" {
		errs.Require("triggerOther", in.TriggerOther, "enter at least one character")
		errs.MaxLen("triggerOther", in.TriggerOther, maxOther, "must be 40 characters or fewer")
	}
	if in.EmotionOther != "" {
		errs.MaxLen("emotionOther", in.EmotionOther, maxOther, "must be 40 characters or fewer")
	}
	if in.ActionOther != "" {
		errs.MaxLen("actionOther", in.ActionOther, maxOther, "must be 40 characters or fewer")
	}
	errs.MaxLen("details", in.Details, maxDetails, "must be 1000 characters or fewer")

	return errs.OrNil()
}

func apply(e Entry, in Input) Entry {
	e.Triggers = codec.TextSlice(in.Triggers, maxTag)
	e.TriggerOther = codec.Text(in.TriggerOther, maxOther)
	e.Details = codec.Multiline(in.Details, maxDetails)
	e.Emotions = codec.TextSlice(in.Emotions, maxTag)
	e.EmotionOther = codec.Text(in.EmotionOther, maxOther)
	e.Actions = codec.TextSlice(in.Actions, maxTag)
	e.ActionOther = codec.Text(in.ActionOther, maxOther)
	return e
}

// Create validates the submission, assigns a fresh id and creation time, and
// prepends the entry. A validation failure returns codec.FieldErrors and
// persists nothing.
func (s *Store) Create(in Input) (Entry, error) {
	if err := validate(in); err != nil {
		return Entry{}, err
	}
	e := apply(Entry{ID: collection.NewID(), CreatedAt: collection.Now()}, in)
	if err := s.c.Insert(e); err != nil {
		return e, err
	}
	return e, nil
}

// Update replaces the mutable fields of the entry with the given id. The id,
// creation time, and list position stay put. collection.ErrNotFound means
// the entry vanished, likely deleted from another window.
func (s *Store) Update(id string, in Input) (Entry, error) {
	if err := validate(in); err != nil {
		return Entry{}, err
	}
	return s.c.Update(id, func(e Entry) Entry {
		return apply(e, in)
	})
}

// Delete removes the entry with the given id.
func (s *Store) Delete(id string) (bool, error) {
	return s.c.Delete(id)
}

// Clear removes every entry. The confirmation step belongs to the caller.
func (s *Store) Clear() error {
	return s.c.Clear()
}

// List returns entries newest-first.
func (s *Store) List() []Entry {
	return s.c.List()
}

// Len reports the number of entries.
func (s *Store) Len() int {
	return s.c.Len()
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, error) {
	return s.c.Get(id)
}

// Reload rehydrates from storage after an external change.
func (s *Store) Reload() {
	s.c.Reload()
}
