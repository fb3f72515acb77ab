// Package plans stores externalization plans: the named inner critic given a
// persona, and the scene where its counter-voice should appear.
package plans

import (
	"encoding/json"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

// Key is the storage key holding the newest-first plan array.
const Key = "externalizationPlans"

const (
	maxName     = 40
	maxPersona  = 300
	maxSupport  = 300
	maxScene    = 120
	maxLocation = 80
	maxAction   = 120
)

// Plan is one saved externalization plan.
type Plan struct {
	ID               string               `json:"id"`
	CreatedAt        collection.Timestamp `json:"createdAt"`
	CharacterName    string               `json:"characterName"`
	CharacterPersona string               `json:"characterPersona"`
	CharacterSupport string               `json:"characterSupport"`
	SupportScene     string               `json:"supportScene"`
	SupportLocation  string               `json:"supportLocation"`
	SupportAction    string               `json:"supportAction"`
}

func (p Plan) RecordID() string { return p.ID }

// Input carries a plan submission before validation.
type Input struct {
	CharacterName    string
	CharacterPersona string
	CharacterSupport string
	SupportScene     string
	SupportLocation  string
	SupportAction    string
}

// Store is the plan collection.
type Store struct {
	c *collection.Store[Plan]
}

// New loads the plans under their storage key.
func New(p store.Persistence) *Store {
	return &Store{c: collection.New(p, Key, sanitizePlan)}
}

func sanitizePlan(raw json.RawMessage) (Plan, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Plan{}, false
	}

	// A plan without an id never belonged to the collection; drop it rather
	// than adopt it, matching how these payloads were always filtered.
	id, ok := fields["id"].(string)
	if !ok || id == "" {
		return Plan{}, false
	}

	p := Plan{
		ID:               id,
		CharacterName:    codec.AnyText(fields["characterName"], maxName),
		CharacterPersona: codec.AnyMultiline(fields["characterPersona"], maxPersona),
		CharacterSupport: codec.AnyMultiline(fields["characterSupport"], maxSupport),
		SupportScene:     codec.AnyText(fields["supportScene"], maxScene),
		SupportLocation:  codec.AnyText(fields["supportLocation"], maxLocation),
		SupportAction:    codec.AnyText(fields["supportAction"], maxAction),
	}

	if createdAt, ok := fields["createdAt"].(string); ok {
		if t, err := collection.ParseTime(createdAt); err == nil {
			p.CreatedAt = collection.Timestamp{Time: t}
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = collection.Now()
	}

	return p, true
}

func validate(in Input) error {
	errs := codec.FieldErrors{}
	errs.Require("characterName", in.CharacterName, "name the voice you want to externalize")
	errs.Require("supportScene", in.SupportScene, "describe the scene where it should appear")
	errs.MaxLen("characterName", in.CharacterName, maxName, "must be 40 characters or fewer")
	errs.MaxLen("supportScene", in.SupportScene, maxScene, "must be 120 characters or fewer")
	return errs.OrNil()
}

func apply(p Plan, in Input) Plan {
	p.CharacterName = codec.Text(in.CharacterName, maxName)
	p.CharacterPersona = codec.Multiline(in.CharacterPersona, maxPersona)
	p.CharacterSupport = codec.Multiline(in.CharacterSupport, maxSupport)
	p.SupportScene = codec.Text(in.SupportScene, maxScene)
	p.SupportLocation = codec.Text(in.SupportLocation, maxLocation)
	p.SupportAction = codec.Text(in.SupportAction, maxAction)
	return p
}

// Create validates and prepends a new plan.
func (s *Store) Create(in Input) (Plan, error) {
	if err := validate(in); err != nil {
		return Plan{}, err
	}
	p := apply(Plan{ID: collection.NewID(), CreatedAt: collection.Now()}, in)
	if err := s.c.Insert(p); err != nil {
		return p, err
	}
	return p, nil
}

// Update replaces the mutable fields of the plan with the given id.
func (s *Store) Update(id string, in Input) (Plan, error) {
	if err := validate(in); err != nil {
		return Plan{}, err
	}
	return s.c.Update(id, func(p Plan) Plan {
		return apply(p, in)
	})
}

// Delete removes the plan with the given id.
func (s *Store) Delete(id string) (bool, error) {
	return s.c.Delete(id)
}

// Clear removes every plan.
func (s *Store) Clear() error {
	return s.c.Clear()
}

// List returns plans newest-first.
func (s *Store) List() []Plan {
	return s.c.List()
}

// Len reports the number of plans.
func (s *Store) Len() int {
	return s.c.Len()
}

// Get returns the plan with the given id.
func (s *Store) Get(id string) (Plan, error) {
	return s.c.Get(id)
}

// Reload rehydrates from storage after an external change.
func (s *Store) Reload() {
	s.c.Reload()
}
