// Package voice stores inner-critic character profiles and where in the
// imagined room each character is placed. Early releases stored a single
// profile under a singular key; loading lifts that shape into the profile
// collection once and deletes the legacy key so the old path stays dead.
package voice

import (
	"encoding/json"
	"sync"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

const (
	// ProfilesKey holds the profile collection.
	ProfilesKey = "voiceCharacterProfiles"
	// PlacementsKey holds the profile id → spot mapping.
	PlacementsKey = "voiceCharacterPlacements"

	// Legacy singular keys, consumed once by migration.
	legacyProfileKey   = "voiceCharacterProfile"
	legacyPlacementKey = "voiceCharacterPlacement"
)

const (
	maxName   = 40
	maxAge    = 130
	minAge    = 1
	maxDetail = 120
	maxNote   = 200
)

// Genders is the allow-list for the gender field.
var Genders = []string{"female", "male", "neutral", "other"}

// Presets is the allow-list for the appearance preset field.
var Presets = []string{"shadow", "child", "mentor", "relative", "future", "custom"}

// Spots is the allow-list of room placements.
var Spots = []string{"window", "sofa", "shelf", "door"}

// Profile describes one externalized character.
type Profile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gender           string `json:"gender"`
	Age              string `json:"age"`
	AppearancePreset string `json:"appearancePreset"`
	AppearanceDetail string `json:"appearanceDetail"`
	Phrases          string `json:"phrases"`
	Reminder         string `json:"reminder"`
}

func (p Profile) RecordID() string { return p.ID }

// Input carries a profile submission before validation.
type Input struct {
	Name             string
	Gender           string
	Age              string
	AppearancePreset string
	AppearanceDetail string
	Phrases          string
	Reminder         string
}

// Store holds the profile collection and the placement map.
type Store struct {
	p        store.Persistence
	profiles *collection.Store[Profile]

	mu         sync.Mutex
	placements map[string]string
}

// New loads profiles and placements, lifting legacy singular payloads first.
func New(p store.Persistence) *Store {
	migrateLegacy(p)
	s := &Store{
		p:        p,
		profiles: collection.New(p, ProfilesKey, sanitizeProfile),
	}
	s.reloadPlacements()
	return s
}

// migrateLegacy lifts the singular profile into a one-element collection with
// a freshly generated id, carries its placement over, and erases the legacy
// keys. It runs only while the new keys are still unwritten: once the
// collection exists, the legacy path is dead even if the old key reappears,
// so a profile can never be imported twice.
func migrateLegacy(p store.Persistence) {
	if _, exists := p.Read(ProfilesKey); exists {
		return
	}
	raw, ok := p.Read(legacyProfileKey)
	if !ok {
		return
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		// Unreadable legacy payload: nothing to lift, nothing to keep.
		p.Erase(legacyProfileKey)
		return
	}

	profile := Profile{
		ID:               collection.NewID(),
		Name:             codec.AnyText(fields["name"], maxName),
		Gender:           codec.AnyEnum(fields["gender"], Genders...),
		Age:              codec.AnyBoundedInt(fields["age"], minAge, maxAge),
		AppearancePreset: codec.AnyEnum(fields["appearance"], Presets...),
		AppearanceDetail: codec.AnyText(fields["appearanceNote"], maxDetail),
		Phrases:          codec.AnyMultiline(fields["phrases"], maxNote),
		Reminder:         codec.AnyMultiline(fields["message"], maxNote),
	}

	data, err := json.Marshal([]Profile{profile})
	if err != nil {
		return
	}
	if !p.Write(ProfilesKey, data) {
		// Migration only commits with the write-back; leave the legacy key
		// for a session whose storage works.
		return
	}
	p.Erase(legacyProfileKey)

	// The singular placement belongs to the profile we just lifted. Without
	// a lifted profile there is nothing to attach it to and the value is
	// discarded with its key.
	if _, exists := p.Read(PlacementsKey); exists {
		return
	}
	if rawSpot, ok := p.Read(legacyPlacementKey); ok {
		spot := codec.Enum(string(rawSpot), Spots...)
		if spot == "" {
			var quoted string
			if err := json.Unmarshal(rawSpot, &quoted); err == nil {
				spot = codec.Enum(quoted, Spots...)
			}
		}
		if spot != "" {
			if data, err := json.Marshal(map[string]string{profile.ID: spot}); err == nil {
				p.Write(PlacementsKey, data)
			}
		}
		p.Erase(legacyPlacementKey)
	}
}

func sanitizeProfile(raw json.RawMessage) (Profile, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Profile{}, false
	}

	profile := Profile{
		Name:             codec.AnyText(fields["name"], maxName),
		Gender:           codec.AnyEnum(fields["gender"], Genders...),
		Age:              codec.AnyBoundedInt(fields["age"], minAge, maxAge),
		AppearancePreset: codec.AnyEnum(fields["appearancePreset"], Presets...),
		AppearanceDetail: codec.AnyText(fields["appearanceDetail"], maxDetail),
		Phrases:          codec.AnyMultiline(fields["phrases"], maxNote),
		Reminder:         codec.AnyMultiline(fields["reminder"], maxNote),
	}

	if id, ok := fields["id"].(string); ok && id != "" {
		profile.ID = id
	} else {
		profile.ID = collection.NewID()
	}

	return profile, true
}

func validate(in Input) error {
	errs := codec.FieldErrors{}
	errs.Require("name", in.Name, "give the character a name")
	errs.MaxLen("name", in.Name, maxName, "must be 40 characters or fewer")
	return errs.OrNil()
}

func apply(p Profile, in Input) Profile {
	p.Name = codec.Text(in.Name, maxName)
	p.Gender = codec.Enum(in.Gender, Genders...)
	p.Age = codec.BoundedInt(in.Age, minAge, maxAge)
	p.AppearancePreset = codec.Enum(in.AppearancePreset, Presets...)
	p.AppearanceDetail = codec.Text(in.AppearanceDetail, maxDetail)
	if p.AppearancePreset != "custom" {
		p.AppearanceDetail = ""
	}
	p.Phrases = codec.Multiline(in.Phrases, maxNote)
	p.Reminder = codec.Multiline(in.Reminder, maxNote)
	return p
}

// Create validates and prepends a new profile.
func (s *Store) Create(in Input) (Profile, error) {
	if err := validate(in); err != nil {
		return Profile{}, err
	}
	p := apply(Profile{ID: collection.NewID()}, in)
	if err := s.profiles.Insert(p); err != nil {
		return p, err
	}
	return p, nil
}

// Update replaces the mutable fields of the profile with the given id.
func (s *Store) Update(id string, in Input) (Profile, error) {
	if err := validate(in); err != nil {
		return Profile{}, err
	}
	return s.profiles.Update(id, func(p Profile) Profile {
		return apply(p, in)
	})
}

// Delete removes a profile along with its placement.
func (s *Store) Delete(id string) (bool, error) {
	removed, err := s.profiles.Delete(id)
	if removed {
		s.mu.Lock()
		_, placed := s.placements[id]
		delete(s.placements, id)
		s.mu.Unlock()
		if placed && !s.persistPlacements() && err == nil {
			err = collection.ErrNotSaved
		}
	}
	return removed, err
}

// List returns the profiles.
func (s *Store) List() []Profile {
	return s.profiles.List()
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (Profile, error) {
	return s.profiles.Get(id)
}

// Place assigns the profile to one of the room spots.
func (s *Store) Place(id, spot string) error {
	if codec.Enum(spot, Spots...) == "" {
		errs := codec.FieldErrors{}
		errs.Set("spot", "spot must be one of window, sofa, shelf, door")
		return errs
	}
	if _, err := s.profiles.Get(id); err != nil {
		return err
	}

	s.mu.Lock()
	s.placements[id] = spot
	s.mu.Unlock()

	if !s.persistPlacements() {
		return collection.ErrNotSaved
	}
	return nil
}

// Unplace removes the profile's placement, bringing the character back.
func (s *Store) Unplace(id string) error {
	s.mu.Lock()
	delete(s.placements, id)
	s.mu.Unlock()

	if !s.persistPlacements() {
		return collection.ErrNotSaved
	}
	return nil
}

// PlacementOf reports the spot the profile is placed at, if any.
func (s *Store) PlacementOf(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spot, ok := s.placements[id]
	return spot, ok
}

// Placements returns a copy of the placement map.
func (s *Store) Placements() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.placements))
	for id, spot := range s.placements {
		out[id] = spot
	}
	return out
}

func (s *Store) persistPlacements() bool {
	s.mu.Lock()
	data, err := json.Marshal(s.placements)
	s.mu.Unlock()
	if err != nil {
		return false
	}
	return s.p.Write(PlacementsKey, data)
}

// reloadPlacements replaces the placement map from storage, dropping entries
// whose spot is no longer a recognized value.
func (s *Store) reloadPlacements() {
	placements := make(map[string]string)
	migrated := false

	if raw, ok := s.p.Read(PlacementsKey); ok && len(raw) > 0 {
		var parsed map[string]any
		if err := json.Unmarshal(raw, &parsed); err == nil {
			for id, v := range parsed {
				spot := codec.AnyEnum(v, Spots...)
				if id == "" || spot == "" {
					migrated = true
					continue
				}
				placements[id] = spot
			}
		}
	}

	s.mu.Lock()
	s.placements = placements
	s.mu.Unlock()

	if migrated {
		s.persistPlacements()
	}
}

// Reload rehydrates profiles and placements after an external change.
func (s *Store) Reload() {
	s.profiles.Reload()
	s.reloadPlacements()
}
