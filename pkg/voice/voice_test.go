package voice

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func TestCreateValidation(t *testing.T) {
	s := New(store.NewMemory())
	_, err := s.Create(Input{})
	var fields codec.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fields["name"]; !ok {
		t.Fatalf("expected name error, got %v", fields)
	}
}

func TestCreateSanitizesFields(t *testing.T) {
	s := New(store.NewMemory())
	p, err := s.Create(Input{
		Name:             "The Judge",
		Gender:           "robot", // not in the allow-list
		Age:              "200 or so",
		AppearancePreset: "shadow",
		AppearanceDetail: "tall and gray", // cleared: preset is not custom
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Gender != "" {
		t.Fatalf("expected unknown gender dropped, got %q", p.Gender)
	}
	if p.Age != "130" {
		t.Fatalf("expected age clamped to 130, got %q", p.Age)
	}
	if p.AppearanceDetail != "" {
		t.Fatalf("expected detail cleared for preset appearance, got %q", p.AppearanceDetail)
	}
}

func TestCustomPresetKeepsDetail(t *testing.T) {
	s := New(store.NewMemory())
	p, err := s.Create(Input{
		Name:             "The Judge",
		AppearancePreset: "custom",
		AppearanceDetail: "tall and gray",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.AppearanceDetail != "tall and gray" {
		t.Fatalf("expected custom detail kept, got %q", p.AppearanceDetail)
	}
}

func TestPlaceAndUnplace(t *testing.T) {
	p := store.NewMemory()
	s := New(p)
	profile, _ := s.Create(Input{Name: "The Judge"})

	if err := s.Place(profile.ID, "window"); err != nil {
		t.Fatalf("place: %v", err)
	}
	spot, ok := s.PlacementOf(profile.ID)
	if !ok || spot != "window" {
		t.Fatalf("expected window placement, got %q, %v", spot, ok)
	}

	if err := s.Place(profile.ID, "ceiling"); err == nil {
		t.Fatalf("expected invalid spot rejected")
	}

	if err := s.Unplace(profile.ID); err != nil {
		t.Fatalf("unplace: %v", err)
	}
	if _, ok := s.PlacementOf(profile.ID); ok {
		t.Fatalf("expected placement cleared")
	}
}

func TestPlaceMissingProfile(t *testing.T) {
	s := New(store.NewMemory())
	if err := s.Place("ghost", "window"); !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesPlacement(t *testing.T) {
	p := store.NewMemory()
	s := New(p)
	profile, _ := s.Create(Input{Name: "The Judge"})
	_ = s.Place(profile.ID, "sofa")

	removed, err := s.Delete(profile.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}
	if _, ok := s.PlacementOf(profile.ID); ok {
		t.Fatalf("expected placement removed with profile")
	}

	raw, _ := p.Read(PlacementsKey)
	var placements map[string]string
	_ = json.Unmarshal(raw, &placements)
	if len(placements) != 0 {
		t.Fatalf("expected placements persisted empty, got %v", placements)
	}
}

func TestLegacyProfileMigration(t *testing.T) {
	p := store.NewMemory()
	p.Inject("voiceCharacterProfile", []byte(`{"name":"Old Critic","gender":"female","age":"44","appearance":"shadow","appearanceNote":"gray","phrases":"you never finish anything","message":"it is not my voice"}`))
	p.Inject("voiceCharacterPlacement", []byte(`"sofa"`))

	s := New(p)

	list := s.List()
	if len(list) != 1 {
		t.Fatalf("expected one lifted profile, got %d", len(list))
	}
	got := list[0]
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.Name != "Old Critic" || got.Gender != "female" || got.Age != "44" {
		t.Fatalf("unexpected lifted fields: %+v", got)
	}
	if got.AppearancePreset != "shadow" || got.AppearanceDetail != "gray" {
		t.Fatalf("expected appearance fields mapped, got %+v", got)
	}
	if got.Reminder != "it is not my voice" {
		t.Fatalf("expected message mapped to reminder, got %q", got.Reminder)
	}

	spot, ok := s.PlacementOf(got.ID)
	if !ok || spot != "sofa" {
		t.Fatalf("expected placement carried over, got %q, %v", spot, ok)
	}

	// Legacy keys are consumed.
	if _, ok := p.Read("voiceCharacterProfile"); ok {
		t.Fatalf("expected legacy profile key erased")
	}
	if _, ok := p.Read("voiceCharacterPlacement"); ok {
		t.Fatalf("expected legacy placement key erased")
	}
}

func TestLegacyIgnoredOnceCollectionExists(t *testing.T) {
	p := store.NewMemory()
	s := New(p)
	_, _ = s.Create(Input{Name: "Existing"})

	// The legacy key reappearing later must not import a second profile.
	p.Inject("voiceCharacterProfile", []byte(`{"name":"Zombie"}`))
	s2 := New(p)
	if len(s2.List()) != 1 {
		t.Fatalf("expected legacy payload ignored, got %v", s2.List())
	}
}

func TestLegacyMigrationNotCommittedWhenUnavailable(t *testing.T) {
	p := store.NewUnavailableMemory()
	p.Inject("voiceCharacterProfile", []byte(`{"name":"Old Critic"}`))

	_ = New(p)

	// Write failed, so the legacy key survives for a healthier session.
	if _, ok := p.Read("voiceCharacterProfile"); !ok {
		t.Fatalf("expected legacy key kept when write-back fails")
	}
}
