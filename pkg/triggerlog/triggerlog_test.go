package triggerlog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Snow-evo/flashback-atack/pkg/codec"
	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func TestCreateRequiresTrigger(t *testing.T) {
	p := store.NewMemory()
	s := New(p)

	_, err := s.Create(Input{Details: "no triggers selected"})
	var fields codec.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fields["trigger"]; !ok {
		t.Fatalf("expected trigger group error, got %v", fields)
	}
	if s.Len() != 0 {
		t.Fatalf("expected nothing persisted after validation failure")
	}
	if _, ok := p.Read(Key); ok {
		t.Fatalf("expected no storage write after validation failure")
	}
}

func TestCreateWithOtherTriggerOnly(t *testing.T) {
	s := New(store.NewMemory())
	e, err := s.Create(Input{TriggerOther: "crowded train"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp assigned, got %+v", e)
	}
}

func TestCreatePrepends(t *testing.T) {
	s := New(store.NewMemory())
	first, _ := s.Create(Input{Triggers: []string{"noise"}})
	second, _ := s.Create(Input{Triggers: []string{"smell"}})

	list := s.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %v", list)
	}
}

func TestValidationLimits(t *testing.T) {
	s := New(store.NewMemory())

	long := make([]rune, 1001)
	for i := range long {
		long[i] = 'x'
	}
	_, err := s.Create(Input{Triggers: []string{"noise"}, Details: string(long)})
	var fields codec.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fields["details"]; !ok {
		t.Fatalf("expected details error, got %v", fields)
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	s := New(store.NewMemory())
	e, _ := s.Create(Input{Triggers: []string{"noise"}, Details: "before"})

	updated, err := s.Update(e.ID, Input{Triggers: []string{"light"}, Details: "after"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != e.ID {
		t.Fatalf("expected id preserved, got %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt.Time) {
		t.Fatalf("expected creation time preserved")
	}
	if updated.Details != "after" || len(updated.Triggers) != 1 || updated.Triggers[0] != "light" {
		t.Fatalf("expected fields replaced, got %+v", updated)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := New(store.NewMemory())
	_, err := s.Update("ghost", Input{Triggers: []string{"noise"}})
	if !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSanitizeLegacyEntries(t *testing.T) {
	p := store.NewMemory()
	// One entry missing id and createdAt, numbers where strings belong.
	p.Inject(Key, []byte(`[{"triggers":["noise"],"details":42},{"id":"keep","createdAt":"2025-01-02T03:04:05Z","triggers":["smell"],"triggerOther":"","details":"fine","emotions":[],"emotionOther":"","actions":[],"actionOther":""}]`))

	s := New(p)
	list := s.List()
	if len(list) != 2 {
		t.Fatalf("expected both entries, got %d", len(list))
	}
	if list[0].ID == "" {
		t.Fatalf("expected fresh id for the orphan")
	}
	if list[0].Details != "" {
		t.Fatalf("expected wrong-typed details to empty, got %q", list[0].Details)
	}
	if list[1].ID != "keep" {
		t.Fatalf("expected stored id kept, got %q", list[1].ID)
	}

	// Migration wrote the canonical array back.
	raw, ok := p.Read(Key)
	if !ok {
		t.Fatalf("expected write-back")
	}
	var stored []Entry
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored payload: %v", err)
	}
	if len(stored) != 2 || stored[0].ID == "" {
		t.Fatalf("expected canonical stored entries, got %v", stored)
	}
}

func TestClear(t *testing.T) {
	p := store.NewMemory()
	s := New(p)
	_, _ = s.Create(Input{Triggers: []string{"noise"}})

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty log")
	}
	raw, _ := p.Read(Key)
	if string(raw) != "[]" {
		t.Fatalf("expected empty array persisted, got %s", raw)
	}
}

func TestCreateUnavailablePersistence(t *testing.T) {
	s := New(store.NewUnavailableMemory())
	_, err := s.Create(Input{Triggers: []string{"noise"}})
	if !errors.Is(err, collection.ErrNotSaved) {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected session state to keep the entry")
	}
}
