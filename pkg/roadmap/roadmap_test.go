package roadmap

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Snow-evo/flashback-atack/pkg/collection"
	"github.com/Snow-evo/flashback-atack/pkg/debounce"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func TestMarkTogglesStage(t *testing.T) {
	p := store.NewMemory()
	s := New(p)
	defer s.Close()

	current, err := s.Mark("stabilization")
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if current != "stabilization" || s.Current() != "stabilization" {
		t.Fatalf("expected stabilization marked, got %q", current)
	}

	// The stage is stored as a bare string, not JSON.
	raw, ok := p.Read(StageKey)
	if !ok || string(raw) != "stabilization" {
		t.Fatalf("expected raw stage string, got %q", raw)
	}

	// Marking the same stage again clears the marker and the key.
	current, err = s.Mark("stabilization")
	if err != nil {
		t.Fatalf("mark again: %v", err)
	}
	if current != "" || s.Current() != "" {
		t.Fatalf("expected marker cleared, got %q", current)
	}
	if _, ok := p.Read(StageKey); ok {
		t.Fatalf("expected stage key erased")
	}
}

func TestMarkUnknownStage(t *testing.T) {
	s := New(store.NewMemory())
	defer s.Close()

	if _, err := s.Mark("denial"); err == nil {
		t.Fatalf("expected unknown stage rejected")
	}
	if s.Current() != "" {
		t.Fatalf("expected marker untouched")
	}
}

func TestReloadDropsInvalidStoredStage(t *testing.T) {
	p := store.NewMemory()
	p.Inject(StageKey, []byte("not-a-stage"))

	s := New(p)
	defer s.Close()
	if s.Current() != "" {
		t.Fatalf("expected invalid stored stage to read as unset, got %q", s.Current())
	}
}

func TestNoteDebounce(t *testing.T) {
	p := store.NewMemory()
	s := New(p, WithSaveDelay(20*time.Millisecond))
	defer s.Close()

	if err := s.SetNote("safety", "f"); err != nil {
		t.Fatalf("set note: %v", err)
	}
	if err := s.SetNote("safety", "found a safe place"); err != nil {
		t.Fatalf("set note: %v", err)
	}
	if s.NoteState("safety") != debounce.Pending {
		t.Fatalf("expected Pending while typing")
	}

	time.Sleep(100 * time.Millisecond)

	if s.NoteState("safety") != debounce.Saved {
		t.Fatalf("expected Saved after the delay")
	}
	if got := s.Note("safety"); got != "found a safe place" {
		t.Fatalf("expected last value saved, got %q", got)
	}

	raw, ok := p.Read(NotesKey)
	if !ok {
		t.Fatalf("expected notes persisted")
	}
	var notes map[string]string
	if err := json.Unmarshal(raw, &notes); err != nil {
		t.Fatalf("notes payload: %v", err)
	}
	if notes["safety"] != "found a safe place" {
		t.Fatalf("expected persisted note, got %v", notes)
	}
}

func TestFlushNote(t *testing.T) {
	p := store.NewMemory()
	s := New(p, WithSaveDelay(time.Hour))
	defer s.Close()

	if err := s.FlushNote("growth", "small wins count"); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := s.Note("growth"); got != "small wins count" {
		t.Fatalf("expected note saved immediately, got %q", got)
	}
}

func TestEmptyNoteDeletesEntry(t *testing.T) {
	p := store.NewMemory()
	s := New(p, WithSaveDelay(time.Hour))
	defer s.Close()

	_ = s.FlushNote("safety", "something")
	_ = s.FlushNote("safety", "   ")

	if got := s.Note("safety"); got != "" {
		t.Fatalf("expected note cleared, got %q", got)
	}
	raw, _ := p.Read(NotesKey)
	var notes map[string]string
	_ = json.Unmarshal(raw, &notes)
	if _, ok := notes["safety"]; ok {
		t.Fatalf("expected entry deleted from storage, got %v", notes)
	}
}

func TestNoteUnknownStage(t *testing.T) {
	s := New(store.NewMemory())
	defer s.Close()
	if err := s.SetNote("denial", "x"); err == nil {
		t.Fatalf("expected unknown stage rejected")
	}
}

func TestMarkUnavailablePersistence(t *testing.T) {
	s := New(store.NewUnavailableMemory())
	defer s.Close()

	current, err := s.Mark("safety")
	if !errors.Is(err, collection.ErrNotSaved) {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
	if current != "safety" || s.Current() != "safety" {
		t.Fatalf("expected session state to keep the marker")
	}
}

func TestStagesOrder(t *testing.T) {
	want := []string{"safety", "stabilization", "remembrance", "reconnection", "growth"}
	stages := Stages()
	if len(stages) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(stages))
	}
	for i, s := range stages {
		if s.ID != want[i] {
			t.Fatalf("stage %d = %q, want %q", i, s.ID, want[i])
		}
		if s.Title == "" {
			t.Fatalf("stage %q missing title", s.ID)
		}
	}
}
