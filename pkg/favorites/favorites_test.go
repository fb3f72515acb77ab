package favorites

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tip-07", "tip-07"},
		{"tip-7", "tip-07"},
		{"tip-12", "tip-12"},
		{"07: ground yourself", "tip-07"},
		{"7: ground yourself", "tip-07"},
		{"12：全角コロン", "tip-12"},
		{"  tip-03  ", "tip-03"},
		{"tip-", ""},
		{"something else", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	// Idempotence: the canonical form maps to itself.
	for _, tc := range cases {
		if tc.want == "" {
			continue
		}
		if got := Normalize(tc.want); got != tc.want {
			t.Fatalf("Normalize not idempotent for %q: got %q", tc.want, got)
		}
	}
}

func TestToggle(t *testing.T) {
	p := store.NewMemory()
	s := New(p)

	on, err := s.Toggle("tip-07")
	if err != nil || !on {
		t.Fatalf("expected first toggle on, got %v, %v", on, err)
	}
	if !s.Has("tip-7") {
		t.Fatalf("expected membership under any historical form")
	}

	off, err := s.Toggle("tip-7")
	if err != nil || off {
		t.Fatalf("expected second toggle off, got %v, %v", off, err)
	}

	// A fully-toggled-off set still persists as an empty array.
	raw, ok := p.Read(Key)
	if !ok {
		t.Fatalf("expected the empty set persisted")
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestToggleInvalidID(t *testing.T) {
	s := New(store.NewMemory())
	if _, err := s.Toggle("nonsense"); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestLegacyMigration(t *testing.T) {
	p := store.NewMemory()
	legacy := []string{"07: breathe slowly", "tip-3", " tip-12 "}
	data, _ := json.Marshal(legacy)
	p.Inject(Key, data)

	s := New(p)

	want := []string{"tip-03", "tip-07", "tip-12"}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}

	// Migration writes the canonical set straight back.
	raw, ok := p.Read(Key)
	if !ok {
		t.Fatalf("expected write-back")
	}
	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored payload: %v", err)
	}
	if !reflect.DeepEqual(stored, want) {
		t.Fatalf("stored = %v, want %v", stored, want)
	}

	// A second load sees canonical data and does not rewrite.
	s2 := New(p)
	if got := s2.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("second load List = %v, want %v", got, want)
	}
}

func TestLoadDropsGarbageElements(t *testing.T) {
	p := store.NewMemory()
	p.Inject(Key, []byte(`["tip-01", 42, null, "junk", ""]`))

	s := New(p)
	want := []string{"tip-01"}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestMalformedPayloadLoadsEmptyWithoutWriteBack(t *testing.T) {
	p := store.NewMemory()
	p.Inject(Key, []byte(`{"not":"an array`))

	s := New(p)
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}

	// The garbage stays untouched; write-back never canonicalizes it.
	raw, _ := p.Read(Key)
	if string(raw) != `{"not":"an array` {
		t.Fatalf("expected payload untouched, got %s", raw)
	}
}

func TestToggleUnavailablePersistence(t *testing.T) {
	p := store.NewUnavailableMemory()
	s := New(p)

	on, err := s.Toggle("tip-05")
	if !on {
		t.Fatalf("expected in-memory toggle to apply")
	}
	if err != ErrNotSaved {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
	if !s.Has("tip-05") {
		t.Fatalf("expected session state to keep the toggle")
	}
}
