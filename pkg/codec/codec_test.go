package codec

import (
	"reflect"
	"testing"
)

func TestText(t *testing.T) {
	if got := Text("  hello\tworld\n ", 0); got != "helloworld" {
		t.Fatalf("expected control characters stripped, got %q", got)
	}
	if got := Text("abcdef", 3); got != "abc" {
		t.Fatalf("expected truncation to 3 runes, got %q", got)
	}
	// Truncation counts runes, not bytes.
	if got := Text("ねこねこねこ", 2); got != "ねこ" {
		t.Fatalf("expected 2 runes, got %q", got)
	}
	if got := Text("\x1b[31mred\x1b[0m", 0); got != "[31mred[0m" {
		t.Fatalf("expected escape bytes stripped, got %q", got)
	}
}

func TestMultiline(t *testing.T) {
	if got := Multiline("line one\r\nline two\rline three", 0); got != "line one\nline two\nline three" {
		t.Fatalf("expected normalized newlines, got %q", got)
	}
	if got := Multiline("  \n  padded  \n  ", 0); got != "padded" {
		t.Fatalf("expected surrounding whitespace trimmed, got %q", got)
	}
}

func TestBoundedInt(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"30", "30"},
		{" 30 years ", "30"},
		{"0", ""},
		{"131", "130"},
		{"999999999999999999999999", "130"},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := BoundedInt(tc.raw, 1, 130); got != tc.want {
			t.Fatalf("BoundedInt(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestEnum(t *testing.T) {
	if got := Enum("sofa", "window", "sofa", "shelf", "door"); got != "sofa" {
		t.Fatalf("expected allowed value to pass, got %q", got)
	}
	if got := Enum("ceiling", "window", "sofa", "shelf", "door"); got != "" {
		t.Fatalf("expected unknown value to empty, got %q", got)
	}
}

func TestTextSlice(t *testing.T) {
	got := TextSlice([]string{" fear ", "", "\n", "anger"}, 40)
	want := []string{"fear", "anger"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TextSlice = %v, want %v", got, want)
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	errs.Require("name", "  ", "name is required")
	errs.MaxLen("scene", "abcdef", 3, "too long")
	errs.MaxLen("ok", "ab", 3, "too long")

	if errs.OrNil() == nil {
		t.Fatalf("expected errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Fatalf("expected name error, got %v", errs)
	}
	if _, ok := errs["scene"]; !ok {
		t.Fatalf("expected scene error, got %v", errs)
	}
	if _, ok := errs["ok"]; ok {
		t.Fatalf("did not expect ok error, got %v", errs)
	}

	empty := FieldErrors{}
	if empty.OrNil() != nil {
		t.Fatalf("expected nil for no errors")
	}
}
