// Package codec sanitizes raw field values into their canonical stored form.
// Sanitizers are pure and total: invalid input yields a safe default, never an
// error. Submission-time validation lives in validate.go and is stricter.
package codec

import (
	"strconv"
	"strings"
)

// Text strips C0/C1 control characters, trims surrounding whitespace, and
// truncates to max runes. Newlines count as control characters here; use
// Multiline for fields that keep them.
func Text(raw string, max int) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if isControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return truncate(strings.TrimSpace(b.String()), max)
}

// Multiline behaves like Text but preserves internal line breaks, normalizing
// \r\n and bare \r to \n before trimming and truncating.
func Multiline(raw string, max int) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '\n' || r == '\r' {
			b.WriteRune(r)
			continue
		}
		if isControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	s := strings.ReplaceAll(b.String(), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return truncate(strings.TrimSpace(s), max)
}

// BoundedInt extracts the digits from raw and parses them as a decimal
// integer. Values that do not parse or fall below min become the empty
// string; values above max clamp to max. The result is returned in its
// canonical decimal string form.
func BoundedInt(raw string, min, max int) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		// Digit runs long enough to overflow clamp to max.
		return strconv.Itoa(max)
	}
	if n < min {
		return ""
	}
	if n > max {
		return strconv.Itoa(max)
	}
	return strconv.Itoa(n)
}

// Enum returns raw only when it appears in the allow-list, otherwise "".
func Enum(raw string, allowed ...string) string {
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	return ""
}

// TextSlice sanitizes every element with Text and drops the ones that end up
// empty.
func TextSlice(raw []string, max int) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s := Text(v, max); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
