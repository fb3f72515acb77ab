package codec

import (
	"fmt"
	"math"
)

// The Any variants sanitize fields plucked out of untrusted decoded JSON
// (map[string]any values). A field of the wrong type is just an empty field,
// never an error.

// AnyText sanitizes v as a single-line text field.
func AnyText(v any, max int) string {
	s, _ := v.(string)
	return Text(s, max)
}

// AnyMultiline sanitizes v as a multiline text field.
func AnyMultiline(v any, max int) string {
	s, _ := v.(string)
	return Multiline(s, max)
}

// AnyEnum sanitizes v against the allow-list.
func AnyEnum(v any, allowed ...string) string {
	s, _ := v.(string)
	return Enum(s, allowed...)
}

// AnyBoundedInt sanitizes v as a bounded integer. JSON numbers and strings
// are both accepted, matching payloads written before the field was
// normalized to its string form.
func AnyBoundedInt(v any, min, max int) string {
	switch n := v.(type) {
	case string:
		return BoundedInt(n, min, max)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return ""
		}
		return BoundedInt(fmt.Sprintf("%.0f", n), min, max)
	default:
		return ""
	}
}

// AnyTextSlice sanitizes v as a list of single-line text values, dropping
// non-string elements.
func AnyTextSlice(v any, max int) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			if clean := Text(s, max); clean != "" {
				out = append(out, clean)
			}
		}
	}
	return out
}

// AnyBool sanitizes v as a boolean flag.
func AnyBool(v any) bool {
	b, _ := v.(bool)
	return b
}
