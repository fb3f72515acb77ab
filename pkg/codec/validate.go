package codec

import (
	"fmt"
	"strings"
)

// FieldErrors maps a field name to the message shown next to it. It is the
// error returned when a submission fails validation; nothing is persisted and
// in-memory state is unchanged.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid submission"
	}
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// Set records a message for field unless one is already present.
func (e FieldErrors) Set(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// OrNil returns nil when no field failed, so callers can write
// `return errs.OrNil()`.
func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Require adds an error for field when value is empty after trimming.
func (e FieldErrors) Require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.Set(field, msg)
	}
}

// MaxLen adds an error for field when value exceeds max runes.
func (e FieldErrors) MaxLen(field, value string, max int, msg string) {
	if len([]rune(value)) > max {
		e.Set(field, msg)
	}
}
