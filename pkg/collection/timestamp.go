package collection

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime parses the stored RFC3339 creation timestamp.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is a creation time with a stable serialized form: always UTC,
// always RFC3339, so canonical comparison of stored payloads is byte-exact.
type Timestamp struct {
	time.Time
}

// Now returns the current instant truncated to seconds, the resolution the
// serialized form keeps.
func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// Display renders the timestamp the way log entries show it.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	local := t.Local()
	return local.Format("2006/01/02 15:04")
}
