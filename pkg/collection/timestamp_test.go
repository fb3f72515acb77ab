package collection

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-03-09T14:30:05Z"` {
		t.Fatalf("expected canonical RFC3339 UTC, got %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Fatalf("expected %v, got %v", ts, back)
	}
}

func TestTimestampCanonicalInAnyZone(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	ts := Timestamp{Time: time.Date(2025, 3, 9, 23, 30, 5, 0, jst)}

	data, _ := json.Marshal(ts)
	if string(data) != `"2025-03-09T14:30:05Z"` {
		t.Fatalf("expected UTC serialization, got %s", data)
	}
}

func TestTimestampZero(t *testing.T) {
	var ts Timestamp
	data, _ := json.Marshal(ts)
	if string(data) != `""` {
		t.Fatalf("expected empty string for zero time, got %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal([]byte(`""`), &back); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("expected zero time")
	}
	if back.Display() != "" {
		t.Fatalf("expected empty display for zero time")
	}
}

func TestNowTruncatesToSeconds(t *testing.T) {
	ts := Now()
	if ts.Nanosecond() != 0 {
		t.Fatalf("expected second resolution, got %d ns", ts.Nanosecond())
	}
}
