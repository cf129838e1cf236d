package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Date
	}{
		{"iso", "2024-06-15", NewDate(2024, time.June, 15)},
		{"iso with time suffix", "2024-06-15T10:30:00Z", NewDate(2024, time.June, 15)},
		{"french", "15/06/2024", NewDate(2024, time.June, 15)},
		{"surrounding whitespace", " 2024-06-15 ", NewDate(2024, time.June, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024/06/15", "31-12-2024"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestDateQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 0},
		{time.March, 0},
		{time.April, 1},
		{time.June, 1},
		{time.July, 2},
		{time.October, 3},
		{time.December, 3},
	}

	for _, tt := range tests {
		d := NewDate(2024, tt.month, 1)
		if got := d.Quarter(); got != tt.want {
			t.Errorf("Quarter of %v = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 15)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(raw) != `"2024-06-15"` {
		t.Errorf("Marshal = %s, want \"2024-06-15\"", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateUnmarshalLegacyTimestamp(t *testing.T) {
	// Older exports stored full RFC 3339 timestamps.
	var d Date
	if err := json.Unmarshal([]byte(`"2024-06-15T08:00:00.000Z"`), &d); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if d != NewDate(2024, time.June, 15) {
		t.Errorf("Unmarshal = %v, want 2024-06-15", d)
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("Unmarshal null returned error: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("Unmarshal null = %v, want zero date", d)
	}
}

func TestDateOfUsesUTC(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC the same day; the calendar date comes from
	// the UTC reading.
	paris := time.FixedZone("CEST", 2*3600)
	instant := time.Date(2024, time.June, 16, 1, 30, 0, 0, paris)
	if got := DateOf(instant); got != NewDate(2024, time.June, 15) {
		t.Errorf("DateOf = %v, want 2024-06-15 (UTC reading)", got)
	}
}
