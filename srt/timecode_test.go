package srt

import (
	"math"
	"testing"

	"github.com/skillsenselab/scribe/errors"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1, "00:00:01,000"},
		{61.5, "00:01:01,500"},
		{3599.999, "00:59:59,999"},
		{3600, "01:00:00,000"},
		{2.999, "00:00:02,999"},
		{1.23456, "00:00:01,234"}, // truncated, not rounded
		{359999.999, "99:59:59,999"},
		{360000, "100:00:00,000"}, // hours are unbounded
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatTimestamp(tc.seconds); got != tc.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"00:00:00,000", 0},
		{"00:00:01,000", 1},
		{"00:01:01,500", 61.5},
		{"01:00:00,000", 3600},
		{"100:00:00,000", 360000},
		{"99:59:59,999", 359999.999},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTimestamp(tc.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tc.input, err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"00:00:00.000",  // wrong millisecond separator
		"00:00:00,00",   // two-digit milliseconds
		"0:0:0,000",     // unpadded fields
		"00:60:00,000",  // minutes out of range
		"00:00:60,000",  // seconds out of range
		"00:00:00,000x", // trailing garbage
		"garbage",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimestamp(in)
			if err == nil {
				t.Fatalf("ParseTimestamp(%q) should fail", in)
			}
			if !errors.HasCode(err, errors.ErrCodeMalformedTimestamp) {
				t.Errorf("expected MALFORMED_TIMESTAMP, got %v", err)
			}
		})
	}
}

// Round-trip law: decode(encode(t)) equals t truncated to millisecond
// precision. The lossiness past milliseconds is part of the format contract.
func TestTimestampRoundTrip(t *testing.T) {
	values := []float64{
		0, 0.001, 0.999, 1, 1.5, 59.999, 60, 61.25,
		2.999, 3599.999, 3600.0, 86399.5, 359999.999,
	}
	for _, v := range values {
		encoded := FormatTimestamp(v)
		got, err := ParseTimestamp(encoded)
		if err != nil {
			t.Fatalf("round trip of %v: %v", v, err)
		}
		// Recovered value is within one millisecond of the original...
		if math.Abs(got-v) >= 0.001 {
			t.Errorf("round trip of %v = %v, off by more than 1ms", v, got)
		}
		// ...and re-encoding is a fixed point.
		if again := FormatTimestamp(got); again != encoded {
			t.Errorf("re-encoding %v: got %q, want %q", v, again, encoded)
		}
	}
}
