package srt

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/skillsenselab/scribe/errors"
)

// timestampRe matches the SRT time code grammar. Hours are unbounded so
// recordings longer than 99 hours still format and parse.
var timestampRe = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2}),(\d{3})$`)

// FormatTimestamp renders a seconds value as an SRT time code "HH:MM:SS,mmm".
// The fractional part is truncated to milliseconds, not rounded.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	// Half-microsecond guard so values like 2.999 (stored as 2998.999...us)
	// truncate to the millisecond they denote.
	totalMs := int64(seconds*1000 + 0.0005)

	h := totalMs / 3_600_000
	m := (totalMs % 3_600_000) / 60_000
	s := (totalMs % 60_000) / 1000
	ms := totalMs % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ParseTimestamp converts an SRT time code back to seconds. It returns a
// MALFORMED_TIMESTAMP error when the string does not match the grammar or a
// minutes/seconds field is out of range.
func ParseTimestamp(text string) (float64, error) {
	m := timestampRe.FindStringSubmatch(text)
	if m == nil {
		return 0, errors.MalformedTimestamp(text)
	}

	h, _ := strconv.ParseInt(m[1], 10, 64)
	mins, _ := strconv.ParseInt(m[2], 10, 64)
	secs, _ := strconv.ParseInt(m[3], 10, 64)
	ms, _ := strconv.ParseInt(m[4], 10, 64)

	if mins > 59 || secs > 59 {
		return 0, errors.MalformedTimestamp(text)
	}

	return float64(h)*3600 + float64(mins)*60 + float64(secs) + float64(ms)/1000, nil
}
