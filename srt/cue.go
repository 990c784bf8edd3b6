package srt

import (
	"fmt"
	"regexp"
)

// DefaultSpeaker is the speaker id assigned when a cue carries no tag.
const DefaultSpeaker = "SPEAKER_00"

// speakerTagRe matches the speaker prefix embedded in cue payload text.
// Downstream consumers parse this positionally; the grammar is a format
// contract, not a style choice.
var speakerTagRe = regexp.MustCompile(`^(SPEAKER_\d+):\s*`)

// Cue is one timed, speaker-attributed unit of transcript text.
// Cues are value objects: transformations produce new cues, never mutate.
type Cue struct {
	// Index is the 1-based block number as it appeared in the source text.
	// After decoding it should match the cue's position; it is kept for
	// validation rather than trusted.
	Index int `json:"index"`
	// Start is the cue start time in seconds.
	Start float64 `json:"start"`
	// End is the cue end time in seconds.
	End float64 `json:"end"`
	// SpeakerID is the canonical speaker label (e.g. "SPEAKER_00").
	SpeakerID string `json:"speaker_id"`
	// Text is the transcribed text with the speaker prefix stripped.
	Text string `json:"text"`
}

// SpeakerLabel formats a canonical speaker id from a zero-based number.
func SpeakerLabel(n int) string {
	return fmt.Sprintf("SPEAKER_%02d", n)
}

// ExtractSpeaker splits an embedded speaker tag out of payload text.
// When no tag is present the full payload is returned with DefaultSpeaker.
func ExtractSpeaker(payload string) (speakerID, text string) {
	m := speakerTagRe.FindStringSubmatch(payload)
	if m == nil {
		return DefaultSpeaker, payload
	}
	return m[1], payload[len(m[0]):]
}
