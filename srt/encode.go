package srt

import (
	"strconv"
	"strings"
)

// Encode renders cues as SRT text. Blocks are renumbered contiguously from 1
// regardless of each cue's Index field, and the speaker id is embedded as a
// payload prefix unless the text already carries one. No escaping is applied;
// callers are expected to pass single-line text per cue.
func Encode(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		payload := cue.Text
		if !speakerTagRe.MatchString(payload) {
			speaker := cue.SpeakerID
			if speaker == "" {
				speaker = DefaultSpeaker
			}
			payload = speaker + ": " + payload
		}

		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(FormatTimestamp(cue.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(cue.End))
		b.WriteByte('\n')
		b.WriteString(payload)
		b.WriteString("\n\n")
	}
	return b.String()
}
