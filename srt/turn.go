package srt

import "strings"

// Turn is a run of consecutive same-speaker cues merged for display.
type Turn struct {
	// SpeakerID is the shared speaker label of every member cue.
	SpeakerID string `json:"speaker_id"`
	// Start is the first member cue's start time in seconds.
	Start float64 `json:"start"`
	// End is the last member cue's end time in seconds.
	End float64 `json:"end"`
	// Texts holds each member cue's text in order, one entry per cue.
	Texts []string `json:"texts"`
	// CueIndices records the zero-based positions of the member cues in
	// the decoded cue list.
	CueIndices []int `json:"cue_indices"`
}

// GroupTurns merges consecutive cues that share a speaker into turns with a
// single left-to-right scan. A new turn starts whenever the speaker differs
// from the immediately preceding cue; any time gap between same-speaker cues
// is ignored. Every input cue lands in exactly one turn, in order.
func GroupTurns(cues []Cue) []Turn {
	if len(cues) == 0 {
		return nil
	}

	turns := make([]Turn, 0, len(cues))
	for i, cue := range cues {
		if len(turns) > 0 && turns[len(turns)-1].SpeakerID == cue.SpeakerID {
			last := &turns[len(turns)-1]
			last.End = cue.End
			last.Texts = append(last.Texts, cue.Text)
			last.CueIndices = append(last.CueIndices, i)
			continue
		}
		turns = append(turns, Turn{
			SpeakerID:  cue.SpeakerID,
			Start:      cue.Start,
			End:        cue.End,
			Texts:      []string{cue.Text},
			CueIndices: []int{i},
		})
	}
	return turns
}

// SpeakerNumber maps a raw speaker id onto the two display slots used by the
// playback UI: ids ending in "0" are speaker 1, everything else speaker 2.
// Diarization output with more than two speakers collapses into these two
// slots; that quirk is kept for compatibility with existing transcripts.
func SpeakerNumber(speakerID string) int {
	if strings.HasSuffix(speakerID, "0") {
		return 1
	}
	return 2
}

// DisplayName returns the human-facing label for the turn's speaker.
func (t Turn) DisplayName() string {
	if SpeakerNumber(t.SpeakerID) == 1 {
		return "Speaker 1"
	}
	return "Speaker 2"
}
