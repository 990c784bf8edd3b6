package diarization

import (
	"sort"

	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/srt"
)

// DefaultSegmentDuration is the alternating-mode window length in seconds.
const DefaultSegmentDuration = 10.0

type planMode int

const (
	modeExternal planMode = iota
	modeAlternating
	modeDisabled
)

// Plan is the tagged segmentation mode for one processing run. Construct it
// with External, Alternating, or Disabled; the zero value is not valid.
type Plan struct {
	mode            planMode
	turns           []Window
	segmentDuration float64
}

// External plans windows straight from a diarization backend's turns.
func External(turns []Window) Plan {
	return Plan{mode: modeExternal, turns: turns}
}

// Alternating plans fixed-length windows cycling between two synthetic
// speakers. A non-positive segmentDuration falls back to the default.
func Alternating(segmentDuration float64) Plan {
	if segmentDuration <= 0 {
		segmentDuration = DefaultSegmentDuration
	}
	return Plan{mode: modeAlternating, segmentDuration: segmentDuration}
}

// Disabled plans a single window covering the whole recording.
func Disabled() Plan {
	return Plan{mode: modeDisabled}
}

// Windows produces the ordered window list for a recording of the given
// duration. Duration must be positive.
//
// External turns are sorted by start time but never clamped, merged, or
// gap-filled: the backend is trusted to have produced a sane partition, and
// repairing one here would silently mask backend defects.
func (p Plan) Windows(duration float64) ([]Window, error) {
	if duration <= 0 {
		return nil, errors.InvalidDuration(duration)
	}

	switch p.mode {
	case modeExternal:
		windows := make([]Window, len(p.turns))
		copy(windows, p.turns)
		sort.SliceStable(windows, func(i, j int) bool {
			return windows[i].Start < windows[j].Start
		})
		return windows, nil

	case modeAlternating:
		var windows []Window
		speaker := 0
		for current := 0.0; current < duration; {
			end := current + p.segmentDuration
			if end > duration {
				end = duration
			}
			windows = append(windows, Window{
				Speaker: srt.SpeakerLabel(speaker),
				Start:   current,
				End:     end,
			})
			current = end
			speaker = (speaker + 1) % 2
		}
		return windows, nil

	default:
		return []Window{{Speaker: srt.DefaultSpeaker, Start: 0, End: duration}}, nil
	}
}
