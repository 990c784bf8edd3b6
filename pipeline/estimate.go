package pipeline

import "time"

// modelMultipliers maps a Whisper model name to its processing-time
// multiplier relative to audio duration, measured on CPU.
var modelMultipliers = map[string]float64{
	"tiny":   1.0,
	"base":   2.0,
	"small":  3.0,
	"medium": 4.0,
	"large":  5.0,
}

// diarizationOverhead is the extra factor applied when speaker
// diarization runs alongside transcription.
const diarizationOverhead = 1.5

// EstimateProcessingTime predicts how long transcribing a recording of the
// given duration will take with the given model.
func EstimateProcessingTime(audioDuration time.Duration, model string, withDiarization bool) time.Duration {
	mult, ok := modelMultipliers[model]
	if !ok {
		mult = 3.0
	}
	if withDiarization {
		mult *= diarizationOverhead
	}
	return time.Duration(float64(audioDuration) * mult)
}
