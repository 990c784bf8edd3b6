package diarization

// Window is one speaker-attributed span of the recording timeline.
type Window struct {
	// Speaker is the speaker label for this span.
	Speaker string `json:"speaker"`
	// Start is the window start time in seconds.
	Start float64 `json:"start"`
	// End is the window end time in seconds.
	End float64 `json:"end"`
}

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
}

// Response holds the result of a diarization call.
type Response struct {
	// Windows contains speaker-attributed time spans.
	Windows []Window `json:"windows"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}
