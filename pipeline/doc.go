// Package pipeline orchestrates the diarize-then-transcribe flow: it plans
// speaker windows over a recording, transcribes each window in order and
// assembles the results into subtitle cues.
package pipeline
