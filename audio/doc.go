// Package audio provides read access to PCM WAV recordings: duration and
// format probing plus sample-accurate slice extraction.
//
// Slices are returned re-wrapped as standalone WAV payloads so transcription
// backends can consume them without knowing the source file's layout.
// Fractional-second slice bounds are floored to the nearest whole frame.
package audio
