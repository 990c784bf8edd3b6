// Package transcription defines the transcription provider interface and
// common types for interacting with speech-to-text backends.
//
// Backends receive in-memory audio rather than file paths so that callers
// can transcribe slices of a larger recording without touching disk.
package transcription
