// Package srt implements the SubRip (SRT) subtitle format used as the
// persisted representation of a diarized transcript.
//
// A transcript is a sequence of numbered cue blocks:
//
//	1
//	00:00:01,000 --> 00:00:02,500
//	SPEAKER_00: hello there
//
// The speaker identity travels inside the payload text as a SPEAKER_NN:
// prefix so it survives the plain-text round trip; Decode extracts it back
// out. Encoding then decoding a well-formed cue list is lossless apart from
// millisecond truncation of the times.
//
// Decoding is best-effort: blocks that do not match the grammar are skipped
// so a partially corrupt file still yields its readable cues.
package srt
