// Package diarization plans how a recording's timeline is partitioned into
// speaker-attributed windows, and defines the provider interface for external
// speaker-diarization backends.
//
// Three planning modes exist, selected once per processing run:
//
//   - External: windows come from a diarization backend and are passed
//     through sorted but otherwise untouched (gaps and overlaps included)
//   - Alternating: fixed-length windows alternating between two synthetic
//     speakers, for runs without a diarization backend
//   - Disabled: a single window covering the whole recording
//
// # Backends
//
//   - diarization/pyannote: Pyannote HTTP sidecar
package diarization
