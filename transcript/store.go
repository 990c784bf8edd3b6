// Package transcript persists SRT transcripts next to their recordings.
// The subtitle file is the canonical artifact: everything else (speaker
// turns, plain text) is derived from it on read.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/srt"
)

// PathFor returns the transcript path for a recording: ".srt" appended to
// the full audio filename, in the same directory. External collaborators
// rely on this naming, so it is not configurable.
func PathFor(audioPath string) string {
	return audioPath + ".srt"
}

// Exists reports whether a transcript has been saved for the recording.
func Exists(audioPath string) bool {
	info, err := os.Stat(PathFor(audioPath))
	return err == nil && !info.IsDir()
}

// Save writes the SRT document for the recording. The write is atomic: the
// content lands in a temp file first and is renamed into place, so a crash
// mid-write never leaves a truncated transcript.
func Save(audioPath, content string) error {
	path := PathFor(audioPath)
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".srt-*")
	if err != nil {
		return fmt.Errorf("transcript: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("transcript: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("transcript: close temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("transcript: rename: %w", err)
	}
	return nil
}

// Load reads and decodes the transcript for the recording.
func Load(audioPath string) ([]srt.Cue, error) {
	path := PathFor(audioPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("transcript", path)
		}
		return nil, fmt.Errorf("transcript: read %s: %w", path, err)
	}
	return srt.Decode(string(data)), nil
}

// LoadTurns reads the transcript and groups consecutive cues by speaker.
func LoadTurns(audioPath string) ([]srt.Turn, error) {
	cues, err := Load(audioPath)
	if err != nil {
		return nil, err
	}
	return srt.GroupTurns(cues), nil
}

// Delete removes the transcript for the recording. Deleting a transcript
// that does not exist is not an error.
func Delete(audioPath string) error {
	err := os.Remove(PathFor(audioPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("transcript: delete: %w", err)
	}
	return nil
}
