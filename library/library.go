// Package library manages the upload directory of audio recordings:
// saving uploads, listing them with metadata and deleting them together
// with their transcripts.
package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/scribe/audio"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/transcript"
	"github.com/skillsenselab/scribe/util"
)

// SupportedExtensions lists the audio formats the library accepts.
var SupportedExtensions = []string{".wav", ".mp3"}

// File describes one recording in the library.
type File struct {
	// ID is a stable identifier derived from the file path.
	ID uuid.UUID `json:"id"`
	// Name is the filename within the library directory.
	Name string `json:"name"`
	// Path is the absolute path to the recording.
	Path string `json:"path"`
	// SizeBytes is the file size on disk.
	SizeBytes int64 `json:"size_bytes"`
	// Duration is the recording length in seconds. Zero when
	// the duration could not be probed.
	Duration float64 `json:"duration_seconds"`
	// CreatedAt is the file modification time.
	CreatedAt time.Time `json:"created_at"`
	// HasTranscript reports whether a transcript exists for the recording.
	HasTranscript bool `json:"has_transcript"`
}

// Manager stores and lists recordings under a single directory.
type Manager struct {
	dir string
	log *logger.Logger
}

// NewManager creates a Manager rooted at dir, creating it if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("library: create dir %s: %w", dir, err)
	}
	m := &Manager{
		dir: dir,
		log: logger.WithComponent("library"),
	}
	m.log.Debug("library initialized", map[string]interface{}{"dir": dir})
	return m, nil
}

// Dir returns the library root directory.
func (m *Manager) Dir() string { return m.dir }

// Save writes an uploaded recording into the library and returns its
// metadata. The name must carry a supported extension.
func (m *Manager) Save(name string, r io.Reader) (*File, error) {
	name = filepath.Base(strings.TrimSpace(name))
	ext := strings.ToLower(filepath.Ext(name))
	if !util.Contains(SupportedExtensions, ext) {
		return nil, errors.InvalidInput("filename",
			fmt.Sprintf("unsupported format %q, allowed: %s", ext, strings.Join(SupportedExtensions, ", ")))
	}

	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); err == nil {
		// Name collision: keep both recordings apart with a short
		// random suffix rather than silently overwriting.
		base := strings.TrimSuffix(name, ext)
		name = fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
		path = filepath.Join(m.dir, name)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("library: create %s: %w", path, err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("library: write %s: %w", path, err)
	}

	m.log.Info("recording saved", map[string]interface{}{
		logger.FieldFile: name,
		"size":           util.FormatFileSize(size),
	})
	return m.stat(path)
}

// Get returns metadata for a single recording by name.
func (m *Manager) Get(name string) (*File, error) {
	path := filepath.Join(m.dir, filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NotFound("recording", name)
	}
	return m.stat(path)
}

// Exists reports whether a recording with the given name is in the library.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(m.dir, filepath.Base(name)))
	return err == nil
}

// List returns all recordings in the library. Files that cannot be
// inspected are skipped.
func (m *Manager) List() ([]File, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("library: read dir: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !util.Contains(SupportedExtensions, ext) {
			continue
		}
		f, err := m.stat(filepath.Join(m.dir, e.Name()))
		if err != nil {
			continue
		}
		files = append(files, *f)
	}
	return files, nil
}

// Delete removes a recording and its transcript.
func (m *Manager) Delete(name string) error {
	path := filepath.Join(m.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("recording", name)
		}
		return fmt.Errorf("library: delete %s: %w", path, err)
	}
	if err := transcript.Delete(path); err != nil {
		return err
	}
	m.log.Info("recording deleted", map[string]interface{}{logger.FieldFile: name})
	return nil
}

// CleanupOrphans deletes transcript files whose recording no longer
// exists and returns how many were removed.
func (m *Manager) CleanupOrphans() (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("library: read dir: %w", err)
	}

	cleaned := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".srt") {
			continue
		}
		audioName := strings.TrimSuffix(e.Name(), ".srt")
		if _, err := os.Stat(filepath.Join(m.dir, audioName)); err == nil {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, e.Name())); err == nil {
			cleaned++
		}
	}
	if cleaned > 0 {
		m.log.Info("orphaned transcripts removed", map[string]interface{}{"count": cleaned})
	}
	return cleaned, nil
}

// stat builds File metadata for a recording on disk.
func (m *Manager) stat(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("library: stat %s: %w", path, err)
	}

	// Duration is best effort: non-PCM files list with zero duration.
	var duration float64
	if reader, err := audio.Open(path); err == nil {
		duration = reader.Duration()
	}

	return &File{
		ID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)),
		Name:          filepath.Base(path),
		Path:          path,
		SizeBytes:     info.Size(),
		Duration:      duration,
		CreatedAt:     info.ModTime(),
		HasTranscript: transcript.Exists(path),
	}, nil
}
