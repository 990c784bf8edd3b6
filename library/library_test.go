package library

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/scribe/audio"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/transcript"
)

// wavPayload builds a small valid PCM WAV of the given duration at 100 Hz.
func wavPayload(t *testing.T, seconds float64) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := audio.WriteWAV(&buf, 100, 1, 8, make([]byte, int(seconds*100))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSaveAndGet(t *testing.T) {
	m := newTestManager(t)

	f, err := m.Save("meeting.wav", bytes.NewReader(wavPayload(t, 12)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if f.Name != "meeting.wav" {
		t.Errorf("name = %q", f.Name)
	}
	if f.Duration != 12 {
		t.Errorf("duration = %v, want 12", f.Duration)
	}
	if f.HasTranscript {
		t.Error("new recording should have no transcript")
	}

	got, err := m.Get("meeting.wav")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != f.ID {
		t.Errorf("ID not stable: %v vs %v", got.ID, f.ID)
	}
}

func TestSaveRejectsUnsupportedFormat(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Save("notes.txt", bytes.NewReader([]byte("hi")))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestSaveKeepsBothOnNameCollision(t *testing.T) {
	m := newTestManager(t)
	first, err := m.Save("meeting.wav", bytes.NewReader(wavPayload(t, 2)))
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Save("meeting.wav", bytes.NewReader(wavPayload(t, 4)))
	if err != nil {
		t.Fatal(err)
	}

	if second.Name == first.Name {
		t.Fatalf("second save reused name %q", second.Name)
	}
	if !strings.HasPrefix(second.Name, "meeting-") || filepath.Ext(second.Name) != ".wav" {
		t.Errorf("unexpected collision name %q", second.Name)
	}

	files, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 recordings, got %d", len(files))
	}
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	m := newTestManager(t)
	f, err := m.Save("../../escape.wav", bytes.NewReader(wavPayload(t, 1)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if f.Name != "escape.wav" {
		t.Errorf("name = %q", f.Name)
	}
	if filepath.Dir(f.Path) != m.Dir() {
		t.Errorf("file landed outside the library: %s", f.Path)
	}
}

func TestListSkipsForeignFiles(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Save("a.wav", bytes.NewReader(wavPayload(t, 5))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(m.Dir(), "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 1 || files[0].Name != "a.wav" {
		t.Errorf("unexpected listing: %v", files)
	}
}

func TestDeleteRemovesTranscript(t *testing.T) {
	m := newTestManager(t)
	f, err := m.Save("meeting.wav", bytes.NewReader(wavPayload(t, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if err := transcript.Save(f.Path, "1\n00:00:00,000 --> 00:00:03,000\nSPEAKER_00: hi\n\n"); err != nil {
		t.Fatal(err)
	}

	got, err := m.Get("meeting.wav")
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasTranscript {
		t.Error("transcript status not reflected")
	}

	if err := m.Delete("meeting.wav"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Exists("meeting.wav") {
		t.Error("recording still exists")
	}
	if transcript.Exists(f.Path) {
		t.Error("transcript survived deletion")
	}
}

func TestDeleteMissing(t *testing.T) {
	m := newTestManager(t)
	err := m.Delete("nope.wav")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCleanupOrphans(t *testing.T) {
	m := newTestManager(t)
	f, err := m.Save("kept.wav", bytes.NewReader(wavPayload(t, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if err := transcript.Save(f.Path, "x"); err != nil {
		t.Fatal(err)
	}
	// Orphan: transcript without a recording.
	if err := os.WriteFile(filepath.Join(m.Dir(), "gone.wav.srt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cleaned, err := m.CleanupOrphans()
	if err != nil {
		t.Fatalf("CleanupOrphans: %v", err)
	}
	if cleaned != 1 {
		t.Errorf("cleaned = %d, want 1", cleaned)
	}
	if !transcript.Exists(f.Path) {
		t.Error("live transcript was removed")
	}
}

func TestSortAndFilter(t *testing.T) {
	now := time.Now()
	files := []File{
		{Name: "beta.wav", Duration: 30, CreatedAt: now.Add(-time.Hour)},
		{Name: "Alpha.wav", Duration: 10, CreatedAt: now},
		{Name: "gamma.wav", Duration: 20, CreatedAt: now.Add(-2 * time.Hour)},
	}

	Sort(files, SortTitleAZ)
	if files[0].Name != "Alpha.wav" || files[2].Name != "gamma.wav" {
		t.Errorf("title sort: %v", names(files))
	}

	Sort(files, SortNewest)
	if files[0].Name != "Alpha.wav" || files[2].Name != "gamma.wav" {
		t.Errorf("newest sort: %v", names(files))
	}

	Sort(files, SortLongest)
	if files[0].Duration != 30 || files[2].Duration != 10 {
		t.Errorf("longest sort: %v", names(files))
	}

	got := FilterQuery(files, "ALPHA")
	if len(got) != 1 || got[0].Name != "Alpha.wav" {
		t.Errorf("filter: %v", names(got))
	}
	if len(FilterQuery(files, "")) != 3 {
		t.Error("empty query should return everything")
	}
}

func names(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}
