package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/transcription"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "small" {
			t.Errorf("model = %q, want small (request override)", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("language = %q", got)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "window_000.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if len(data) == 0 {
			t.Error("empty audio upload")
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"hello world","language":"en","segments":[{"text":"hello world","start":0,"end":2.5}]}`)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL, Model: "base", Language: "en"})
	resp, err := p.Transcribe(context.Background(), transcription.Request{
		Audio:    []byte("RIFF..."),
		Filename: "window_000.wav",
		Model:    "small",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "hello world" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Duration != 2.5 {
		t.Errorf("duration = %v, want 2.5", resp.Duration)
	}
	if len(resp.Segments) != 1 {
		t.Errorf("segments = %d, want 1", len(resp.Segments))
	}
}

func TestTranscribeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "model not loaded")
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.Request{Audio: []byte("x")})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.HasCode(err, errors.ErrCodeBackendFailure) {
		t.Errorf("expected BACKEND_FAILURE, got %v", err)
	}
}

func TestTranscribeEmptyPayload(t *testing.T) {
	p := NewProvider(Config{})
	if _, err := p.Transcribe(context.Background(), transcription.Request{}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if !NewProvider(Config{URL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("expected available")
	}

	srv.Close()
	if NewProvider(Config{URL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("expected unavailable after shutdown")
	}
}
