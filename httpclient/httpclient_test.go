package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if !c.Healthy(context.Background(), "/health") {
		t.Error("expected healthy")
	}
	if c.Healthy(context.Background(), "/missing") {
		t.Error("expected unhealthy for 404")
	}
}

func TestPostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "base" {
			t.Errorf("model field = %q", got)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "clip.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "payload" {
			t.Errorf("file content = %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"hello"}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	var out struct {
		Text string `json:"text"`
	}
	err := c.PostMultipart(context.Background(), "/transcribe", MultipartBody{
		Fields: map[string]string{"model": "base"},
		Files: []FileField{
			{FieldName: "audio", FileName: "clip.wav", Data: []byte("payload")},
		},
	}, &out)
	if err != nil {
		t.Fatalf("PostMultipart: %v", err)
	}
	if out.Text != "hello" {
		t.Errorf("text = %q", out.Text)
	}
}

func TestPostMultipartErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "model not loaded")
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	err := c.PostMultipart(context.Background(), "/transcribe", MultipartBody{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status 500") || !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error should carry status and body, got: %v", err)
	}
}
