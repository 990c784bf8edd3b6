package validation

import (
	"strings"
	"testing"

	"github.com/skillsenselab/scribe/errors"
)

func TestValidatorCollectsErrors(t *testing.T) {
	v := New().
		Required("filename", "").
		Positive("segment_duration", -1).
		OneOf("model", "huge", []string{"tiny", "base", "small", "medium", "large"})

	if !v.HasErrors() {
		t.Fatal("expected errors")
	}
	if len(v.Errors()) != 3 {
		t.Fatalf("got %d errors, want 3", len(v.Errors()))
	}

	err := v.Validate()
	if err == nil {
		t.Fatal("Validate should return an error")
	}
	if err.Code != errors.ErrCodeInvalidInput {
		t.Errorf("code = %s", err.Code)
	}
	if !strings.Contains(err.Message, "filename") || !strings.Contains(err.Message, "model") {
		t.Errorf("message missing fields: %s", err.Message)
	}
}

func TestValidatorPasses(t *testing.T) {
	v := New().
		Required("filename", "meeting.wav").
		Positive("segment_duration", 10).
		OneOf("model", "base", []string{"tiny", "base"}).
		Range("num_speakers", 2, 1, 10).
		MaxLength("filename", "meeting.wav", 255)

	if v.HasErrors() {
		t.Errorf("unexpected errors: %v", v.Errors())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRequiredHelper(t *testing.T) {
	if err := Required("name", "value"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Required("name", "   "); err == nil {
		t.Error("whitespace-only value should fail")
	}
}

type processRequest struct {
	Filename        string  `json:"filename" validate:"required"`
	Model           string  `json:"model" validate:"omitempty,oneof=tiny base small medium large"`
	SegmentDuration float64 `json:"segment_duration" validate:"omitempty,gt=0"`
}

func TestStructValidate(t *testing.T) {
	if err := Validate(processRequest{Filename: "a.wav", Model: "base", SegmentDuration: 10}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
	if err := Validate(processRequest{Filename: "a.wav"}); err != nil {
		t.Errorf("omitempty fields rejected: %v", err)
	}

	err := Validate(processRequest{Model: "huge", SegmentDuration: -2})
	if err == nil {
		t.Fatal("invalid struct accepted")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("not an AppError: %v", err)
	}
	msg := appErr.Message
	for _, want := range []string{"filename", "model", "segment_duration"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q: %s", want, msg)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Filename", "filename"},
		{"SegmentDuration", "segment_duration"},
		{"NumSpeakers", "num_speakers"},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
