package util

import "testing"

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.00 MB"},
		{5*1024*1024 + 256*1024, "5.25 MB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{59.9, "59s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{3600, "1h 0m 0s"},
		{3725, "1h 2m 5s"},
		{-1, "-"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"2GB", 2 * 1024 * 1024 * 1024},
		{"1.5GB", 3 * 512 * 1024 * 1024},
		{"100", 100},
		{" 5mb ", 5 * 1024 * 1024},
		{"", 42},
		{"garbage", 42},
	}
	for _, tt := range tests {
		if got := ParseSize(tt.in, 42); got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("supersecretvalue", 4); got != "supe***" {
		t.Errorf("MaskSecret = %q", got)
	}
	if got := MaskSecret("ab", 4); got != "***" {
		t.Errorf("short secret = %q", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{".wav", ".mp3"}, ".wav") {
		t.Error("expected .wav to be found")
	}
	if Contains([]string{".wav"}, ".flac") {
		t.Error(".flac should not be found")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "fallback", "later"); got != "fallback" {
		t.Errorf("Coalesce = %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("all-zero Coalesce = %d", got)
	}
}
