// Package whispercli implements transcription.Provider by shelling out to
// a local faster-whisper helper binary. The helper receives the audio path
// and model flags and prints a JSON transcript on stdout.
package whispercli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/process"
	"github.com/skillsenselab/scribe/provider"
	"github.com/skillsenselab/scribe/transcription"
)

const (
	// ProviderName is the registered name for the local Whisper CLI provider.
	ProviderName = "whisper-cli"

	defaultBinary  = "faster-whisper"
	defaultModel   = "base"
	defaultDevice  = "auto"
	defaultTimeout = 600 * time.Second
)

// Config holds configuration for the Whisper CLI transcription provider.
type Config struct {
	// Binary is the helper executable. Resolved via PATH if not absolute.
	Binary string `json:"binary" yaml:"binary"`
	// Model is the default model name passed to the helper.
	Model string `json:"model" yaml:"model"`
	// Device selects the compute device (auto, cpu, cuda).
	Device string `json:"device,omitempty" yaml:"device"`
	// Language is the default language hint.
	Language string `json:"language,omitempty" yaml:"language"`
	// Timeout bounds a single transcription run.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements transcription.Provider via a local helper process.
type Provider struct {
	cfg Config
}

// NewProvider creates a new Whisper CLI transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Device == "" {
		cfg.Device = defaultDevice
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{cfg: cfg}
}

// Factory returns a provider.Factory that creates Whisper CLI Provider
// instances from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["binary"].(string); ok {
			wc.Binary = v
		}
		if v, ok := cfg["model"].(string); ok {
			wc.Model = v
		}
		if v, ok := cfg["device"].(string); ok {
			wc.Device = v
		}
		if v, ok := cfg["language"].(string); ok {
			wc.Language = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		return NewProvider(wc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the helper binary resolves.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return process.LookPath(p.cfg.Binary)
}

// Transcribe writes the audio payload to a temp file, runs the helper and
// parses its JSON output.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	if len(req.Audio) == 0 {
		return nil, fmt.Errorf("whispercli: empty audio payload")
	}

	tmp, err := os.CreateTemp("", "scribe-window-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create temp audio: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(req.Audio); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp audio: %w", err)
	}

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	args := []string{
		"--audio", tmpPath,
		"--model", model,
		"--device", p.cfg.Device,
	}
	if lang != "" {
		args = append(args, "--language", lang)
	}

	runCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	result, err := process.Run(runCtx, process.Command{
		Binary: p.cfg.Binary,
		Args:   args,
	})
	if err != nil {
		diag := strings.TrimSpace(string(result.Stderr))
		if diag == "" {
			diag = err.Error()
		}
		return nil, errors.BackendFailure(ProviderName, diag)
	}

	var parsed cliOutput
	if err := json.Unmarshal(result.Stdout, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s output: %w", filepath.Base(p.cfg.Binary), err)
	}

	return toResponse(&parsed), nil
}

// --- helper output types ---

type cliOutput struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func toResponse(out *cliOutput) *transcription.Response {
	resp := &transcription.Response{
		Text:     out.Text,
		Language: out.Language,
		Duration: out.Duration,
	}
	var full []string
	for _, s := range out.Segments {
		text := strings.TrimSpace(s.Text)
		resp.Segments = append(resp.Segments, transcription.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  text,
		})
		if text != "" {
			full = append(full, text)
		}
	}
	if resp.Text == "" {
		resp.Text = strings.Join(full, " ")
	}
	return resp
}
