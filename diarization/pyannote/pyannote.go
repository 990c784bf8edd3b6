// Package pyannote implements diarization.Provider against the Pyannote
// HTTP sidecar service.
package pyannote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/httpclient"
	"github.com/skillsenselab/scribe/provider"
)

const (
	// ProviderName is the registered name for the Pyannote provider.
	ProviderName = "pyannote"

	defaultPyannoteURL     = "http://localhost:8388"
	defaultPyannoteTimeout = 300 * time.Second
)

// Config holds configuration for the Pyannote diarization provider.
type Config struct {
	BaseURL string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements diarization.Provider using the Pyannote HTTP sidecar.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new Pyannote diarization provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPyannoteURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPyannoteTimeout
	}
	return &Provider{
		cfg:    cfg,
		client: httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}),
	}
}

// Factory returns a provider.Factory that creates Pyannote Provider
// instances from a generic config map.
func Factory() provider.Factory[diarization.Provider] {
	return func(cfg map[string]any) (diarization.Provider, error) {
		pc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			pc.BaseURL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			pc.Timeout = v
		}
		return NewProvider(pc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Pyannote sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.client.Healthy(ctx, "/health")
}

// Diarize sends audio to the Pyannote sidecar and returns speaker windows.
func (p *Provider) Diarize(ctx context.Context, req diarization.Request) (*diarization.Response, error) {
	audioData, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	fields := make(map[string]string)
	if req.NumSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(req.NumSpeakers)
	}
	if req.MinSpeakers > 0 {
		fields["min_speakers"] = strconv.Itoa(req.MinSpeakers)
	}
	if req.MaxSpeakers > 0 {
		fields["max_speakers"] = strconv.Itoa(req.MaxSpeakers)
	}
	if req.Language != "" {
		fields["language"] = req.Language
	}

	var result pyannoteResponse
	err = p.client.PostMultipart(ctx, "/diarize", httpclient.MultipartBody{
		Fields: fields,
		Files: []httpclient.FileField{
			{FieldName: "audio", FileName: filepath.Base(req.AudioPath), ContentType: "audio/wav", Data: audioData},
		},
	}, &result)
	if err != nil {
		return nil, errors.BackendFailure(ProviderName, err.Error())
	}

	if result.Error != "" {
		return nil, errors.BackendFailure(ProviderName, result.Error)
	}

	return toResponse(&result), nil
}

// --- internal Pyannote API types ---

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func toResponse(resp *pyannoteResponse) *diarization.Response {
	windows := make([]diarization.Window, len(resp.Segments))
	for i, seg := range resp.Segments {
		windows[i] = diarization.Window{
			Speaker: seg.SpeakerID,
			Start:   seg.StartTime,
			End:     seg.EndTime,
		}
	}
	return &diarization.Response{
		Windows:     windows,
		NumSpeakers: resp.NumSpeakers,
	}
}
