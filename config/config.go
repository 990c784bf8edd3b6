package config

import (
	"fmt"

	"github.com/skillsenselab/scribe/auth"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/diarization/pyannote"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/server"
	"github.com/skillsenselab/scribe/transcription/whisper"
	"github.com/skillsenselab/scribe/transcription/whispercli"
	"github.com/skillsenselab/scribe/util"
)

// ServiceName is the canonical service identifier used for config file
// discovery and log tagging.
const ServiceName = "scribe"

// Config gathers every configuration section of the service.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`

	Library       LibraryConfig       `yaml:"library" mapstructure:"library"`
	Pipeline      PipelineConfig      `yaml:"pipeline" mapstructure:"pipeline"`
	Whisper       whisper.Config      `yaml:"whisper" mapstructure:"whisper"`
	WhisperCLI    whispercli.Config   `yaml:"whisper_cli" mapstructure:"whisper_cli"`
	Pyannote      pyannote.Config     `yaml:"pyannote" mapstructure:"pyannote"`
	Auth          auth.Config         `yaml:"auth" mapstructure:"auth"`
	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// LibraryConfig configures the recording library.
type LibraryConfig struct {
	// Dir is the upload directory for recordings.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// MaxUploadSize bounds a single upload, e.g. "50MB".
	MaxUploadSize string `yaml:"max_upload_size" mapstructure:"max_upload_size"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (c LibraryConfig) MaxUploadBytes() int64 {
	return util.ParseSize(c.MaxUploadSize, 50*1024*1024)
}

// PipelineConfig configures the transcription pipeline.
type PipelineConfig struct {
	// Backend selects the transcription provider (whisper, whisper-cli).
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Model is the default transcription model.
	Model string `yaml:"model" mapstructure:"model"`
	// Language is the default language hint.
	Language string `yaml:"language" mapstructure:"language"`
	// Diarization selects the default segmentation mode
	// (pyannote, alternating, disabled).
	Diarization string `yaml:"diarization" mapstructure:"diarization"`
	// SegmentDuration is the window length in seconds for the
	// alternating mode.
	SegmentDuration float64 `yaml:"segment_duration" mapstructure:"segment_duration"`
}

// ObservabilityConfig configures tracing and metrics export.
type ObservabilityConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Load reads the service configuration and applies defaults.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields with working development values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()

	if c.Library.Dir == "" {
		c.Library.Dir = "./uploads"
	}
	if c.Library.MaxUploadSize == "" {
		c.Library.MaxUploadSize = "50MB"
	}

	if c.Pipeline.Backend == "" {
		c.Pipeline.Backend = "whisper"
	}
	if c.Pipeline.Model == "" {
		c.Pipeline.Model = "base"
	}
	if c.Pipeline.Diarization == "" {
		c.Pipeline.Diarization = "alternating"
	}
	if c.Pipeline.SegmentDuration == 0 {
		c.Pipeline.SegmentDuration = diarization.DefaultSegmentDuration
	}

	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}

	c.Server.ApplyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	if !util.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config: environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config: logging: %w", err)
	}

	validBackends := []string{"whisper", "whisper-cli"}
	if !util.Contains(validBackends, c.Pipeline.Backend) {
		return fmt.Errorf("config: pipeline.backend must be one of %v (got: %s)", validBackends, c.Pipeline.Backend)
	}
	validDiarization := []string{"pyannote", "alternating", "disabled"}
	if !util.Contains(validDiarization, c.Pipeline.Diarization) {
		return fmt.Errorf("config: pipeline.diarization must be one of %v (got: %s)", validDiarization, c.Pipeline.Diarization)
	}
	if c.Pipeline.SegmentDuration < 0 {
		return fmt.Errorf("config: pipeline.segment_duration must be positive (got: %v)", c.Pipeline.SegmentDuration)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
