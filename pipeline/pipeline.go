package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skillsenselab/scribe/audio"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/srt"
	"github.com/skillsenselab/scribe/transcription"
)

const instrumentationName = "github.com/skillsenselab/scribe/pipeline"

// Config holds pipeline configuration.
type Config struct {
	// Model is the transcription model passed to the backend.
	Model string
	// Language is the language hint passed to the backend.
	Language string
}

// Pipeline runs the windowed transcription flow against one backend.
type Pipeline struct {
	cfg         Config
	transcriber transcription.Provider
	log         *logger.Logger

	windowsTranscribed metric.Int64Counter
	windowsDropped     metric.Int64Counter
}

// New creates a Pipeline using the given transcription backend.
func New(cfg Config, transcriber transcription.Provider) *Pipeline {
	meter := otel.Meter(instrumentationName)
	transcribed, _ := meter.Int64Counter("scribe.pipeline.windows_transcribed",
		metric.WithDescription("Speaker windows that produced transcript text"))
	dropped, _ := meter.Int64Counter("scribe.pipeline.windows_dropped",
		metric.WithDescription("Speaker windows dropped for empty transcription"))

	return &Pipeline{
		cfg:                cfg,
		transcriber:        transcriber,
		log:                logger.WithComponent("pipeline"),
		windowsTranscribed: transcribed,
		windowsDropped:     dropped,
	}
}

// Process transcribes the recording at audioPath window by window according
// to plan and returns the assembled cues, densely renumbered from 1.
//
// A backend failure aborts the whole run; no partial result is returned.
// Windows whose transcription comes back empty are dropped.
func (p *Pipeline) Process(ctx context.Context, audioPath string, plan diarization.Plan) ([]srt.Cue, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "pipeline.Process")
	defer span.End()

	reader, err := audio.Open(audioPath)
	if err != nil {
		return nil, err
	}

	duration := reader.Duration()
	windows, err := plan.Windows(duration)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("audio.duration_seconds", duration),
		attribute.Int("pipeline.windows", len(windows)),
	)

	p.log.Info("starting transcription", map[string]interface{}{
		logger.FieldFile: audioPath,
		"duration":       duration,
		"windows":        len(windows),
		logger.FieldBackend: p.transcriber.Name(),
	})

	var cues []srt.Cue
	for i, w := range windows {
		if w.Start >= duration {
			p.log.Warn("skipping window past end of recording", map[string]interface{}{
				"window":            i,
				logger.FieldSpeaker: w.Speaker,
				"start":             w.Start,
			})
			continue
		}

		payload, err := reader.SliceWAV(w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("slice window %d [%.3f, %.3f): %w", i, w.Start, w.End, err)
		}

		resp, err := p.transcriber.Transcribe(ctx, transcription.Request{
			Audio:    payload,
			Filename: fmt.Sprintf("window_%03d.wav", i),
			Model:    p.cfg.Model,
			Language: p.cfg.Language,
		})
		if err != nil {
			p.log.Error("transcription backend failed", map[string]interface{}{
				"window":            i,
				logger.FieldBackend: p.transcriber.Name(),
				"error":             err.Error(),
			})
			if errors.IsAppError(err) {
				return nil, err
			}
			return nil, errors.BackendFailure(p.transcriber.Name(), err.Error())
		}

		text := strings.TrimSpace(resp.Text)
		if text == "" {
			p.windowsDropped.Add(ctx, 1)
			p.log.Debug("dropping silent window", map[string]interface{}{
				"window":            i,
				logger.FieldSpeaker: w.Speaker,
			})
			continue
		}

		p.windowsTranscribed.Add(ctx, 1)
		cues = append(cues, srt.Cue{
			Index:     len(cues) + 1,
			Start:     w.Start,
			End:       w.End,
			SpeakerID: w.Speaker,
			Text:      text,
		})
	}

	p.log.Info("transcription complete", map[string]interface{}{
		logger.FieldFile: audioPath,
		"cues":           len(cues),
	})
	return cues, nil
}

// ProcessToSRT runs Process and renders the cues as an SRT document.
func (p *Pipeline) ProcessToSRT(ctx context.Context, audioPath string, plan diarization.Plan) (string, error) {
	cues, err := p.Process(ctx, audioPath, plan)
	if err != nil {
		return "", err
	}
	return srt.Encode(cues), nil
}
