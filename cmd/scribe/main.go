// Command scribe transcribes audio recordings into speaker-attributed SRT
// subtitles. It runs either as a one-shot CLI over a single recording or as
// an HTTP API server over a recording library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/scribe/auth"
	"github.com/skillsenselab/scribe/config"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/diarization/pyannote"
	"github.com/skillsenselab/scribe/library"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/observability"
	"github.com/skillsenselab/scribe/pipeline"
	"github.com/skillsenselab/scribe/server"
	"github.com/skillsenselab/scribe/transcript"
	"github.com/skillsenselab/scribe/transcription"
	"github.com/skillsenselab/scribe/transcription/whisper"
	"github.com/skillsenselab/scribe/transcription/whispercli"
	"github.com/skillsenselab/scribe/version"
)

func main() {
	var (
		serve       bool
		showVersion bool
		configFile  string
		envFile     string

		outPath         string
		model           string
		language        string
		backend         string
		noDiarization   bool
		simDiarization  bool
		segmentDuration float64
		numSpeakers     int
	)

	flag.BoolVar(&serve, "serve", false, "Run the HTTP API server instead of one-shot processing")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.StringVar(&configFile, "config", "", "Config file path (default: auto-discovered config.yml)")
	flag.StringVar(&envFile, "env-file", "", "Env file to load before reading configuration")

	flag.StringVar(&outPath, "o", "", "Output SRT path (default: <audio>.srt next to the recording)")
	flag.StringVar(&model, "model", "", "Transcription model: tiny|base|small|medium|large")
	flag.StringVar(&language, "language", "", "Language hint for the transcription backend")
	flag.StringVar(&backend, "backend", "", "Transcription backend: whisper|whisper-cli")
	flag.BoolVar(&noDiarization, "no-diarization", false, "Transcribe the whole recording as one speaker")
	flag.BoolVar(&simDiarization, "simulate-diarization", false, "Alternate two synthetic speakers on fixed windows")
	flag.Float64Var(&segmentDuration, "segment-duration", 0, "Window length in seconds for simulated diarization")
	flag.IntVar(&numSpeakers, "num-speakers", 0, "Exact speaker count hint for the diarization backend (0 = auto)")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetFullVersion())
		return
	}

	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}
	if cfg.Version == "" {
		cfg.Version = version.GetShortVersion()
	}
	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")

	// CLI flags override configured defaults.
	if model != "" {
		cfg.Pipeline.Model = model
	}
	if language != "" {
		cfg.Pipeline.Language = language
	}
	if backend != "" {
		cfg.Pipeline.Backend = backend
	}
	if segmentDuration > 0 {
		cfg.Pipeline.SegmentDuration = segmentDuration
	}
	if noDiarization {
		cfg.Pipeline.Diarization = "disabled"
	} else if simDiarization {
		cfg.Pipeline.Diarization = "alternating"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	transcriber, err := buildTranscriber(cfg)
	if err != nil {
		log.Fatal("transcription backend", map[string]interface{}{"error": err.Error()})
	}

	if serve {
		runServer(cfg, transcriber, log)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scribe [flags] <audio-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	runOneShot(cfg, transcriber, flag.Arg(0), outPath, numSpeakers, log)
}

func buildTranscriber(cfg *config.Config) (transcription.Provider, error) {
	switch cfg.Pipeline.Backend {
	case whispercli.ProviderName:
		return whispercli.NewProvider(cfg.WhisperCLI), nil
	case whisper.ProviderName:
		return whisper.NewProvider(cfg.Whisper), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Pipeline.Backend)
	}
}

// runOneShot transcribes a single recording and writes the SRT next to it
// (or to -o when given).
func runOneShot(cfg *config.Config, transcriber transcription.Provider, audioPath, outPath string, numSpeakers int, log *logger.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if _, err := os.Stat(audioPath); err != nil {
		log.Fatal("recording not found", map[string]interface{}{logger.FieldFile: audioPath})
	}

	plan, err := resolvePlan(ctx, cfg, audioPath, numSpeakers)
	if err != nil {
		log.Fatal("diarization failed", map[string]interface{}{"error": err.Error()})
	}

	p := pipeline.New(pipeline.Config{
		Model:    cfg.Pipeline.Model,
		Language: cfg.Pipeline.Language,
	}, transcriber)

	started := time.Now()
	document, err := p.ProcessToSRT(ctx, audioPath, plan)
	if err != nil {
		log.Fatal("transcription failed", map[string]interface{}{"error": err.Error()})
	}

	if outPath == "" {
		if err := transcript.Save(audioPath, document); err != nil {
			log.Fatal("saving transcript", map[string]interface{}{"error": err.Error()})
		}
		outPath = transcript.PathFor(audioPath)
	} else if err := os.WriteFile(outPath, []byte(document), 0o644); err != nil {
		log.Fatal("saving transcript", map[string]interface{}{"error": err.Error()})
	}

	log.Info("transcript written", map[string]interface{}{
		logger.FieldFile: outPath,
		"elapsed":        time.Since(started).String(),
	})
}

// resolvePlan builds the segmentation plan for one run, calling the
// diarization backend when configured.
func resolvePlan(ctx context.Context, cfg *config.Config, audioPath string, numSpeakers int) (diarization.Plan, error) {
	switch cfg.Pipeline.Diarization {
	case "pyannote":
		diarizer := pyannote.NewProvider(cfg.Pyannote)
		resp, err := diarizer.Diarize(ctx, diarization.Request{
			AudioPath:   audioPath,
			NumSpeakers: numSpeakers,
			Language:    cfg.Pipeline.Language,
		})
		if err != nil {
			return diarization.Plan{}, err
		}
		return diarization.External(resp.Windows), nil
	case "disabled":
		return diarization.Disabled(), nil
	default:
		return diarization.Alternating(cfg.Pipeline.SegmentDuration), nil
	}
}

// runServer boots the HTTP API and blocks until SIGINT/SIGTERM.
func runServer(cfg *config.Config, transcriber transcription.Provider, log *logger.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var obs *observability.Provider
	if cfg.Observability.Enabled {
		var err error
		obs, err = observability.Init(ctx, observability.Config{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			SampleRate:     cfg.Observability.SampleRate,
		})
		if err != nil {
			log.Fatal("observability init", map[string]interface{}{"error": err.Error()})
		}
	}

	authSvc, err := auth.NewService(cfg.Auth)
	if err != nil {
		log.Fatal("auth init", map[string]interface{}{"error": err.Error()})
	}

	lib, err := library.NewManager(cfg.Library.Dir)
	if err != nil {
		log.Fatal("library init", map[string]interface{}{"error": err.Error()})
	}
	if cleaned, err := lib.CleanupOrphans(); err == nil && cleaned > 0 {
		log.Info("startup cleanup", map[string]interface{}{"orphans_removed": cleaned})
	}

	var diarizer diarization.Provider
	if cfg.Pipeline.Diarization == "pyannote" {
		diarizer = pyannote.NewProvider(cfg.Pyannote)
	}

	api := &server.API{
		ServiceName: cfg.Name,
		Version:     cfg.Version,
		Auth:        authSvc,
		Library:     lib,
		Transcriber: transcriber,
		Diarizer:    diarizer,
		Defaults: server.PipelineDefaults{
			Model:           cfg.Pipeline.Model,
			Language:        cfg.Pipeline.Language,
			Diarization:     cfg.Pipeline.Diarization,
			SegmentDuration: cfg.Pipeline.SegmentDuration,
		},
		MaxUploadBytes: cfg.Library.MaxUploadBytes(),
		RateLimit:      cfg.Server.RateLimit,
	}

	srv := server.New(cfg.Server)
	srv.ApplyMiddleware()
	api.Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		log.Fatal("server start", map[string]interface{}{"error": err.Error()})
	}

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("server stop", map[string]interface{}{"error": err.Error()})
	}
	if obs != nil {
		if err := obs.Shutdown(shutdownCtx); err != nil {
			log.Error("observability shutdown", map[string]interface{}{"error": err.Error()})
		}
	}
}
