package server

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/scribe/auth"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/library"
	"github.com/skillsenselab/scribe/observability"
	"github.com/skillsenselab/scribe/pipeline"
	"github.com/skillsenselab/scribe/provider"
	"github.com/skillsenselab/scribe/server/middleware"
	"github.com/skillsenselab/scribe/srt"
	"github.com/skillsenselab/scribe/transcript"
	"github.com/skillsenselab/scribe/transcription"
	"github.com/skillsenselab/scribe/validation"
)

// PipelineDefaults carries the configured processing defaults applied when a
// request leaves the corresponding field empty.
type PipelineDefaults struct {
	Model           string
	Language        string
	Diarization     string
	SegmentDuration float64
}

// API bundles the service dependencies behind the HTTP routes.
type API struct {
	ServiceName string
	Version     string

	Auth        *auth.Service
	Library     *library.Manager
	Transcriber transcription.Provider
	// Diarizer is the external diarization backend. It may be nil, in
	// which case requests asking for it get a SERVICE_UNAVAILABLE.
	Diarizer diarization.Provider

	Defaults       PipelineDefaults
	MaxUploadBytes int64
	RateLimit      int
}

// Register mounts all routes on the engine. Authentication covers the
// /api/v1 surface except login; /health stays open for probes.
func (a *API) Register(engine *gin.Engine) {
	engine.GET("/health", a.health)

	v1 := engine.Group("/api/v1")
	v1.POST("/auth/login", a.login)

	protected := v1.Group("")
	protected.Use(middleware.Auth(middleware.AuthConfig{
		Disabled: !a.Auth.Enabled(),
		Validator: func(token string) (string, error) {
			claims, err := a.Auth.Verify(token)
			if err != nil {
				return "", err
			}
			return claims.Username, nil
		},
	}))
	protected.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerMinute: a.RateLimit,
		KeyFunc:           middleware.UserBasedKey,
	}))

	protected.GET("/files", a.listFiles)
	protected.POST("/files", a.uploadFile)
	protected.GET("/files/:name", a.getFile)
	protected.DELETE("/files/:name", a.deleteFile)
	protected.POST("/files/:name/process", a.processFile)
	protected.GET("/files/:name/transcript", a.getTranscript)
	protected.GET("/files/:name/turns", a.getTurns)
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func (a *API) health(c *gin.Context) {
	sh := observability.NewServiceHealth(a.ServiceName, a.Version)

	sh.AddComponent(componentHealth(c, "transcription", a.Transcriber))
	if a.Diarizer != nil {
		sh.AddComponent(componentHealth(c, "diarization", a.Diarizer))
	}

	status := http.StatusOK
	if sh.Status == observability.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, sh)
}

func componentHealth(c *gin.Context, name string, p provider.Provider) observability.Health {
	h := observability.Health{
		Name:    name,
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"backend": p.Name()},
	}
	if !p.IsAvailable(c.Request.Context()) {
		h.Status = observability.HealthStatusDown
		h.Message = "backend unreachable"
	}
	return h
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (a *API) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, errors.InvalidInput("body", "malformed JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	token, err := a.Auth.Login(req.Username, req.Password)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, loginResponse{Token: token, Username: req.Username})
}

// ---------------------------------------------------------------------------
// Library
// ---------------------------------------------------------------------------

func (a *API) listFiles(c *gin.Context) {
	files, err := a.Library.List()
	if err != nil {
		RespondWithError(c, err)
		return
	}

	files = library.FilterQuery(files, c.Query("q"))
	sortOption := library.SortOption(c.DefaultQuery("sort", string(library.SortNewest)))
	library.Sort(files, sortOption)

	RespondOK(c, gin.H{"files": files, "count": len(files)})
}

func (a *API) uploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondWithError(c, errors.MissingField("file"))
		return
	}
	if a.MaxUploadBytes > 0 && fileHeader.Size > a.MaxUploadBytes {
		RespondWithError(c, errors.InvalidInput("file", "upload exceeds the size limit"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		RespondWithError(c, err)
		return
	}
	defer src.Close()

	saved, err := a.Library.Save(fileHeader.Filename, src)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// getFile returns a single recording's metadata along with the processing
// time estimate for the configured model and diarization mode.
func (a *API) getFile(c *gin.Context) {
	file, err := a.Library.Get(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	estimate := pipeline.EstimateProcessingTime(
		time.Duration(file.Duration*float64(time.Second)),
		a.Defaults.Model,
		a.Defaults.Diarization == "pyannote",
	)
	RespondOK(c, gin.H{
		"file":              file,
		"estimated_seconds": estimate.Seconds(),
	})
}

func (a *API) deleteFile(c *gin.Context) {
	if err := a.Library.Delete(c.Param("name")); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondNoContent(c)
}

// ---------------------------------------------------------------------------
// Processing
// ---------------------------------------------------------------------------

type processRequest struct {
	Model           string  `json:"model" validate:"omitempty,oneof=tiny base small medium large"`
	Language        string  `json:"language"`
	Diarization     string  `json:"diarization" validate:"omitempty,oneof=pyannote alternating disabled"`
	SegmentDuration float64 `json:"segment_duration" validate:"omitempty,gt=0"`
	NumSpeakers     int     `json:"num_speakers" validate:"omitempty,gte=0"`
}

type processResponse struct {
	File             string  `json:"file"`
	Transcript       string  `json:"transcript"`
	Cues             int     `json:"cues"`
	Model            string  `json:"model"`
	Diarization      string  `json:"diarization"`
	EstimatedSeconds float64 `json:"estimated_seconds"`
	ElapsedSeconds   float64 `json:"elapsed_seconds"`
}

func (a *API) processFile(c *gin.Context) {
	// Every field is optional; a bodyless POST runs with the configured defaults.
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		RespondWithError(c, errors.InvalidInput("body", "malformed JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	file, err := a.Library.Get(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	if req.Model == "" {
		req.Model = a.Defaults.Model
	}
	if req.Language == "" {
		req.Language = a.Defaults.Language
	}
	if req.Diarization == "" {
		req.Diarization = a.Defaults.Diarization
	}
	if req.SegmentDuration == 0 {
		req.SegmentDuration = a.Defaults.SegmentDuration
	}

	plan, err := a.buildPlan(c, file.Path, req)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	estimate := pipeline.EstimateProcessingTime(
		time.Duration(file.Duration*float64(time.Second)),
		req.Model,
		req.Diarization == "pyannote",
	)

	p := pipeline.New(pipeline.Config{
		Model:    req.Model,
		Language: req.Language,
	}, a.Transcriber)

	started := time.Now()
	document, err := p.ProcessToSRT(c.Request.Context(), file.Path, plan)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if err := transcript.Save(file.Path, document); err != nil {
		RespondWithError(c, err)
		return
	}

	RespondOK(c, processResponse{
		File:             file.Name,
		Transcript:       transcript.PathFor(file.Name),
		Cues:             len(srt.Decode(document)),
		Model:            req.Model,
		Diarization:      req.Diarization,
		EstimatedSeconds: estimate.Seconds(),
		ElapsedSeconds:   time.Since(started).Seconds(),
	})
}

// buildPlan resolves the segmentation mode for one processing run.
func (a *API) buildPlan(c *gin.Context, audioPath string, req processRequest) (diarization.Plan, error) {
	switch req.Diarization {
	case "pyannote":
		if a.Diarizer == nil {
			return diarization.Plan{}, errors.ServiceUnavailable("diarization")
		}
		resp, err := a.Diarizer.Diarize(c.Request.Context(), diarization.Request{
			AudioPath:   audioPath,
			NumSpeakers: req.NumSpeakers,
			Language:    req.Language,
		})
		if err != nil {
			return diarization.Plan{}, err
		}
		return diarization.External(resp.Windows), nil
	case "disabled":
		return diarization.Disabled(), nil
	default:
		return diarization.Alternating(req.SegmentDuration), nil
	}
}

// ---------------------------------------------------------------------------
// Transcripts
// ---------------------------------------------------------------------------

func (a *API) getTranscript(c *gin.Context) {
	file, err := a.Library.Get(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	if c.Query("format") == "json" {
		cues, err := transcript.Load(file.Path)
		if err != nil {
			RespondWithError(c, err)
			return
		}
		RespondOK(c, gin.H{"cues": cues, "count": len(cues)})
		return
	}

	path := transcript.PathFor(file.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			RespondWithError(c, errors.NotFound("transcript", file.Name))
			return
		}
		RespondWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/x-subrip", data)
}

type turnResponse struct {
	Speaker    string   `json:"speaker"`
	SpeakerID  string   `json:"speaker_id"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Texts      []string `json:"texts"`
	CueIndices []int    `json:"cue_indices"`
}

func (a *API) getTurns(c *gin.Context) {
	file, err := a.Library.Get(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	turns, err := transcript.LoadTurns(file.Path)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	out := make([]turnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, turnResponse{
			Speaker:    t.DisplayName(),
			SpeakerID:  t.SpeakerID,
			Start:      t.Start,
			End:        t.End,
			Texts:      t.Texts,
			CueIndices: t.CueIndices,
		})
	}
	RespondOK(c, gin.H{"turns": out, "count": len(out)})
}
