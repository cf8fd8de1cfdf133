package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/littleyear/iv-engine/internal/database"
	"github.com/littleyear/iv-engine/internal/transcribe"
)

// TranscriptionsHandler triggers pipeline runs and reports their status.
type TranscriptionsHandler struct {
	db            *database.DB
	orchestrator  *transcribe.Orchestrator
	defaultAPIKey string
	runTimeout    time.Duration
	log           zerolog.Logger
}

func NewTranscriptionsHandler(db *database.DB, orch *transcribe.Orchestrator, defaultAPIKey string, runTimeout time.Duration, log zerolog.Logger) *TranscriptionsHandler {
	return &TranscriptionsHandler{
		db:            db,
		orchestrator:  orch,
		defaultAPIKey: defaultAPIKey,
		runTimeout:    runTimeout,
		log:           log,
	}
}

type startTranscriptionRequest struct {
	APIKey string `json:"apiKey"`
}

// Start kicks off a transcription run (or a retry — any terminal status
// re-enters processing). The run proceeds in the background; clients follow
// progress via the status endpoint or the SSE stream.
func (h *TranscriptionsHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := PathString(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req startTranscriptionRequest
	if r.ContentLength > 0 {
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = h.defaultAPIKey
	}
	if apiKey == "" {
		WriteError(w, http.StatusBadRequest, "no speech API key configured")
		return
	}

	iv, err := h.db.GetInterview(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "interview not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, "failed to load interview")
		return
	}
	if iv.VideoKey == "" {
		WriteError(w, http.StatusConflict, "interview has no uploaded video")
		return
	}
	if h.orchestrator.Running(id) {
		WriteError(w, http.StatusConflict, "transcription already in progress")
		return
	}

	// Detached from the request context: the run outlives the HTTP call
	// and always reaches a terminal status or the run timeout.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.runTimeout)
		defer cancel()
		if _, err := h.orchestrator.Run(ctx, iv.ID, iv.VideoKey, iv.QuestionTimestamps, apiKey); err != nil {
			h.log.Warn().Err(err).Str("interview_id", iv.ID).Msg("pipeline run ended with error")
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]string{"status": transcribe.StatusProcessing})
}

// Status returns the persisted pipeline state, raw segments included.
func (h *TranscriptionsHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := PathString(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	iv, err := h.db.GetInterview(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "interview not found")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("load interview")
		WriteError(w, http.StatusInternalServerError, "failed to load interview")
		return
	}
	WriteJSON(w, http.StatusOK, iv.Transcription)
}
