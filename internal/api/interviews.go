package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/littleyear/iv-engine/internal/catalog"
	"github.com/littleyear/iv-engine/internal/database"
	"github.com/littleyear/iv-engine/internal/enrich"
	"github.com/littleyear/iv-engine/internal/media"
	"github.com/littleyear/iv-engine/internal/spotify"
	"github.com/littleyear/iv-engine/internal/transcribe"
)

// InterviewsHandler serves interview records, video upload, answer edits,
// enrichment, and the song lookup.
type InterviewsHandler struct {
	db      *database.DB
	media   media.Store
	spotify *spotify.Client

	// Token cache for the song lookup, owned here and guarded for
	// concurrent requests.
	cacheMu    sync.Mutex
	tokenCache spotify.TokenCache
}

func NewInterviewsHandler(db *database.DB, store media.Store, sp *spotify.Client) *InterviewsHandler {
	return &InterviewsHandler{db: db, media: store, spotify: sp}
}

type createInterviewRequest struct {
	ID                 string                         `json:"id"`
	ChildName          string                         `json:"childName"`
	RecordedAt         *time.Time                     `json:"recordedAt"`
	QuestionTimestamps []transcribe.QuestionTimestamp `json:"questionTimestamps"`
}

func (h *InterviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, ts := range req.QuestionTimestamps {
		if _, ok := catalog.ByID(ts.QuestionID); !ok {
			WriteError(w, http.StatusBadRequest, "unknown question id: "+ts.QuestionID)
			return
		}
	}

	iv := &database.Interview{
		ID:                 req.ID,
		ChildName:          req.ChildName,
		RecordedAt:         req.RecordedAt,
		QuestionTimestamps: req.QuestionTimestamps,
	}
	if err := h.db.CreateInterview(r.Context(), iv); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create interview")
		WriteError(w, http.StatusInternalServerError, "failed to create interview")
		return
	}
	WriteJSON(w, http.StatusCreated, iv)
}

func (h *InterviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := ParsePagination(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	interviews, err := h.db.ListInterviews(r.Context(), p.Limit, p.Offset)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list interviews")
		WriteError(w, http.StatusInternalServerError, "failed to list interviews")
		return
	}
	if interviews == nil {
		interviews = []*database.Interview{}
	}
	WriteJSON(w, http.StatusOK, interviews)
}

func (h *InterviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	iv, ok := h.loadInterview(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, iv)
}

// UploadVideo streams the request body into the media store and records
// the video key. The body is opaque; the 25 MiB transcription ceiling is
// enforced later, at transcription time, from stored metadata.
func (h *InterviewsHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	id, err := PathString(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.db.GetInterview(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "interview not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, "failed to load interview")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	key := id + videoExtension(contentType)

	if err := h.media.Save(r.Context(), key, r.Body, contentType); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("key", key).Msg("save video")
		WriteError(w, http.StatusInternalServerError, "failed to store video")
		return
	}
	if err := h.db.SetVideoKey(r.Context(), id, key); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to record video key")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"videoKey": key})
}

type editAnswerRequest struct {
	Text string `json:"text"`
}

// EditAnswer writes a manual correction for one question. Edits patch the
// answers map independently of transcription status, and a later successful
// retranscription will overwrite them.
func (h *InterviewsHandler) EditAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := PathString(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	questionID, err := PathString(r, "questionId")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := catalog.ByID(questionID); !ok {
		WriteError(w, http.StatusNotFound, "unknown question id")
		return
	}

	var req editAnswerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now().UTC()
	rec := transcribe.AnswerRecord{
		Text:     strings.TrimSpace(req.Text),
		Source:   transcribe.SourceEdited,
		EditedAt: &now,
	}
	if err := h.db.UpdateAnswer(r.Context(), id, questionID, rec); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "interview not found")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("edit answer")
		WriteError(w, http.StatusInternalServerError, "failed to update answer")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]transcribe.AnswerRecord{questionID: rec})
}

// Enrichment computes display metadata for every enrichable answered
// question. Always computed fresh; nothing is stored.
func (h *InterviewsHandler) Enrichment(w http.ResponseWriter, r *http.Request) {
	iv, ok := h.loadInterview(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, enrich.EnrichInterview(iv.Answers, catalog.Questions))
}

// Song looks up the favorite-song answer on Spotify.
func (h *InterviewsHandler) Song(w http.ResponseWriter, r *http.Request) {
	if h.spotify == nil || !h.spotify.Enabled() {
		WriteError(w, http.StatusServiceUnavailable, "spotify lookup not configured")
		return
	}
	iv, ok := h.loadInterview(w, r)
	if !ok {
		return
	}
	answer, ok := iv.Answers["favoriteSong"]
	if !ok || answer.Text == "" {
		WriteError(w, http.StatusNotFound, "no song answer recorded")
		return
	}

	h.cacheMu.Lock()
	track, err := h.spotify.SearchSong(r.Context(), &h.tokenCache, answer.Text)
	h.cacheMu.Unlock()
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("spotify lookup failed")
		WriteError(w, http.StatusBadGateway, "song lookup failed")
		return
	}
	if track == nil {
		WriteError(w, http.StatusNotFound, "no matching track")
		return
	}
	WriteJSON(w, http.StatusOK, track)
}

func (h *InterviewsHandler) loadInterview(w http.ResponseWriter, r *http.Request) (*database.Interview, bool) {
	id, err := PathString(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	iv, err := h.db.GetInterview(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "interview not found")
			return nil, false
		}
		hlog.FromRequest(r).Error().Err(err).Msg("load interview")
		WriteError(w, http.StatusInternalServerError, "failed to load interview")
		return nil, false
	}
	return iv, true
}

func videoExtension(contentType string) string {
	switch contentType {
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	default:
		return ".mp4"
	}
}
