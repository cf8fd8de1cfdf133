package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/littleyear/iv-engine/internal/catalog"
	"github.com/littleyear/iv-engine/internal/config"
	"github.com/littleyear/iv-engine/internal/database"
	"github.com/littleyear/iv-engine/internal/events"
	"github.com/littleyear/iv-engine/internal/media"
	"github.com/littleyear/iv-engine/internal/metrics"
	"github.com/littleyear/iv-engine/internal/spotify"
	"github.com/littleyear/iv-engine/internal/transcribe"
)

type Server struct {
	http *http.Server
	log  zerolog.Logger
}

func NewServer(cfg *config.Config, db *database.DB, store media.Store, orch *transcribe.Orchestrator, bus *events.Bus, sp *spotify.Client, version string, startTime time.Time, log zerolog.Logger) *Server {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(CORS)
	r.Use(Logger(log))
	r.Use(metrics.InstrumentHandler)

	health := NewHealthHandler(db, store, version, startTime)
	r.Get("/api/v1/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	interviews := NewInterviewsHandler(db, store, sp)
	// The trigger handler gets extra headroom beyond the client's own
	// upload timeout so the failure path can still persist.
	transcriptions := NewTranscriptionsHandler(db, orch, cfg.OpenAIAPIKey,
		cfg.WhisperTimeout+30*time.Second, log.With().Str("component", "pipeline").Logger())
	sse := NewEventsHandler(bus)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(cfg.AuthToken))

		r.Get("/api/v1/questions", func(w http.ResponseWriter, r *http.Request) {
			WriteJSON(w, http.StatusOK, catalog.Questions)
		})

		r.Route("/api/v1/interviews", func(r chi.Router) {
			r.Post("/", interviews.Create)
			r.Get("/", interviews.List)
			r.Get("/{id}", interviews.Get)
			r.Put("/{id}/video", interviews.UploadVideo)
			r.Post("/{id}/transcribe", transcriptions.Start)
			r.Get("/{id}/transcription", transcriptions.Status)
			r.Patch("/{id}/answers/{questionId}", interviews.EditAnswer)
			r.Get("/{id}/enrichment", interviews.Enrichment)
			r.Get("/{id}/song", interviews.Song)
		})

		r.Get("/api/v1/events", sse.StreamEvents)
	})

	return &Server{
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server starting")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.http.Shutdown(ctx)
}
