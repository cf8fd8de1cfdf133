package api

import (
	"net/http"
	"time"

	"github.com/littleyear/iv-engine/internal/database"
	"github.com/littleyear/iv-engine/internal/media"
)

type HealthHandler struct {
	db        *database.DB
	media     media.Store
	version   string
	startTime time.Time
}

func NewHealthHandler(db *database.DB, store media.Store, version string, startTime time.Time) *HealthHandler {
	return &HealthHandler{db: db, media: store, version: version, startTime: startTime}
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Database      string `json:"database"`
	MediaBackend  string `json:"media_backend"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Database:      "ok",
		MediaBackend:  h.media.Type(),
	}

	status := http.StatusOK
	if err := h.db.HealthCheck(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, status, resp)
}
