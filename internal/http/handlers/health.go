package handlers

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes, optionally checking the database.
type HealthHandler struct {
	db pinger
}

// NewHealthHandler creates the handler. db may be nil when the service runs
// without Postgres (local smoke tests).
func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports service health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"db":     "unreachable",
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
