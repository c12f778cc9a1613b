package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything that can report backend liveness
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the banner and liveness endpoints
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a health handler over the database pool
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root serves the API banner
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "AI Marketing API is running!",
	})
}

// Healthz reports service health including database reachability
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
