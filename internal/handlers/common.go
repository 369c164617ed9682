package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check all dependencies
	checks := map[string]bool{
		"postgres": h.pg.Ping(ctx) == nil,
		"redis":    h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps the error taxonomy onto HTTP responses. Validation
// errors carry their actionable payload; upstream faults pass their status
// through with a generic message so storage details never leak.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	if ve, ok := models.AsValidationError(err); ok {
		h.jsonResponse(w, http.StatusBadRequest, map[string]interface{}{
			"error":           ve.Message,
			"field":           ve.Field,
			"validSortFields": ve.ValidKeys,
		})
		return
	}
	if ue, ok := models.AsUpstreamError(err); ok {
		h.logger.Errorw("Upstream failure", "status", ue.Status, "error", err)
		status := ue.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		h.errorResponse(w, status, ue.Message)
		return
	}
	h.logger.Errorw("Unhandled service error", "error", err)
	h.errorResponse(w, http.StatusInternalServerError, "Internal error")
}
