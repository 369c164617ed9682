package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetQuestions serves cached questions for a category. Readers may observe
// a category mid-refresh; the cache is eventually consistent.
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		h.errorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	n := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}

	questions, err := h.questions.GetQuestions(r.Context(), category, n)
	if err != nil {
		h.logger.Errorw("Failed to read question cache", "category", category, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to read questions")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"category":  category,
		"questions": questions,
		"count":     len(questions),
	})
}

// TriggerRefresh handles POST /api/v1/admin/refresh, bypassing the clock
// gate. The cycle runs in the background; the response only acknowledges.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	go h.refresher.RunCycleNow()
	h.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}
