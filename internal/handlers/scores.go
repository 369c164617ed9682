package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// RecordScore handles POST /api/v1/scores
// @Summary Record a match result
// @Tags Scores
// @Accept json
// @Produce json
// @Param body body models.RecordScoreRequest true "Score"
// @Success 201 {object} models.ScoreRecord
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /scores [post]
func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var req models.RecordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "player_ref is required and points must be >= 0")
		return
	}

	rec, err := h.scores.Insert(r.Context(), req.PlayerRef, req.Points, req.Won)
	if err != nil {
		h.logger.Errorw("Failed to insert score", "player", req.PlayerRef, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to store score")
		return
	}

	h.jsonResponse(w, http.StatusCreated, rec)
}

// CorrectScore handles PATCH /api/v1/scores/{playerRef}. Corrections apply
// to the player's most recent record, not normal play.
func (h *Handler) CorrectScore(w http.ResponseWriter, r *http.Request) {
	playerRef := chi.URLParam(r, "playerRef")
	if playerRef == "" {
		h.errorResponse(w, http.StatusBadRequest, "playerRef is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var req models.CorrectScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "points must be >= 0")
		return
	}

	rec, err := h.scores.UpdateByPlayer(r.Context(), playerRef, models.ScoreUpdate{
		Points: req.Points,
		Won:    req.Won,
	})
	if err != nil {
		if errors.Is(err, models.ErrScoreNotFound) {
			h.errorResponse(w, http.StatusNotFound, "No score records for player")
			return
		}
		if _, ok := models.AsValidationError(err); ok {
			h.serviceError(w, err)
			return
		}
		h.logger.Errorw("Failed to update score", "player", playerRef, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to update score")
		return
	}

	h.jsonResponse(w, http.StatusOK, rec)
}
