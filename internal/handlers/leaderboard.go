package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// GetLeaderboard returns the full ranked leaderboard
// @Summary Global Leaderboard
// @Description Ranked players by totalScore, gamesPlayed, avgPointsPerGame or winRate
// @Tags Leaderboards
// @Produce json
// @Param sortKey query string false "Sort key" default(totalScore)
// @Param sortDirection query string false "ascending or descending" default(descending)
// @Success 200 {object} map[string]interface{} "Leaderboard"
// @Failure 400 {object} map[string]interface{} "Invalid sort key"
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sortKey := r.URL.Query().Get("sortKey")
	if sortKey == "" {
		sortKey = models.SortByTotalScore
	}
	sortDirection := r.URL.Query().Get("sortDirection")

	entries, err := h.leaderboard.GetLeaderboard(ctx, sortKey, sortDirection)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
		"sortKey": sortKey,
	})
}

// GetTopN returns the fixed summary view: top n players by total score
// @Summary Top-N Players
// @Tags Leaderboards
// @Produce json
// @Param n path int true "Number of entries"
// @Success 200 {array} models.RankedEntry
// @Router /leaderboard/top/{n} [get]
func (h *Handler) GetTopN(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 0 {
		h.errorResponse(w, http.StatusBadRequest, "n must be a non-negative integer")
		return
	}

	entries, svcErr := h.leaderboard.GetTopN(r.Context(), n)
	if svcErr != nil {
		h.serviceError(w, svcErr)
		return
	}

	h.jsonResponse(w, http.StatusOK, entries)
}

// GetScores returns the raw match history with display names merged in
// @Summary Score History
// @Tags Scores
// @Produce json
// @Param player_ref query string false "Filter by player"
// @Param won query bool false "Filter by outcome"
// @Param since query string false "RFC3339 lower bound"
// @Param limit query int false "Max records"
// @Success 200 {array} models.NamedScoreRecord
// @Router /scores [get]
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	filter := models.ScoreFilter{
		PlayerRef: r.URL.Query().Get("player_ref"),
	}
	if v := r.URL.Query().Get("won"); v != "" {
		won, err := strconv.ParseBool(v)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "won must be a boolean")
			return
		}
		filter.Won = &won
	}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		filter.Since = since
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}

	records, err := h.leaderboard.GetAllScoresWithNames(r.Context(), filter)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, records)
}

// GetSummary returns the platform dashboard totals
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.GetPlatformSummary(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}
