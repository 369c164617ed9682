package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/openquiz/leaderboard-api/internal/models"
)

func newTestHandler(cfg Config) *Handler {
	cfg.Logger = zap.NewNop()
	return New(cfg)
}

// Tests

func TestGetLeaderboard_TableDriven(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockFunc       func(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error)
		expectedStatus int
		checkBody      func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "default sort key",
			url:  "/api/v1/leaderboard",
			mockFunc: func(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error) {
				if sortKey != models.SortByTotalScore {
					t.Errorf("Expected default sortKey totalScore, got %s", sortKey)
				}
				return []models.RankedEntry{
					{Rank: 0, DisplayName: "Alice", PlayerAggregate: models.PlayerAggregate{PlayerRef: "p1", TotalScore: 300}},
				}, nil
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				if body["total"].(float64) != 1 {
					t.Errorf("Expected total 1, got %v", body["total"])
				}
			},
		},
		{
			name: "invalid sort key returns valid set",
			url:  "/api/v1/leaderboard?sortKey=bogus",
			mockFunc: func(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error) {
				return nil, models.NewInvalidSortKeyError(sortKey)
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				keys, ok := body["validSortFields"].([]interface{})
				if !ok || len(keys) != 4 {
					t.Fatalf("Expected 4 valid sort fields, got %v", body["validSortFields"])
				}
				want := []string{"totalScore", "gamesPlayed", "avgPointsPerGame", "winRate"}
				for i, k := range keys {
					if k.(string) != want[i] {
						t.Errorf("validSortFields[%d] = %v, want %s", i, k, want[i])
					}
				}
			},
		},
		{
			name: "upstream failure passes status through",
			url:  "/api/v1/leaderboard",
			mockFunc: func(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error) {
				return nil, &models.UpstreamError{Status: 503, Message: "identity service down"}
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{
				Leaderboard: &MockLeaderboardService{GetLeaderboardFunc: tt.mockFunc},
			})

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			h.GetLeaderboard(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.checkBody != nil {
				var body map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("Invalid JSON response: %v", err)
				}
				tt.checkBody(t, body)
			}
		})
	}
}

func TestGetTopN(t *testing.T) {
	h := newTestHandler(Config{
		Leaderboard: &MockLeaderboardService{
			GetTopNFunc: func(ctx context.Context, n int) ([]models.RankedEntry, error) {
				if n != 3 {
					t.Errorf("Expected n=3, got %d", n)
				}
				return make([]models.RankedEntry, 3), nil
			},
		},
	})

	r := chi.NewRouter()
	r.Get("/api/v1/leaderboard/top/{n}", h.GetTopN)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/top/3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/top/notanumber", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric n, got %d", rec.Code)
	}
}

func TestRecordScore_TableDriven(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid score",
			body:           `{"player_ref": "p1", "points": 100, "won": true}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing player_ref",
			body:           `{"points": 100}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative points",
			body:           `{"player_ref": "p1", "points": -5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed JSON",
			body:           `{"player_ref": `,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{Scores: &MockScoreStore{}})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/scores", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.RecordScore(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCorrectScore_NotFound(t *testing.T) {
	h := newTestHandler(Config{
		Scores: &MockScoreStore{
			UpdateByPlayerFunc: func(ctx context.Context, playerRef string, update models.ScoreUpdate) (*models.ScoreRecord, error) {
				return nil, models.ErrScoreNotFound
			},
		},
	})

	r := chi.NewRouter()
	r.Patch("/api/v1/scores/{playerRef}", h.CorrectScore)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/scores/ghost", strings.NewReader(`{"points": 10}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestTriggerRefresh(t *testing.T) {
	runner := &MockRefreshRunner{ran: make(chan struct{}, 1)}
	h := newTestHandler(Config{Refresher: runner})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	rec := httptest.NewRecorder()
	h.TriggerRefresh(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", rec.Code)
	}
	select {
	case <-runner.ran:
	case <-timeout(t):
		t.Fatal("RunCycleNow was never invoked")
	}
}
