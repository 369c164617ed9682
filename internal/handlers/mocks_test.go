package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// MockLeaderboardService
type MockLeaderboardService struct {
	GetLeaderboardFunc        func(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error)
	GetTopNFunc               func(ctx context.Context, n int) ([]models.RankedEntry, error)
	GetAllScoresWithNamesFunc func(ctx context.Context, filter models.ScoreFilter) ([]models.NamedScoreRecord, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, sortKey, sortDirection)
	}
	return []models.RankedEntry{}, nil
}

func (m *MockLeaderboardService) GetTopN(ctx context.Context, n int) ([]models.RankedEntry, error) {
	if m.GetTopNFunc != nil {
		return m.GetTopNFunc(ctx, n)
	}
	return []models.RankedEntry{}, nil
}

func (m *MockLeaderboardService) GetAllScoresWithNames(ctx context.Context, filter models.ScoreFilter) ([]models.NamedScoreRecord, error) {
	if m.GetAllScoresWithNamesFunc != nil {
		return m.GetAllScoresWithNamesFunc(ctx, filter)
	}
	return []models.NamedScoreRecord{}, nil
}

// MockScoreStore
type MockScoreStore struct {
	InsertFunc         func(ctx context.Context, playerRef string, points int, won bool) (*models.ScoreRecord, error)
	UpdateByPlayerFunc func(ctx context.Context, playerRef string, update models.ScoreUpdate) (*models.ScoreRecord, error)
	QueryAllFunc       func(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error)
}

func (m *MockScoreStore) Insert(ctx context.Context, playerRef string, points int, won bool) (*models.ScoreRecord, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, playerRef, points, won)
	}
	return &models.ScoreRecord{ID: "mock-id", PlayerRef: playerRef, Points: points, Won: won}, nil
}

func (m *MockScoreStore) UpdateByPlayer(ctx context.Context, playerRef string, update models.ScoreUpdate) (*models.ScoreRecord, error) {
	if m.UpdateByPlayerFunc != nil {
		return m.UpdateByPlayerFunc(ctx, playerRef, update)
	}
	return &models.ScoreRecord{ID: "mock-id", PlayerRef: playerRef}, nil
}

func (m *MockScoreStore) QueryAll(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error) {
	if m.QueryAllFunc != nil {
		return m.QueryAllFunc(ctx, filter)
	}
	return []models.ScoreRecord{}, nil
}

// MockRefreshRunner
type MockRefreshRunner struct {
	ran chan struct{}
}

func (m *MockRefreshRunner) RunCycleNow() {
	select {
	case m.ran <- struct{}{}:
	default:
	}
}

func timeout(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}
