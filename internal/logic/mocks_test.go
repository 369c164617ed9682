package logic

import (
	"context"

	"github.com/openquiz/leaderboard-api/internal/models"
)

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
	return &models.ScoreRecord{PlayerRef: playerRef, Points: points, Won: won}, nil
}

func (m *MockScoreStore) UpdateByPlayer(ctx context.Context, playerRef string, update models.ScoreUpdate) (*models.ScoreRecord, error) {
	if m.UpdateByPlayerFunc != nil {
		return m.UpdateByPlayerFunc(ctx, playerRef, update)
	}
	return nil, models.ErrScoreNotFound
}

func (m *MockScoreStore) QueryAll(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error) {
	if m.QueryAllFunc != nil {
		return m.QueryAllFunc(ctx, filter)
	}
	return []models.ScoreRecord{}, nil
}

// MockResolver counts calls so tests can assert the bulk-only discipline.
type MockResolver struct {
	ResolveManyFunc func(ctx context.Context, refs []string) (map[string]string, error)
	Calls           int
	LastRefs        []string
}

func (m *MockResolver) ResolveMany(ctx context.Context, refs []string) (map[string]string, error) {
	m.Calls++
	m.LastRefs = refs
	if m.ResolveManyFunc != nil {
		return m.ResolveManyFunc(ctx, refs)
	}
	names := make(map[string]string, len(refs))
	for _, r := range refs {
		names[r] = "name-" + r
	}
	return names, nil
}

// MockAggregation
type MockAggregation struct {
	AggregateFunc func(ctx context.Context, sortKey, sortDirection string) ([]models.PlayerAggregate, error)
}

func (m *MockAggregation) Aggregate(ctx context.Context, sortKey, sortDirection string) ([]models.PlayerAggregate, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx, sortKey, sortDirection)
	}
	return []models.PlayerAggregate{}, nil
}
