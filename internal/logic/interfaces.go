package logic

import (
	"context"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// ScoreStore is the persistence contract the aggregation and composer
// services consume. QueryAll order defines tie-break order.
type ScoreStore interface {
	Insert(ctx context.Context, playerRef string, points int, won bool) (*models.ScoreRecord, error)
	UpdateByPlayer(ctx context.Context, playerRef string, update models.ScoreUpdate) (*models.ScoreRecord, error)
	QueryAll(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error)
}

// ContentCounter exposes the cached-question counts used by the summary view.
type ContentCounter interface {
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

// AggregationService computes ordered per-player statistics.
type AggregationService interface {
	Aggregate(ctx context.Context, sortKey, sortDirection string) ([]models.PlayerAggregate, error)
}

// LeaderboardService merges aggregates with resolved display names.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error)
	GetTopN(ctx context.Context, n int) ([]models.RankedEntry, error)
	GetAllScoresWithNames(ctx context.Context, filter models.ScoreFilter) ([]models.NamedScoreRecord, error)
}

// SummaryService assembles the platform dashboard totals.
type SummaryService interface {
	GetPlatformSummary(ctx context.Context) (*models.PlatformSummary, error)
}
