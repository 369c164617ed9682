package logic

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/openquiz/leaderboard-api/internal/models"
	"github.com/openquiz/leaderboard-api/internal/store"
)

type summaryService struct {
	pg      store.PgPool
	content ContentCounter
}

func NewSummaryService(pg store.PgPool, content ContentCounter) SummaryService {
	return &summaryService{pg: pg, content: content}
}

// GetPlatformSummary fetches the dashboard totals concurrently.
func (s *summaryService) GetPlatformSummary(ctx context.Context) (*models.PlatformSummary, error) {
	summary := &models.PlatformSummary{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.pg.QueryRow(ctx,
			"SELECT count(*), count(DISTINCT player_ref), coalesce(sum(points), 0) FROM score_records",
		).Scan(&summary.TotalRecords, &summary.DistinctPlayers, &summary.TotalPoints)
		if err != nil {
			return fmt.Errorf("score totals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		counts, err := s.content.CountByCategory(ctx)
		if err != nil {
			// Cache counts are non-critical; serve the totals without them.
			summary.CachedQuestions = map[string]int64{}
			return nil
		}
		summary.CachedQuestions = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
