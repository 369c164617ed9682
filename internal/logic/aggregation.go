package logic

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/openquiz/leaderboard-api/internal/models"
)

type aggregationService struct {
	scores ScoreStore
}

func NewAggregationService(scores ScoreStore) AggregationService {
	return &aggregationService{scores: scores}
}

// Aggregate groups the full score set by player and returns derived stats
// ordered by the requested key. The sort is stable, so tied players keep
// their insertion order; there is no secondary key.
func (s *aggregationService) Aggregate(ctx context.Context, sortKey, sortDirection string) ([]models.PlayerAggregate, error) {
	keyFn, err := sortKeyFunc(sortKey)
	if err != nil {
		return nil, err
	}

	records, err := s.scores.QueryAll(ctx, models.ScoreFilter{})
	if err != nil {
		return nil, &models.UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: "score store query failed",
			Err:     fmt.Errorf("aggregate: %w", err),
		}
	}

	// Group in first-seen order so ties stay deterministic.
	byPlayer := make(map[string]*models.PlayerAggregate)
	order := []string{}
	for _, rec := range records {
		agg, ok := byPlayer[rec.PlayerRef]
		if !ok {
			agg = &models.PlayerAggregate{PlayerRef: rec.PlayerRef}
			byPlayer[rec.PlayerRef] = agg
			order = append(order, rec.PlayerRef)
		}
		agg.TotalScore += int64(rec.Points)
		agg.GamesPlayed++
		if rec.Won {
			agg.Victories++
		}
	}

	aggregates := make([]models.PlayerAggregate, 0, len(order))
	for _, ref := range order {
		agg := byPlayer[ref]
		if agg.GamesPlayed > 0 {
			agg.WinRate = float64(agg.Victories) / float64(agg.GamesPlayed) * 100
			agg.AvgPointsPerGame = float64(agg.TotalScore) / float64(agg.GamesPlayed)
		}
		aggregates = append(aggregates, *agg)
	}

	descending := sortDirection != models.SortAscending
	sort.SliceStable(aggregates, func(i, j int) bool {
		if descending {
			return keyFn(&aggregates[i]) > keyFn(&aggregates[j])
		}
		return keyFn(&aggregates[i]) < keyFn(&aggregates[j])
	})

	return aggregates, nil
}

// sortKeyFunc maps a sort key name to its extractor, rejecting anything
// outside the fixed set with the valid keys in the payload.
func sortKeyFunc(key string) (func(*models.PlayerAggregate) float64, error) {
	switch key {
	case models.SortByTotalScore:
		return func(a *models.PlayerAggregate) float64 { return float64(a.TotalScore) }, nil
	case models.SortByGamesPlayed:
		return func(a *models.PlayerAggregate) float64 { return float64(a.GamesPlayed) }, nil
	case models.SortByAvgPoints:
		return func(a *models.PlayerAggregate) float64 { return a.AvgPointsPerGame }, nil
	case models.SortByWinRate:
		return func(a *models.PlayerAggregate) float64 { return a.WinRate }, nil
	default:
		return nil, models.NewInvalidSortKeyError(key)
	}
}
