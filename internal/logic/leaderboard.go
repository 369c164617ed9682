package logic

import (
	"context"
	"net/http"

	"github.com/openquiz/leaderboard-api/internal/identity"
	"github.com/openquiz/leaderboard-api/internal/models"
)

type leaderboardService struct {
	aggregation AggregationService
	scores      ScoreStore
	resolver    identity.Resolver
}

func NewLeaderboardService(aggregation AggregationService, scores ScoreStore, resolver identity.Resolver) LeaderboardService {
	return &leaderboardService{
		aggregation: aggregation,
		scores:      scores,
		resolver:    resolver,
	}
}

// GetLeaderboard aggregates, resolves all display names in one bulk call,
// then walks the aggregate list assigning rank = index. The merge never
// re-sorts: the output order is exactly the aggregation engine's order.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, sortKey, sortDirection string) ([]models.RankedEntry, error) {
	aggregates, err := s.aggregation.Aggregate(ctx, sortKey, sortDirection)
	if err != nil {
		return nil, err
	}
	return s.merge(ctx, aggregates)
}

// GetTopN is the fixed summary view: totalScore descending, truncated to n.
// The bulk name lookup only covers the surviving n refs.
func (s *leaderboardService) GetTopN(ctx context.Context, n int) ([]models.RankedEntry, error) {
	if n < 0 {
		return nil, &models.ValidationError{Field: "n", Message: "must not be negative"}
	}
	aggregates, err := s.aggregation.Aggregate(ctx, models.SortByTotalScore, models.SortDescending)
	if err != nil {
		return nil, err
	}
	if len(aggregates) > n {
		aggregates = aggregates[:n]
	}
	return s.merge(ctx, aggregates)
}

func (s *leaderboardService) merge(ctx context.Context, aggregates []models.PlayerAggregate) ([]models.RankedEntry, error) {
	refs := make([]string, 0, len(aggregates))
	for _, agg := range aggregates {
		refs = append(refs, agg.PlayerRef)
	}

	names, err := s.resolver.ResolveMany(ctx, refs)
	if err != nil {
		// A wrong best-effort leaderboard is worse than a failed request.
		return nil, err
	}

	entries := make([]models.RankedEntry, 0, len(aggregates))
	for i, agg := range aggregates {
		name, ok := names[agg.PlayerRef]
		if !ok || name == "" {
			// Deleted identity or partial resolver result: keep the entry so
			// rank positions do not shift.
			name = models.UnknownPlayerName
		}
		entries = append(entries, models.RankedEntry{
			Rank:            i,
			DisplayName:     name,
			PlayerAggregate: agg,
		})
	}
	return entries, nil
}

// GetAllScoresWithNames returns the raw match history with display names
// merged in, one entry per record. The filter passes through to the store
// untouched.
func (s *leaderboardService) GetAllScoresWithNames(ctx context.Context, filter models.ScoreFilter) ([]models.NamedScoreRecord, error) {
	records, err := s.scores.QueryAll(ctx, filter)
	if err != nil {
		return nil, &models.UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: "score store query failed",
			Err:     err,
		}
	}

	seen := map[string]bool{}
	refs := []string{}
	for _, rec := range records {
		if !seen[rec.PlayerRef] {
			seen[rec.PlayerRef] = true
			refs = append(refs, rec.PlayerRef)
		}
	}

	names, err := s.resolver.ResolveMany(ctx, refs)
	if err != nil {
		return nil, err
	}

	named := make([]models.NamedScoreRecord, 0, len(records))
	for _, rec := range records {
		name, ok := names[rec.PlayerRef]
		if !ok || name == "" {
			name = models.UnknownPlayerName
		}
		named = append(named, models.NamedScoreRecord{ScoreRecord: rec, DisplayName: name})
	}
	return named, nil
}
