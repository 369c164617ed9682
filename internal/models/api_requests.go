package models

type RecordScoreRequest struct {
	PlayerRef string `json:"player_ref" validate:"required"`
	Points    int    `json:"points" validate:"gte=0"`
	Won       bool   `json:"won"`
}

type CorrectScoreRequest struct {
	Points *int  `json:"points" validate:"omitempty,gte=0"`
	Won    *bool `json:"won"`
}

// PlatformSummary is the dashboard totals block, assembled concurrently.
type PlatformSummary struct {
	TotalRecords    int64            `json:"total_records"`
	DistinctPlayers int64            `json:"distinct_players"`
	TotalPoints     int64            `json:"total_points"`
	CachedQuestions map[string]int64 `json:"cached_questions"`
}
