package models

import "time"

// Sort keys accepted by the aggregation engine. The set is part of the API
// contract: an invalid key is rejected with the full list in the payload.
const (
	SortByTotalScore  = "totalScore"
	SortByGamesPlayed = "gamesPlayed"
	SortByAvgPoints   = "avgPointsPerGame"
	SortByWinRate     = "winRate"
)

// ValidSortKeys is the exact set reported back to callers on a bad key.
var ValidSortKeys = []string{SortByTotalScore, SortByGamesPlayed, SortByAvgPoints, SortByWinRate}

const (
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// UnknownPlayerName is attached to entries whose playerRef the identity
// service could not resolve. The entry keeps its rank either way.
const UnknownPlayerName = "Unknown Player"

// ScoreRecord is one row per completed match attempt. Records are immutable
// apart from the single correction path (UpdateByPlayer).
type ScoreRecord struct {
	ID        string    `json:"id"`
	PlayerRef string    `json:"player_ref"`
	Points    int       `json:"points"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreFilter narrows QueryAll. Zero values mean "no constraint"; the
// composer passes it through to the store without inspecting it.
type ScoreFilter struct {
	PlayerRef string
	Won       *bool
	Since     time.Time
	Limit     int
}

// ScoreUpdate carries the fields a correction may touch.
type ScoreUpdate struct {
	Points *int  `json:"points" validate:"omitempty,gte=0"`
	Won    *bool `json:"won"`
}

// PlayerAggregate is the derived per-player statistics block. It is computed
// on demand and never persisted.
type PlayerAggregate struct {
	PlayerRef        string  `json:"player_ref"`
	TotalScore       int64   `json:"totalScore"`
	GamesPlayed      int64   `json:"gamesPlayed"`
	Victories        int64   `json:"victories"`
	WinRate          float64 `json:"winRate"`
	AvgPointsPerGame float64 `json:"avgPointsPerGame"`
}

// RankedEntry is a PlayerAggregate with its leaderboard position and the
// resolved display name merged in. Rank is 0-based and assigned in the order
// the aggregation engine produced.
type RankedEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	PlayerAggregate
}

// NamedScoreRecord is a raw score row with the display name merged in, for
// the per-record history view.
type NamedScoreRecord struct {
	ScoreRecord
	DisplayName string `json:"display_name"`
}
