package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ScoreStore persists match-result records. It owns no business logic beyond
// the two point mutations and the filtered read.
type ScoreStore struct {
	pg PgPool
}

func NewScoreStore(pg PgPool) *ScoreStore {
	return &ScoreStore{pg: pg}
}

// Insert stores one completed match attempt and returns the stored record
// with its assigned ID and timestamp.
func (s *ScoreStore) Insert(ctx context.Context, playerRef string, points int, won bool) (*models.ScoreRecord, error) {
	rec := &models.ScoreRecord{
		ID:        uuid.New().String(),
		PlayerRef: playerRef,
		Points:    points,
		Won:       won,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pg.Exec(ctx, `
		INSERT INTO score_records (id, player_ref, points, won, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.PlayerRef, rec.Points, rec.Won, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert score record: %w", err)
	}
	return rec, nil
}

// UpdateByPlayer applies a correction to the player's most recent record.
// Returns models.ErrScoreNotFound when the player has no records.
func (s *ScoreStore) UpdateByPlayer(ctx context.Context, playerRef string, update models.ScoreUpdate) (*models.ScoreRecord, error) {
	sets := []string{}
	args := []any{playerRef}
	n := 1

	if update.Points != nil {
		n++
		sets = append(sets, fmt.Sprintf("points = $%d", n))
		args = append(args, *update.Points)
	}
	if update.Won != nil {
		n++
		sets = append(sets, fmt.Sprintf("won = $%d", n))
		args = append(args, *update.Won)
	}
	if len(sets) == 0 {
		return nil, &models.ValidationError{Field: "body", Message: "no fields to update"}
	}

	query := fmt.Sprintf(`
		UPDATE score_records SET %s
		WHERE id = (
			SELECT id FROM score_records
			WHERE player_ref = $1
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id, player_ref, points, won, created_at
	`, strings.Join(sets, ", "))

	var rec models.ScoreRecord
	err := s.pg.QueryRow(ctx, query, args...).Scan(
		&rec.ID, &rec.PlayerRef, &rec.Points, &rec.Won, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update score record: %w", err)
	}
	return &rec, nil
}

// QueryAll returns records matching the filter, ordered by creation time
// ascending. That ordering is what makes aggregate tie-breaks stable.
func (s *ScoreStore) QueryAll(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRecord, error) {
	where := []string{}
	args := []any{}
	n := 0

	if filter.PlayerRef != "" {
		n++
		where = append(where, fmt.Sprintf("player_ref = $%d", n))
		args = append(args, filter.PlayerRef)
	}
	if filter.Won != nil {
		n++
		where = append(where, fmt.Sprintf("won = $%d", n))
		args = append(args, *filter.Won)
	}
	if !filter.Since.IsZero() {
		n++
		where = append(where, fmt.Sprintf("created_at >= $%d", n))
		args = append(args, filter.Since)
	}

	query := "SELECT id, player_ref, points, won, created_at FROM score_records"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at ASC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query score records: %w", err)
	}
	defer rows.Close()

	records := []models.ScoreRecord{}
	for rows.Next() {
		var rec models.ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.PlayerRef, &rec.Points, &rec.Won, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score records: %w", err)
	}
	return records, nil
}
