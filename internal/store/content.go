package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// Redis key layout:
//   questions:<category>       list of JSON-encoded questions
//   question_categories        set of category names currently cached
const (
	questionKeyPrefix = "questions:"
	categorySetKey    = "question_categories"
)

// ContentStore is the Redis-backed question cache the refresh scheduler
// clears and repopulates.
type ContentStore struct {
	rdb redis.UniversalClient
}

func NewContentStore(rdb redis.UniversalClient) *ContentStore {
	return &ContentStore{rdb: rdb}
}

// Clear drops every cached category. The refresh cycle calls this first and
// aborts if it fails, so stale and fresh content never mix.
func (s *ContentStore) Clear(ctx context.Context) error {
	categories, err := s.rdb.SMembers(ctx, categorySetKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("list cached categories: %w", err)
	}

	pipe := s.rdb.Pipeline()
	for _, c := range categories {
		pipe.Del(ctx, questionKeyPrefix+c)
	}
	pipe.Del(ctx, categorySetKey)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return fmt.Errorf("clear question cache: %w", err)
	}
	return nil
}

// SaveQuestions replaces the cached questions for one category.
func (s *ContentStore) SaveQuestions(ctx context.Context, category string, questions []models.Question) error {
	encoded := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("encode question: %w", err)
		}
		encoded = append(encoded, data)
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, questionKeyPrefix+category)
	if len(encoded) > 0 {
		pipe.RPush(ctx, questionKeyPrefix+category, encoded...)
	}
	pipe.SAdd(ctx, categorySetKey, category)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return fmt.Errorf("save questions for %s: %w", category, err)
	}
	return nil
}

// GetQuestions returns up to n cached questions for a category; n <= 0 means
// all of them.
func (s *ContentStore) GetQuestions(ctx context.Context, category string, n int) ([]models.Question, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n) - 1
	}
	raw, err := s.rdb.LRange(ctx, questionKeyPrefix+category, 0, stop).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("read questions for %s: %w", category, err)
	}

	questions := make([]models.Question, 0, len(raw))
	for _, item := range raw {
		var q models.Question
		if err := json.Unmarshal([]byte(item), &q); err != nil {
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// CountByCategory reports how many questions are cached per category.
func (s *ContentStore) CountByCategory(ctx context.Context) (map[string]int64, error) {
	categories, err := s.rdb.SMembers(ctx, categorySetKey).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("list cached categories: %w", err)
	}

	pipe := s.rdb.Pipeline()
	cmds := make(map[string]*redis.IntCmd, len(categories))
	for _, c := range categories {
		cmds[c] = pipe.LLen(ctx, questionKeyPrefix+c)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("count cached questions: %w", err)
	}

	counts := make(map[string]int64, len(cmds))
	for c, cmd := range cmds {
		counts[c] = cmd.Val()
	}
	return counts, nil
}
