package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openquiz/leaderboard-api/internal/logic"
	"github.com/openquiz/leaderboard-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// QuestionReader serves cached questions for a category.
type QuestionReader interface {
	GetQuestions(ctx context.Context, category string, n int) ([]models.Question, error)
}

// RefreshRunner triggers a content refresh cycle outside the clock gate.
type RefreshRunner interface {
	RunCycleNow()
}

type Config struct {
	Postgres *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.Logger
	// Services
	Leaderboard logic.LeaderboardService
	Scores      logic.ScoreStore
	Summary     logic.SummaryService
	Questions   QuestionReader
	Refresher   RefreshRunner
}

type Handler struct {
	pg          *pgxpool.Pool
	redis       *redis.Client
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	leaderboard logic.LeaderboardService
	scores      logic.ScoreStore
	summary     logic.SummaryService
	questions   QuestionReader
	refresher   RefreshRunner
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:          cfg.Postgres,
		redis:       cfg.Redis,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		leaderboard: cfg.Leaderboard,
		scores:      cfg.Scores,
		summary:     cfg.Summary,
		questions:   cfg.Questions,
		refresher:   cfg.Refresher,
	}
}
