package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openquiz/leaderboard-api/internal/config"
	"github.com/openquiz/leaderboard-api/internal/content"
	"github.com/openquiz/leaderboard-api/internal/handlers"
	"github.com/openquiz/leaderboard-api/internal/identity"
	"github.com/openquiz/leaderboard-api/internal/logic"
	"github.com/openquiz/leaderboard-api/internal/scheduler"
	"github.com/openquiz/leaderboard-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Postgres unreachable", "error", err)
	}

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Redis unreachable", "error", err)
	}

	// Stores and services
	scores := store.NewScoreStore(pg)
	contentStore := store.NewContentStore(rdb)
	resolver := identity.NewHTTPResolver(cfg.IdentityServiceURL)
	aggregation := logic.NewAggregationService(scores)
	leaderboard := logic.NewLeaderboardService(aggregation, scores, resolver)
	summary := logic.NewSummaryService(pg, contentStore)
	fetcher := content.NewHTTPFetcher(cfg.TriviaAPIURL, contentStore)

	refresher := scheduler.New(scheduler.Config{
		RefreshHour:   cfg.Refresh.Hour,
		RefreshMinute: cfg.Refresh.Minute,
		PollInterval:  cfg.Refresh.PollInterval,
		Categories:    cfg.Refresh.Categories,
		Store:         contentStore,
		Fetcher:       fetcher,
		Logger:        logger,
	})
	refresher.Start()
	defer refresher.Stop()

	h := handlers.New(handlers.Config{
		Postgres:    pg,
		Redis:       rdb,
		Logger:      logger,
		Leaderboard: leaderboard,
		Scores:      scores,
		Summary:     summary,
		Questions:   contentStore,
		Refresher:   refresher,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/leaderboard/top/{n}", h.GetTopN)
		r.Get("/scores", h.GetScores)
		r.Post("/scores", h.RecordScore)
		r.Patch("/scores/{playerRef}", h.CorrectScore)
		r.Get("/questions/{category}", h.GetQuestions)
		r.Get("/summary", h.GetSummary)
		r.Post("/admin/refresh", h.TriggerRefresh)
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
}
