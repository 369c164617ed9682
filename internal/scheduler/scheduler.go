// Package scheduler implements the daily content-refresh loop. The loop is
// timer-driven and independent of request handling: on a coarse poll it
// checks the wall clock against the configured refresh instant and, when it
// matches, clears the question cache and repopulates every category through
// the retrying fetch protocol.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/openquiz/leaderboard-api/internal/content"
	"github.com/openquiz/leaderboard-api/internal/models"
)

// Prometheus metrics
var (
	refreshCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_refresh_cycles_total",
		Help: "Total number of content refresh cycles executed",
	})

	refreshCycleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_refresh_cycle_failures_total",
		Help: "Total number of refresh cycles aborted before category fetching",
	})

	categoriesRefreshed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_categories_refreshed_total",
		Help: "Total number of categories successfully repopulated",
	})

	categoryFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_category_fetch_failures_total",
		Help: "Total number of categories abandoned after exhausting fetch attempts",
	})

	lastRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quiz_last_refresh_timestamp_seconds",
		Help: "Unix time of the last completed refresh cycle",
	})
)

// fetchAttempts is the fixed per-category retry bound.
const fetchAttempts = 3

// ContentClearer is the slice of the content store the scheduler needs.
type ContentClearer interface {
	Clear(ctx context.Context) error
}

// Config configures the refresh scheduler.
type Config struct {
	// RefreshHour/RefreshMinute define the daily wall-clock instant.
	RefreshHour   int
	RefreshMinute int
	// PollInterval must be shorter than the one-minute match window.
	PollInterval time.Duration
	Categories   []models.CategoryDescriptor
	Store        ContentClearer
	Fetcher      content.Fetcher
	Logger       *zap.Logger
}

// Scheduler owns all refresh state explicitly, so tests can run independent
// instances and shutdown is clean. No package-level flags or timers.
type Scheduler struct {
	cfg    Config
	logger *zap.SugaredLogger

	// now is swappable for tests.
	now func() time.Time

	// runMu serializes cycles: a clock-driven cycle and a manual
	// RunCycleNow never interleave.
	runMu sync.Mutex

	// lastClockRunDay guards the once-a-day gate. Within the matching
	// minute the poll may tick more than once; the date guard makes a
	// second clock-driven fire on the same day impossible.
	lastClockRunDay string

	initialLoadPending bool
	started            bool
	stopCh             chan struct{}
	doneCh             chan struct{}
}

func New(cfg Config) *Scheduler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	return &Scheduler{
		cfg:                cfg,
		logger:             cfg.Logger.Sugar(),
		now:                time.Now,
		initialLoadPending: true,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start launches the poll loop. The bootstrap refresh runs immediately,
// regardless of clock time, before the first poll.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true

	go s.loop()

	s.logger.Infow("Refresh scheduler started",
		"refreshHour", s.cfg.RefreshHour,
		"refreshMinute", s.cfg.RefreshMinute,
		"pollInterval", s.cfg.PollInterval,
		"categories", len(s.cfg.Categories),
	)
}

// Stop cancels the poll timer. An in-flight cycle is not interrupted; Stop
// returns once the loop has drained.
func (s *Scheduler) Stop() {
	if !s.started {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("Refresh scheduler stopped")
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)

	if s.initialLoadPending {
		s.initialLoadPending = false
		s.runCycle("bootstrap")
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evaluate()
		case <-s.stopCh:
			return
		}
	}
}

// evaluate is the clock gate: fire only when hour and minute match the
// configured instant and no clock-driven cycle has run today.
func (s *Scheduler) evaluate() {
	now := s.now()
	if now.Hour() != s.cfg.RefreshHour || now.Minute() != s.cfg.RefreshMinute {
		return
	}
	day := now.Format("2006-01-02")
	if s.lastClockRunDay == day {
		return
	}
	s.lastClockRunDay = day
	s.runCycle("clock")
}

// RunCycleNow executes a full refresh cycle immediately, bypassing the clock
// gate. It does not consume the day's clock-driven run.
func (s *Scheduler) RunCycleNow() {
	s.runCycle("manual")
}

// runCycle executes the clear-then-repopulate protocol. Nothing here may
// crash the process: every failure is caught and logged at the cycle
// boundary, since the scheduler has no caller to report to.
func (s *Scheduler) runCycle(trigger string) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("Refresh cycle panic", "trigger", trigger, "error", r)
			refreshCycleFailures.Inc()
		}
	}()

	ctx := context.Background()
	start := s.now()
	s.logger.Infow("Refresh cycle starting", "trigger", trigger)
	refreshCycles.Inc()

	// Clear first. Refetching into a cache that failed to clear risks
	// duplicate or stale content, so a failed clear aborts the cycle.
	if err := s.cfg.Store.Clear(ctx); err != nil {
		s.logger.Errorw("Content cache clear failed, aborting cycle",
			"trigger", trigger,
			"error", err,
		)
		refreshCycleFailures.Inc()
		return
	}

	// Categories are independent: one category exhausting its attempts
	// does not block or roll back the others.
	for _, desc := range s.cfg.Categories {
		err := content.Do(ctx, fetchAttempts, s.logger, "fetch "+desc.Category, func(ctx context.Context) error {
			return s.cfg.Fetcher.FetchCategory(ctx, desc.Category, desc.TargetCount)
		})
		if err != nil {
			s.logger.Errorw("Category refresh abandoned",
				"category", desc.Category,
				"error", err,
			)
			categoryFetchFailures.Inc()
			continue
		}
		categoriesRefreshed.Inc()
	}

	lastRefreshTimestamp.Set(float64(s.now().Unix()))
	s.logger.Infow("Refresh cycle finished",
		"trigger", trigger,
		"duration", s.now().Sub(start),
	)
}
