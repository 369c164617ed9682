package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// RefreshConfig holds the content-refresh schedule and the fixed category
// list. Unlike the flat infra settings this block carries structure, so it
// loads from a YAML file with env overrides.
type RefreshConfig struct {
	Hour         int                         `koanf:"hour"`
	Minute       int                         `koanf:"minute"`
	PollInterval time.Duration               `koanf:"poll_interval"`
	Categories   []models.CategoryDescriptor `koanf:"categories"`
}

func defaultRefresh() *RefreshConfig {
	return &RefreshConfig{
		Hour:         1,
		Minute:       0,
		PollInterval: 30 * time.Second,
		Categories: []models.CategoryDescriptor{
			{Category: "general", TargetCount: 50},
			{Category: "science", TargetCount: 50},
			{Category: "history", TargetCount: 50},
			{Category: "sports", TargetCount: 50},
		},
	}
}

// LoadRefresh builds the refresh block by layering defaults, an optional
// YAML file, and env vars.
// Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if REFRESH_CONFIG is set
//  3. env (prefix REFRESH_, e.g. REFRESH_HOUR)
func LoadRefresh() (*RefreshConfig, error) {
	k := koanf.New(".")

	if path := os.Getenv("REFRESH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("REFRESH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "refresh_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaultRefresh()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Hour < 0 || cfg.Hour > 23 {
		return nil, errors.New("hour must be in [0,23]")
	}
	if cfg.Minute < 0 || cfg.Minute > 59 {
		return nil, errors.New("minute must be in [0,59]")
	}
	if cfg.PollInterval <= 0 || cfg.PollInterval >= time.Minute {
		return nil, errors.New("poll_interval must be positive and under one minute")
	}
	if len(cfg.Categories) == 0 {
		return nil, errors.New("at least one category is required")
	}
	return &cfg, nil
}
