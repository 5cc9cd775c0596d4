package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"kalimat/internal/game"
)

// Config is the server configuration, read from the environment after an
// optional .env file has been loaded.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	Env            string        `env:"ENV" envDefault:"development"`
	GinMode        string        `env:"GIN_MODE"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"2h"`
	SweepInterval  time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	CookieMaxAge   time.Duration `env:"COOKIE_MAX_AGE" envDefault:"2h"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	CatalogPath    string        `env:"CATALOG_PATH"`
	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	Game GameConfig `envPrefix:"GAME_"`
}

// GameConfig overrides the stock game balance.
type GameConfig struct {
	Seed             int64         `env:"SEED"`
	BasePoints       int           `env:"BASE_POINTS" envDefault:"10"`
	StartingLives    int           `env:"STARTING_LIVES" envDefault:"3"`
	TimedDuration    int           `env:"TIMED_DURATION" envDefault:"60"`
	Distractors      int           `env:"DISTRACTORS" envDefault:"4"`
	TotalLevels      int           `env:"TOTAL_LEVELS" envDefault:"3"`
	LevelQuota       map[int]int   `env:"LEVEL_QUOTA" envDefault:"1:2,2:2,3:2"`
	FeedbackDuration time.Duration `env:"FEEDBACK_DURATION" envDefault:"2s"`
	DefaultCategory  string        `env:"DEFAULT_CATEGORY" envDefault:"internet"`
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Game.TotalLevels < 1 {
		errs = append(errs, errors.New("GAME_TOTAL_LEVELS must be at least 1"))
	}
	if c.Game.Distractors < 0 {
		errs = append(errs, errors.New("GAME_DISTRACTORS must not be negative"))
	}
	if c.Game.StartingLives < 0 {
		errs = append(errs, errors.New("GAME_STARTING_LIVES must not be negative"))
	}
	if c.Game.TimedDuration < 1 {
		errs = append(errs, errors.New("GAME_TIMED_DURATION must be at least 1"))
	}
	if c.SessionTimeout <= 0 || c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_TIMEOUT and SESSION_SWEEP_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

// isProduction reports whether the server runs in production mode.
func (c Config) isProduction() bool {
	return c.GinMode == "release" || c.Env == "production"
}

// rules turns the game overrides into a ruleset.
func (c Config) rules() game.Rules {
	r := game.DefaultRules()
	g := c.Game
	r.BasePoints = g.BasePoints
	r.StartingLives = g.StartingLives
	r.TimedDuration = g.TimedDuration
	r.Distractors = g.Distractors
	r.TotalLevels = g.TotalLevels
	if len(g.LevelQuota) > 0 {
		r.LevelQuota = g.LevelQuota
	}
	r.FeedbackDuration = g.FeedbackDuration
	r.DefaultCategory = g.DefaultCategory
	return r
}
