package cliparse

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	Port            int     `env:"PORT" envDefault:"3318"`
	DatabaseURL     string  `env:"DATABASE_URL"`
	DatabaseType    string  `env:"DATABASE_TYPE" envDefault:"sqlite"`
	FrontendURL     string  `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	StatsPolicy     string  `env:"STATS_POLICY" envDefault:"strict"`
	UniqueTeamNames bool    `env:"UNIQUE_TEAM_NAMES" envDefault:"true"`
	LogFormat       string  `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel        string  `env:"LOG_LEVEL" envDefault:"info"`
	NotifyWorkers   int     `env:"NOTIFY_WORKERS" envDefault:"1"`
	NotifyQueueSize int     `env:"NOTIFY_QUEUE_SIZE" envDefault:"256"`
	SubmitRateLimit float64 `env:"SUBMIT_RATE_LIMIT" envDefault:"20"`
	SubmitRateBurst int     `env:"SUBMIT_RATE_BURST" envDefault:"40"`
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads environment variables, then applies CLI flags on top
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := pflag.NewFlagSet("quickly-quiz", pflag.ContinueOnError)

	// Env values become the flag defaults so CLI flags win when given
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", cfg.DatabaseURL, "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", cfg.DatabaseType, "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.FrontendURL, "frontend-url", cfg.FrontendURL, "Frontend base URL used for CORS and invite links")
	fs.StringVar(&cfg.StatsPolicy, "stats-policy", cfg.StatsPolicy, "Statistics access policy (strict or lenient)")
	fs.BoolVar(&cfg.UniqueTeamNames, "unique-team-names", cfg.UniqueTeamNames, "Reject duplicate team names within a session")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json or color)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn or error)")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Notification worker goroutines (each session is pinned to one worker)")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Notification queue capacity")
	fs.Float64Var(&cfg.SubmitRateLimit, "submit-rate", cfg.SubmitRateLimit, "Submissions per second allowed per client")
	fs.IntVar(&cfg.SubmitRateBurst, "submit-burst", cfg.SubmitRateBurst, "Submission burst allowed per client")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and enumerations
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DatabaseType {
	case "sqlite", "postgres", "pgx":
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	switch c.StatsPolicy {
	case "strict", "lenient":
	default:
		return fmt.Errorf("stats policy must be strict or lenient, got %q", c.StatsPolicy)
	}
	switch c.LogFormat {
	case "text", "json", "color":
	default:
		return fmt.Errorf("log format must be text, json or color, got %q", c.LogFormat)
	}
	if c.NotifyWorkers < 1 {
		return errors.New("notify workers must be at least 1")
	}
	if c.NotifyQueueSize < 1 {
		return errors.New("notify queue must hold at least 1 job")
	}
	return nil
}
