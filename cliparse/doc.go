// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first (github.com/caarlos0/env), then CLI flags
(github.com/spf13/pflag) are applied on top. LoadDotEnv optionally seeds the
environment from a .env file (github.com/joho/godotenv) before that.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: database connection string (required)
  - DatabaseType: sqlite, postgres or pgx (default: sqlite)
  - FrontendURL: allowed CORS origin and base of invite links (default: http://localhost:3000)
  - StatsPolicy: strict seals statistics until completion, lenient does not (default: strict)
  - UniqueTeamNames: reject duplicate team names per session (default: true)
  - LogFormat, LogLevel: text, json or color; debug, info, warn or error
  - NotifyWorkers, NotifyQueueSize: notification dispatcher sizing (default: 1, 256)
  - SubmitRateLimit, SubmitRateBurst: per-client token bucket on submissions (default: 20/s, 40)

# CLI Flags

	-p, --port            Server port
	-d, --database-url    Database URL
	-t, --database-type   Database type
	--frontend-url        Frontend base URL
	--stats-policy        strict or lenient
	--unique-team-names   true or false
	--log-format          text, json or color
	--log-level           debug, info, warn or error
	--notify-workers      worker goroutines
	--notify-queue        queue capacity
	--submit-rate         submissions per second
	--submit-burst        submission burst

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, FRONTEND_URL, STATS_POLICY,
	UNIQUE_TEAM_NAMES, LOG_FORMAT, LOG_LEVEL, NOTIFY_WORKERS,
	NOTIFY_QUEUE_SIZE, SUBMIT_RATE_LIMIT, SUBMIT_RATE_BURST

CLI flags take precedence over environment variables.

# Example

	// In main.go
	_ = cliparse.LoadDotEnv(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
*/
package cliparse
