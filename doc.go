// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Quiz API server.

Quickly Quiz hosts live team sessions. A host runs either a survey (teams
answer a prompt, then vote on each other's answers) or a quiz (a sequence of
questions ending in one synthesized from the teams' own free-text answers).
Hosts, participants, and teams follow along over websockets.

# Starting the Server

Configuration comes from a .env file, the environment, and CLI flags, in
increasing priority:

	DATABASE_URL=quiz.db go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres (lib/pq), or pgx (default: sqlite)
  - FRONTEND_URL (--frontend-url): CORS origin and base of invite links
  - STATS_POLICY (--stats-policy): strict seals statistics until completion
  - UNIQUE_TEAM_NAMES (--unique-team-names): default true
  - LOG_FORMAT (--log-format): text, json, or color
  - LOG_LEVEL (--log-level): debug, info, warn, or error
  - NOTIFY_WORKERS, NOTIFY_QUEUE_SIZE: notification dispatcher sizing
  - SUBMIT_RATE_LIMIT, SUBMIT_RATE_BURST: per-client submission limits

# Architecture

  - handlers: HTTP request handlers (sessions, teams, answers, websockets)
  - router: Route definitions using Go 1.22+ routing, plus service wiring
  - middleware: CORS, logging, rate limiting, JSON helpers
  - session: Command surface over the store
  - lifecycle: Survey and quiz state machines
  - synth: Synthesized final question
  - stats: Statistics aggregation
  - realtime, notify: Websocket registry and async notification dispatch
  - store, db: Persistence and schema
  - models, apperr, ids, qr, logging, cliparse: Shared types and helpers

See package documentation for each component.
*/
package main
