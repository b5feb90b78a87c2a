// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify pushes state changes to websocket clients off the request path.

# Dispatcher

A Dispatcher owns a fixed set of worker goroutines, each with a bounded queue:

	d := notify.NewDispatcher(cfg.NotifyWorkers, cfg.NotifyQueueSize)
	defer d.Close()

Enqueue never blocks the caller. A full queue drops the job. Errors and panics
inside a job are logged with slog and kept in Failures; they never reach the
command that enqueued the job. Jobs are keyed by session id and a key always
maps to the same worker, so each session's events reach its connections in the
order they were enqueued whatever the worker count.

# Notifier

Notifier implements the session service's notification hooks. Each hook
enqueues a job that re-reads fresh state through a StateReader and broadcasts:

	SessionChanged   → admin session_status, participants <event>, every team team_status
	TeamRegistered   → admin session_status, participants team_joined
	AnswerSubmitted  → admin session_status, participants answer_submitted, team team_status
	VotesSubmitted   → admin session_status, team team_status

All messages use the models.Event envelope {"type": ..., "data": ...}.
*/
package notify
