// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Quiz API.

# Handler Types

Each handler is a thin struct over the session service:

  - SessionHandler: session lifecycle, team registration, statistics, QR codes
  - TeamHandler: team views, batch answers, and votes
  - AnswerHandler: individual answers and per-question statistics
  - RealtimeHandler: websocket subscriptions

Handlers are created via constructor functions:

	sessionHandler := handlers.NewSessionHandler(svc, cfg)
	teamHandler := handlers.NewTeamHandler(svc)

Handlers decode the request, call one service method, and write the result
with middleware.JSONResponse. Service errors are mapped to status codes by
middleware.WriteError.

# Session Lifecycle

Surveys move draft → active → completed and walk the stages
question → voting → results. Quizzes move draft → waiting → in_progress →
completed and advance a question pointer.

	POST /sessions/{id}/start   → StartSession
	POST /sessions/{id}/advance → AdvanceSession
	POST /sessions/{id}/finish  → FinishSession

# Joining

Participants find a session by its invite code:

	GET  /invites/{code}       → GetSessionByCode
	POST /invites/{code}/teams → RegisterTeamByCode

# Live Updates

RealtimeHandler loads a snapshot before upgrading, so unknown sessions and
teams get a JSON 404 instead of a websocket. After the upgrade the snapshot
is sent first and later events arrive through the notifier.

	GET /ws/admin/{id}     → host view
	GET /ws/session/{code} → participant view
	GET /ws/team/{id}      → team view
*/
package handlers
