// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the application services and defines HTTP routes for
the Quickly Quiz API.

# Application

NewApp builds the store, websocket registry, notification workers, and
session service around an open database:

	app := router.NewApp(db, cfg)
	defer app.Close()
	mux := router.NewRouter(app)

# Endpoints

Health:

	GET /health

Sessions (host):

	POST   /sessions                        - Create survey or quiz
	GET    /sessions/{id}                   - Session with questions
	DELETE /sessions/{id}                   - Delete session
	POST   /sessions/{id}/start             - Start
	POST   /sessions/{id}/advance           - Next stage or question
	POST   /sessions/{id}/finish            - Complete
	GET    /sessions/{id}/current-question  - Question under the pointer
	GET    /sessions/{id}/status            - Host snapshot
	GET    /sessions/{id}/teams             - Registered teams
	POST   /sessions/{id}/teams             - Register team
	GET    /sessions/{id}/statistics        - Session statistics
	GET    /sessions/{id}/qr                - Invite QR code (PNG)

Invites (participants):

	GET  /invites/{code}       - Participant snapshot
	POST /invites/{code}/teams - Register team

Teams:

	GET  /teams/{id}                   - Team with participants
	GET  /teams/{id}/status            - Team snapshot
	POST /teams/{id}/answers           - Replace the team's survey answers
	POST /teams/{id}/votes             - Replace the team's votes
	GET  /teams/{id}/available-answers - Answers open for voting

Answers:

	POST /answers                    - Submit or overwrite an answer
	GET  /questions/{id}/statistics  - Multiple-choice statistics

Websockets:

	GET /ws/admin/{id}
	GET /ws/session/{code}
	GET /ws/team/{id}

Every route is wrapped with request logging. Submission routes also pass
through the per-IP rate limiter.
*/
package router
