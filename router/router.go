// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-quiz/handlers"
	"github.com/danielhkuo/quickly-quiz/middleware"
)

func NewRouter(app *App) *http.ServeMux {
	mux := http.NewServeMux()
	cfg := app.Config

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(app.Service, cfg)
	teamHandler := handlers.NewTeamHandler(app.Service)
	answerHandler := handlers.NewAnswerHandler(app.Service)
	realtimeHandler := handlers.NewRealtimeHandler(app.Registry, app.Notifier, []string{cfg.FrontendURL})

	limiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateBurst)
	submit := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(limiter.Limit(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.Store.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session management (host)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("DELETE /sessions/{id}", middleware.WithLogging(sessionHandler.DeleteSession))
	mux.HandleFunc("POST /sessions/{id}/start", middleware.WithLogging(sessionHandler.StartSession))
	mux.HandleFunc("POST /sessions/{id}/advance", middleware.WithLogging(sessionHandler.AdvanceSession))
	mux.HandleFunc("POST /sessions/{id}/finish", middleware.WithLogging(sessionHandler.FinishSession))
	mux.HandleFunc("GET /sessions/{id}/current-question", middleware.WithLogging(sessionHandler.CurrentQuestion))
	mux.HandleFunc("GET /sessions/{id}/status", middleware.WithLogging(sessionHandler.GetStatus))
	mux.HandleFunc("GET /sessions/{id}/teams", middleware.WithLogging(sessionHandler.ListTeams))
	mux.HandleFunc("POST /sessions/{id}/teams", submit(sessionHandler.RegisterTeam))
	mux.HandleFunc("GET /sessions/{id}/statistics", middleware.WithLogging(sessionHandler.GetStatistics))
	mux.HandleFunc("GET /sessions/{id}/qr", middleware.WithLogging(sessionHandler.GetQRCode))

	// Joining by invite code (participants)
	mux.HandleFunc("GET /invites/{code}", middleware.WithLogging(sessionHandler.GetSessionByCode))
	mux.HandleFunc("POST /invites/{code}/teams", submit(sessionHandler.RegisterTeamByCode))

	// Team operations
	mux.HandleFunc("GET /teams/{id}", middleware.WithLogging(teamHandler.GetTeam))
	mux.HandleFunc("GET /teams/{id}/status", middleware.WithLogging(teamHandler.GetStatus))
	mux.HandleFunc("POST /teams/{id}/answers", submit(teamHandler.SubmitAnswers))
	mux.HandleFunc("POST /teams/{id}/votes", submit(teamHandler.SubmitVotes))
	mux.HandleFunc("GET /teams/{id}/available-answers", middleware.WithLogging(teamHandler.AvailableAnswers))

	// Answers and statistics
	mux.HandleFunc("POST /answers", submit(answerHandler.SubmitAnswer))
	mux.HandleFunc("GET /questions/{id}/statistics", middleware.WithLogging(answerHandler.QuestionStatistics))

	// Live updates
	mux.HandleFunc("GET /ws/admin/{id}", middleware.WithLogging(realtimeHandler.Admin))
	mux.HandleFunc("GET /ws/session/{code}", middleware.WithLogging(realtimeHandler.Session))
	mux.HandleFunc("GET /ws/team/{id}", middleware.WithLogging(realtimeHandler.Team))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
			return
		}
		w.Write([]byte("quickly-quiz API v1"))
	})

	return mux
}
