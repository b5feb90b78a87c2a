// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, status, and duration_ms on completion. The wrapped writer
still supports hijacking, so websocket routes can be logged too.

# CORS

Built on github.com/rs/cors:

	handler := middleware.CORS([]string{cfg.FrontendURL}, mux)

An empty origin list or "*" reflects any origin.

# Rate Limiting

Per-client token buckets from golang.org/x/time/rate guard submission routes:

	limiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateBurst)
	mux.HandleFunc("POST /answers", limiter.Limit(h.SubmitAnswer))

Clients idle for ten minutes lose their bucket.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, err) // apperr kind → status code

Parse JSON request bodies:

	var req models.RegisterTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
