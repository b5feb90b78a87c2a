// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-quiz/cliparse"
	"github.com/danielhkuo/quickly-quiz/middleware"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/qr"
	"github.com/danielhkuo/quickly-quiz/session"
)

type SessionHandler struct {
	svc *session.Service
	cfg cliparse.Config
}

func NewSessionHandler(svc *session.Service, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{svc: svc, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	created, err := h.svc.CreateSession(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sess)
}

// GetSessionByCode handles GET /invites/{code}
func (h *SessionHandler) GetSessionByCode(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.SessionInfo(r.Context(), r.PathValue("code"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, info)
}

// DeleteSession handles DELETE /sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartSession handles POST /sessions/{id}/start
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.StartSession(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{Message: "Session started", Session: sess})
}

// AdvanceSession handles POST /sessions/{id}/advance
func (h *SessionHandler) AdvanceSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.AdvanceSession(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	msg := "Moved to the next question"
	if sess.Kind == models.KindSurvey {
		msg = "Moved to stage " + sess.Stage
	}
	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{Message: msg, Session: sess})
}

// FinishSession handles POST /sessions/{id}/finish
func (h *SessionHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.FinishSession(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{Message: "Session completed", Session: sess})
}

// CurrentQuestion handles GET /sessions/{id}/current-question
func (h *SessionHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.CurrentQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, q)
}

// GetStatus handles GET /sessions/{id}/status
func (h *SessionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.SessionStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, st)
}

// ListTeams handles GET /sessions/{id}/teams
func (h *SessionHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.ListTeams(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, teams)
}

// RegisterTeam handles POST /sessions/{id}/teams
func (h *SessionHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	team, err := h.svc.RegisterTeam(r.Context(), r.PathValue("id"), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, team)
}

// RegisterTeamByCode handles POST /invites/{code}/teams
func (h *SessionHandler) RegisterTeamByCode(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	team, err := h.svc.RegisterTeamByCode(r.Context(), r.PathValue("code"), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, team)
}

// GetStatistics handles GET /sessions/{id}/statistics
func (h *SessionHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SessionStatistics(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetQRCode handles GET /sessions/{id}/qr?size=N
func (h *SessionHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	size := qr.DefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > 2048 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "size must be between 64 and 2048")
			return
		}
		size = n
	}

	sess, err := h.svc.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	png, err := qr.Generate(qr.JoinURL(h.cfg.FrontendURL, sess.Session.InviteCode), size)
	if err != nil {
		slog.Error("failed to generate QR code", "session_id", sess.Session.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.Error("failed to write QR code", "error", err)
	}
}
