// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-quiz/middleware"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/session"
)

type TeamHandler struct {
	svc *session.Service
}

func NewTeamHandler(svc *session.Service) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// GetTeam handles GET /teams/{id}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.svc.GetTeam(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, team)
}

// GetStatus handles GET /teams/{id}/status
func (h *TeamHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.TeamStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, st)
}

// SubmitAnswers handles POST /teams/{id}/answers
func (h *TeamHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitTeamAnswersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	n, err := h.svc.SubmitTeamAnswers(r.Context(), r.PathValue("id"), req.Answers)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SubmitCountResponse{Message: "Answers submitted", Count: n})
}

// SubmitVotes handles POST /teams/{id}/votes
func (h *TeamHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	votes, err := h.svc.SubmitVotes(r.Context(), r.PathValue("id"), req.AnswerIDs)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SubmitCountResponse{Message: "Votes submitted", Count: len(votes)})
}

// AvailableAnswers handles GET /teams/{id}/available-answers
func (h *TeamHandler) AvailableAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.svc.AvailableAnswers(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string][]models.AnswerView{"answers": answers})
}
