// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-quiz/middleware"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/session"
)

type AnswerHandler struct {
	svc *session.Service
}

func NewAnswerHandler(svc *session.Service) *AnswerHandler {
	return &AnswerHandler{svc: svc}
}

// SubmitAnswer handles POST /answers
func (h *AnswerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	answer, err := h.svc.SubmitAnswer(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, answer)
}

// QuestionStatistics handles GET /questions/{id}/statistics
func (h *AnswerHandler) QuestionStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.QuestionStatistics(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}
