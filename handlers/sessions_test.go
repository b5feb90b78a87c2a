// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/testutil"
)

func TestCreateSession(t *testing.T) {
	svc, _ := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		questions      int
	}{
		{
			name: "quiz",
			body: models.CreateSessionRequest{
				Title:     "Retro",
				Questions: []models.QuestionInput{{Content: "What went well?"}, {Content: "What didn't?"}},
			},
			expectedStatus: http.StatusCreated,
			questions:      2,
		},
		{
			name:           "survey",
			body:           models.CreateSessionRequest{Title: "Offsite", Kind: models.KindSurvey},
			expectedStatus: http.StatusCreated,
			questions:      3,
		},
		{
			name:           "missing title",
			body:           models.CreateSessionRequest{Questions: []models.QuestionInput{{Content: "Q"}}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "quiz without questions",
			body:           models.CreateSessionRequest{Title: "Empty"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions", tc.body, nil)
			w := httptest.NewRecorder()

			handler.CreateSession(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.SessionWithQuestions
			testutil.AssertJSON(t, w, &resp)
			if resp.Session.ID == "" || len(resp.Session.InviteCode) != 8 {
				t.Errorf("Expected id and 8 character invite code, got %+v", resp.Session)
			}
			if resp.Session.Status != models.StatusDraft {
				t.Errorf("Expected status draft, got %s", resp.Session.Status)
			}
			if len(resp.Questions) != tc.questions {
				t.Errorf("Expected %d questions, got %d", tc.questions, len(resp.Questions))
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	svc, st := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())
	sess, _ := testutil.CreateTestQuiz(t, st, models.StatusDraft, "Q1", "Q2")

	t.Run("by id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+sess.ID, nil, nil)
		req.SetPathValue("id", sess.ID)
		w := httptest.NewRecorder()

		handler.GetSession(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.SessionWithQuestions
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Questions) != 2 {
			t.Errorf("Expected 2 questions, got %d", len(resp.Questions))
		}
	})

	t.Run("by invite code", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/invites/"+sess.InviteCode, nil, nil)
		req.SetPathValue("code", sess.InviteCode)
		w := httptest.NewRecorder()

		handler.GetSessionByCode(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var info models.SessionInfo
		testutil.AssertJSON(t, w, &info)
		if info.ID != sess.ID {
			t.Errorf("Expected session %s, got %s", sess.ID, info.ID)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/missing", nil, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.GetSession(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSessionTransitions(t *testing.T) {
	svc, st := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())
	sess, _ := testutil.CreateTestQuiz(t, st, models.StatusWaiting, "Q1")

	call := func(fn http.HandlerFunc, action string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/sessions/"+sess.ID+"/"+action, nil, nil)
		req.SetPathValue("id", sess.ID)
		w := httptest.NewRecorder()
		fn(w, req)
		return w
	}

	w := call(handler.FinishSession, "finish")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = call(handler.StartSession, "start")
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.TransitionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Session.Status != models.StatusInProgress {
		t.Errorf("Expected in_progress, got %s", resp.Session.Status)
	}

	// No answers yet, so there is nothing to synthesize from
	w = call(handler.AdvanceSession, "advance")
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	w = call(handler.StartSession, "start")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = call(handler.FinishSession, "finish")
	testutil.AssertStatus(t, w, http.StatusOK)

	w = call(handler.GetStatistics, "statistics")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSessionStatistics_Sealed(t *testing.T) {
	svc, st := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())
	sess, _ := testutil.CreateTestSurvey(t, st, models.StatusActive, models.StageVoting)

	req := testutil.MakeRequest("GET", "/sessions/"+sess.ID+"/statistics", nil, nil)
	req.SetPathValue("id", sess.ID)
	w := httptest.NewRecorder()

	handler.GetStatistics(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestGetQRCode(t *testing.T) {
	svc, st := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())
	sess, _ := testutil.CreateTestSurvey(t, st, models.StatusDraft, "")

	t.Run("png", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+sess.ID+"/qr", nil, nil)
		req.SetPathValue("id", sess.ID)
		w := httptest.NewRecorder()

		handler.GetQRCode(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected image/png, got %s", ct)
		}
		if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
			t.Errorf("Expected a valid PNG: %v", err)
		}
	})

	t.Run("bad size", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+sess.ID+"/qr?size=5", nil, nil)
		req.SetPathValue("id", sess.ID)
		w := httptest.NewRecorder()

		handler.GetQRCode(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown session", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/missing/qr", nil, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.GetQRCode(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestRegisterTeam(t *testing.T) {
	svc, st := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())
	sess, _ := testutil.CreateTestQuiz(t, st, models.StatusDraft, "Q1")

	body := models.RegisterTeamRequest{
		Name: "Alpha",
		Participants: []models.ParticipantInput{
			{FirstName: "Ann", LastName: "Lee", ContactInfo: map[string]string{"phone": "555"}},
		},
	}

	register := func() *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/invites/"+sess.InviteCode+"/teams", body, nil)
		req.SetPathValue("code", sess.InviteCode)
		w := httptest.NewRecorder()
		handler.RegisterTeamByCode(w, req)
		return w
	}

	w := register()
	testutil.AssertStatus(t, w, http.StatusCreated)
	var team models.Team
	testutil.AssertJSON(t, w, &team)
	if team.Name != "Alpha" || len(team.Participants) != 1 {
		t.Errorf("Unexpected team: %+v", team)
	}

	w = register()
	testutil.AssertStatus(t, w, http.StatusConflict)

	req := testutil.MakeRequest("GET", "/sessions/"+sess.ID+"/teams", nil, nil)
	req.SetPathValue("id", sess.ID)
	w = httptest.NewRecorder()
	handler.ListTeams(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var teams []models.Team
	testutil.AssertJSON(t, w, &teams)
	if len(teams) != 1 {
		t.Errorf("Expected 1 team, got %d", len(teams))
	}

	req = testutil.MakeRequest("GET", "/sessions/"+sess.ID+"/status", nil, nil)
	req.SetPathValue("id", sess.ID)
	w = httptest.NewRecorder()
	handler.GetStatus(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var status models.SessionStatus
	testutil.AssertJSON(t, w, &status)
	if status.Status != models.StatusWaiting || status.TeamsCount != 1 {
		t.Errorf("Expected waiting with 1 team, got %s with %d", status.Status, status.TeamsCount)
	}
}

func TestDeleteSession(t *testing.T) {
	svc, st := setupService(t)
	handler := NewSessionHandler(svc, testutil.GetTestConfig())
	sess, _ := testutil.CreateTestQuiz(t, st, models.StatusDraft, "Q1")

	for _, expected := range []int{http.StatusNoContent, http.StatusNotFound} {
		req := testutil.MakeRequest("DELETE", "/sessions/"+sess.ID, nil, nil)
		req.SetPathValue("id", sess.ID)
		w := httptest.NewRecorder()

		handler.DeleteSession(w, req)

		testutil.AssertStatus(t, w, expected)
	}
}
