// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-quiz/cliparse"
	"github.com/danielhkuo/quickly-quiz/db"
	"github.com/danielhkuo/quickly-quiz/ids"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/store"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps a fresh test database in a store
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     TestDBURL,
		DatabaseType:    "sqlite",
		FrontendURL:     "http://localhost:3000",
		StatsPolicy:     "strict",
		UniqueTeamNames: true,
		LogFormat:       "text",
		LogLevel:        "info",
		NotifyWorkers:   1,
		NotifyQueueSize: 64,
		SubmitRateLimit: 1000,
		SubmitRateBurst: 1000,
	}
}

// CreateTestQuiz creates a quiz with one free-text question per text, at
// ordinals 1..n. A status other than in_progress leaves the pointer unset.
func CreateTestQuiz(t *testing.T, st *store.Store, status string, texts ...string) (models.Session, []models.Question) {
	t.Helper()

	sess := newTestSession(t, models.KindQuiz, status)
	if status == models.StatusInProgress && len(texts) > 0 {
		first := 1
		sess.CurrentOrdinal = &first
	}

	questions := make([]models.Question, 0, len(texts))
	for i, text := range texts {
		questions = append(questions, models.Question{
			ID:        ids.MustID(),
			SessionID: sess.ID,
			Ordinal:   i + 1,
			Content:   text,
			Kind:      models.QuestionFreeText,
			Options:   []models.Option{},
		})
	}

	if err := st.CreateSession(context.Background(), sess, questions); err != nil {
		t.Fatalf("Failed to create test quiz: %v", err)
	}
	return sess, questions
}

// CreateTestSurvey creates a survey with its prompt and stage marker questions.
// When stage is set, the question for that stage is active.
func CreateTestSurvey(t *testing.T, st *store.Store, status, stage string) (models.Session, []models.Question) {
	t.Helper()

	sess := newTestSession(t, models.KindSurvey, status)
	sess.Stage = stage

	questions := []models.Question{
		{Ordinal: 1, Content: "What should we change?", Kind: models.QuestionFreeText, Stage: models.StageQuestion},
		{Ordinal: 2, Content: "Voting", Kind: models.QuestionStageMarker, Stage: models.StageVoting},
		{Ordinal: 3, Content: "Results", Kind: models.QuestionStageMarker, Stage: models.StageResults},
	}
	for i := range questions {
		questions[i].ID = ids.MustID()
		questions[i].SessionID = sess.ID
		questions[i].Active = stage != "" && questions[i].Stage == stage
		questions[i].Options = []models.Option{}
	}

	if err := st.CreateSession(context.Background(), sess, questions); err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return sess, questions
}

func newTestSession(t *testing.T, kind models.SessionKind, status string) models.Session {
	t.Helper()

	code, err := ids.GenerateInviteCode()
	if err != nil {
		t.Fatalf("Failed to generate invite code: %v", err)
	}
	now := time.Now().UTC()
	return models.Session{
		ID:         ids.MustID(),
		Kind:       kind,
		Title:      "Test Session",
		InviteCode: code,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestTeam registers a team with a single participant
func CreateTestTeam(t *testing.T, st *store.Store, sessionID, name string) models.Team {
	t.Helper()

	team := models.Team{
		ID:        ids.MustID(),
		SessionID: sessionID,
		Name:      name,
		JoinedAt:  time.Now().UTC(),
		Progress:  models.NewTeamProgress(),
	}
	team.Participants = []models.Participant{{
		ID:          ids.MustID(),
		TeamID:      team.ID,
		FirstName:   name,
		LastName:    "Member",
		ContactInfo: map[string]string{"email": name + "@example.com"},
		Profession:  "Tester",
	}}

	if err := st.CreateTeam(context.Background(), team, "", false); err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}
	return team
}

// CreateTestAnswer stores a team-owned free-text answer
func CreateTestAnswer(t *testing.T, st *store.Store, sessionID, teamID, questionID, content string) models.Answer {
	t.Helper()

	a, err := st.UpsertAnswer(context.Background(), models.Answer{
		ID:         ids.MustID(),
		SessionID:  sessionID,
		TeamID:     teamID,
		QuestionID: questionID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}
	return a
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
