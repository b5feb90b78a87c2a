// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/testutil"
)

func setupApp(t *testing.T) (*App, *http.ServeMux) {
	t.Helper()
	app := NewApp(testutil.SetupTestDB(t), testutil.GetTestConfig())
	t.Cleanup(app.Close)
	return app, NewRouter(app)
}

func TestHealthEndpoint(t *testing.T) {
	_, mux := setupApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	_, mux := setupApp(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-quiz API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/nowhere", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	_, mux := setupApp(t)

	// 400 and 404 are valid here; only a missing route fails
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/sessions"},
		{"GET", "/sessions/test-id"},
		{"DELETE", "/sessions/test-id"},
		{"POST", "/sessions/test-id/start"},
		{"POST", "/sessions/test-id/advance"},
		{"POST", "/sessions/test-id/finish"},
		{"GET", "/sessions/test-id/current-question"},
		{"GET", "/sessions/test-id/status"},
		{"GET", "/sessions/test-id/teams"},
		{"POST", "/sessions/test-id/teams"},
		{"GET", "/sessions/test-id/statistics"},
		{"GET", "/sessions/test-id/qr"},

		{"GET", "/invites/ABC123"},
		{"POST", "/invites/ABC123/teams"},

		{"GET", "/teams/test-id"},
		{"GET", "/teams/test-id/status"},
		{"POST", "/teams/test-id/answers"},
		{"POST", "/teams/test-id/votes"},
		{"GET", "/teams/test-id/available-answers"},

		{"POST", "/answers"},
		{"GET", "/questions/test-id/statistics"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, mux := setupApp(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/sessions/test-id/start"},
		{"DELETE", "/teams/test-id/votes"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	app, mux := setupApp(t)

	sess, _ := testutil.CreateTestQuiz(t, app.Store, models.StatusDraft, "Q1")

	t.Run("session ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions/"+sess.ID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("invite code extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/invites/"+strings.ToLower(sess.InviteCode), nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
	})
}

func TestWebSocketRejectsUnknownSession(t *testing.T) {
	_, mux := setupApp(t)

	req := httptest.NewRequest("GET", "/ws/admin/missing", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before upgrade, got %d", w.Code)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) models.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev models.Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestWebSocketAdminUpdates(t *testing.T) {
	app, mux := setupApp(t)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess, _ := testutil.CreateTestQuiz(t, app.Store, models.StatusWaiting, "Q1")
	testutil.CreateTestTeam(t, app.Store, sess.ID, "Alpha")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/admin/" + sess.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	first := readEvent(t, conn)
	assert.Equal(t, models.EventSessionStatus, first.Type)

	_, err = app.Service.StartSession(t.Context(), sess.ID)
	require.NoError(t, err)

	for {
		ev := readEvent(t, conn)
		if ev.Type != models.EventSessionStatus {
			continue
		}
		raw, err := json.Marshal(ev.Data)
		require.NoError(t, err)

		var status models.SessionStatus
		require.NoError(t, json.Unmarshal(raw, &status))
		if status.Status == models.StatusInProgress {
			assert.Equal(t, 1, status.TeamsCount)
			break
		}
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		if string(msg) == "pong" {
			break
		}
	}
}
