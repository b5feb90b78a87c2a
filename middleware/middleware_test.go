// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/models"
)

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"id":"123"}`},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/sessions", nil)
			w := httptest.NewRecorder()
			handler(w, req)

			assert.True(t, called)
			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{"simple map", http.StatusOK, map[string]string{"message": "hello"}, `{"message":"hello"}`},
		{"count response", http.StatusCreated, models.SubmitCountResponse{Message: "Votes submitted", Count: 2},
			`{"message":"Votes submitted","count":2}`},
		{"error response", http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			`{"error":"Bad Request","message":"missing field"}`},
		{"array data", http.StatusOK, []string{"a", "b", "c"}, `["a","b","c"]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tc.statusCode, tc.data)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expected, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		expectedCode  int
		expectedError string
		expectedMsg   string
	}{
		{"not found", apperr.NotFoundf("session not found"), http.StatusNotFound, "Not Found", "session not found"},
		{"invalid state", apperr.InvalidStatef("cannot start"), http.StatusBadRequest, "Bad Request", "cannot start"},
		{"forbidden", apperr.Forbiddenf("sealed"), http.StatusForbidden, "Forbidden", "sealed"},
		{"conflict", apperr.Conflictf("name taken"), http.StatusConflict, "Conflict", "name taken"},
		{"validation", apperr.Validationf("bad vote"), http.StatusBadRequest, "Bad Request", "bad vote"},
		{"no data", apperr.NoDataf("no answers"), http.StatusUnprocessableEntity, "Unprocessable Entity", "no answers"},
		{"internal keeps cause private", apperr.Internalf("Database error", errors.New("disk on fire")),
			http.StatusInternalServerError, "Internal Server Error", "Database error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error", "Internal error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)

			assert.Equal(t, tc.expectedCode, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tc.expectedError, resp.Error)
			assert.Equal(t, tc.expectedMsg, resp.Message)
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"team_name":"Alpha","participants":[]}`))

		var parsed models.RegisterTeamRequest
		require.NoError(t, ParseJSONBody(req, &parsed))
		assert.Equal(t, "Alpha", parsed.Name)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.RegisterTeamRequest
		assert.Error(t, ParseJSONBody(req, &parsed))
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.RegisterTeamRequest
		assert.Error(t, ParseJSONBody(req, &parsed))
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"answer_ids":["a"],"unknown":"x"}`))

		var parsed models.SubmitVotesRequest
		require.NoError(t, ParseJSONBody(req, &parsed))
		assert.Equal(t, []string{"a"}, parsed.AnswerIDs)
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		h := CORS([]string{"http://localhost:3000"}, next)
		req := httptest.NewRequest("OPTIONS", "/sessions", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.NotEqual(t, "handled", w.Body.String())
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("regular request from allowed origin", func(t *testing.T) {
		h := CORS([]string{"http://localhost:3000"}, next)
		req := httptest.NewRequest("GET", "/sessions/abc", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "handled", w.Body.String())
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no header", func(t *testing.T) {
		h := CORS([]string{"http://localhost:3000"}, next)
		req := httptest.NewRequest("GET", "/sessions/abc", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard reflects origin", func(t *testing.T) {
		h := CORS([]string{"*"}, next)
		req := httptest.NewRequest("GET", "/sessions/abc", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("per client buckets", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		assert.True(t, rl.Allow("a"))
		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))

		now = now.Add(time.Second)
		assert.True(t, rl.Allow("a"))
	})

	t.Run("idle clients are swept", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		rl.Allow("a")
		rl.Allow("b")
		assert.Equal(t, 2, rl.Clients())

		now = now.Add(2 * limiterTTL)
		rl.Allow("c")
		assert.Equal(t, 1, rl.Clients())
	})

	t.Run("middleware returns 429", func(t *testing.T) {
		rl := NewRateLimiter(0.001, 1)
		h := rl.Limit(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		req := httptest.NewRequest("POST", "/answers", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		w := httptest.NewRecorder()
		h(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		h(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})

	t.Run("non-positive rate disables limiting", func(t *testing.T) {
		rl := NewRateLimiter(0, 0)
		for range 100 {
			require.True(t, rl.Allow("a"))
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"X-Forwarded-For single IP", map[string]string{"X-Forwarded-For": "192.168.1.100"}, "10.0.0.1:12345", "192.168.1.100"},
		{"X-Forwarded-For chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:12345", "203.0.113.195"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:12345", "203.0.113.50"},
		{"X-Forwarded-For wins over X-Real-IP", map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"}, "10.0.0.1:12345", "192.168.1.100"},
		{"RemoteAddr with port", nil, "192.168.1.50:54321", "192.168.1.50"},
		{"RemoteAddr without port", nil, "192.168.1.50", "192.168.1.50"},
		{"IPv6 RemoteAddr with port", nil, "[::1]:12345", "::1"},
		{"IPv6 in X-Forwarded-For", map[string]string{"X-Forwarded-For": "2001:db8::1"}, "127.0.0.1:12345", "2001:db8::1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tc.expectedIP, GetClientIP(req))
		})
	}
}
