// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSocket(t *testing.T, onOpen func(*Socket)) *websocket.Conn {
	t.Helper()

	upgrader := NewUpgrader(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		sock := NewSocket(conn)
		defer sock.Close()
		onOpen(sock)
		sock.Listen(r.Context())
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSocketSendsJSON(t *testing.T) {
	client := dialSocket(t, func(s *Socket) {
		s.Send(map[string]string{"type": "session_status"})
	})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, "session_status", got["type"])
}

func TestSocketAnswersPing(t *testing.T) {
	client := dialSocket(t, func(*Socket) {})

	// unrecognized payloads are ignored, ping gets a pong
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(PingMessage)))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, msg, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, PongMessage, string(msg))
}

func TestSocketListenStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	upgrader := NewUpgrader([]string{"http://allowed.example"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		done <- NewSocket(conn).Listen(ctx)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://allowed.example"}})
	require.NoError(t, err)
	defer client.Close()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

func TestUpgraderRejectsUnknownOrigin(t *testing.T) {
	upgrader := NewUpgrader([]string{"http://allowed.example"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://evil.example")
	assert.False(t, upgrader.CheckOrigin(r))

	r.Header.Set("Origin", "http://allowed.example")
	assert.True(t, upgrader.CheckOrigin(r))

	assert.True(t, NewUpgrader([]string{"*"}).CheckOrigin(r))
}
