// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

// Ping and pong are the liveness payloads exchanged as plain text frames
const (
	PingMessage = "ping"
	PongMessage = "pong"
)

// NewUpgrader returns a websocket upgrader accepting the given origins.
// An empty list or "*" accepts any origin.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowAll || origin == "" || allowed[origin]
		},
	}
}

// Socket adapts a gorilla websocket connection to Conn. Writes are serialized
// so broadcasts and pong replies never interleave on the wire.
type Socket struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSocket(conn *websocket.Conn) *Socket {
	return &Socket{conn: conn}
}

// Send writes v as a JSON text frame
func (s *Socket) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func (s *Socket) sendText(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

// Listen reads until the peer disconnects or ctx is cancelled. A text "ping"
// is answered with "pong"; anything else is ignored.
func (s *Socket) Listen(ctx context.Context) error {
	s.conn.SetReadLimit(maxMessageSize)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	for {
		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if kind == websocket.TextMessage && string(msg) == PingMessage {
			if err := s.sendText(PongMessage); err != nil {
				return err
			}
		}
	}
}

// Close closes the underlying connection
func (s *Socket) Close() error {
	err := s.conn.Close()
	if errors.Is(err, websocket.ErrCloseSent) {
		return nil
	}
	return err
}
