// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/quickly-quiz/middleware"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/realtime"
)

// Snapshotter checks partition keys and builds the event a connection
// receives right after it registers
type Snapshotter interface {
	Exists(ctx context.Context, topic realtime.Topic, key string) error
	Snapshot(ctx context.Context, topic realtime.Topic, key string) (models.Event, error)
}

type RealtimeHandler struct {
	registry *realtime.Registry
	snap     Snapshotter
	upgrader *websocket.Upgrader
}

func NewRealtimeHandler(registry *realtime.Registry, snap Snapshotter, allowedOrigins []string) *RealtimeHandler {
	return &RealtimeHandler{
		registry: registry,
		snap:     snap,
		upgrader: realtime.NewUpgrader(allowedOrigins),
	}
}

// Admin handles GET /ws/admin/{id}
func (h *RealtimeHandler) Admin(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, realtime.TopicAdmin, r.PathValue("id"))
}

// Session handles GET /ws/session/{code}
func (h *RealtimeHandler) Session(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, realtime.TopicSession, strings.ToUpper(r.PathValue("code")))
}

// Team handles GET /ws/team/{id}
func (h *RealtimeHandler) Team(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, realtime.TopicTeam, r.PathValue("id"))
}

// serve rejects unknown keys before upgrading, then registers the socket and
// only then loads the snapshot, so no broadcast falls between the two.
func (h *RealtimeHandler) serve(w http.ResponseWriter, r *http.Request, topic realtime.Topic, key string) {
	if err := h.snap.Exists(r.Context(), topic, key); err != nil {
		middleware.WriteError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "topic", topic, "key", key, "error", err)
		return
	}

	sock := realtime.NewSocket(conn)
	h.registry.Connect(topic, key, sock)
	defer func() {
		h.registry.Disconnect(topic, key, sock)
		sock.Close()
		slog.Info("websocket disconnected", "topic", topic, "key", key)
	}()

	slog.Info("websocket connected", "topic", topic, "key", key)

	snapshot, err := h.snap.Snapshot(r.Context(), topic, key)
	if err != nil {
		slog.Warn("failed to build initial snapshot", "topic", topic, "key", key, "error", err)
		sock.Send(models.Event{Type: models.EventError, Data: map[string]string{"error": err.Error()}})
		return
	}
	if err := sock.Send(snapshot); err != nil {
		slog.Warn("failed to send initial snapshot", "topic", topic, "key", key, "error", err)
		return
	}

	if err := sock.Listen(r.Context()); err != nil {
		slog.Debug("websocket read loop ended", "topic", topic, "key", key, "error", err)
	}
}
