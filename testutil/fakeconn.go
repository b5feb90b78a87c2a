// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"errors"
	"sync"

	"github.com/danielhkuo/quickly-quiz/models"
)

// ErrConnClosed is returned by a failing FakeConn
var ErrConnClosed = errors.New("connection closed")

// FakeConn is an in-memory realtime connection that records what it was sent
type FakeConn struct {
	mu       sync.Mutex
	messages []any
	failing  bool
}

// NewFakeConn returns a live fake connection
func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

// NewDeadConn returns a fake connection whose every send fails
func NewDeadConn() *FakeConn {
	return &FakeConn{failing: true}
}

func (c *FakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return ErrConnClosed
	}
	c.messages = append(c.messages, v)
	return nil
}

// Fail makes every later send fail
func (c *FakeConn) Fail() {
	c.mu.Lock()
	c.failing = true
	c.mu.Unlock()
}

// Messages returns everything delivered so far
func (c *FakeConn) Messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.messages))
	copy(out, c.messages)
	return out
}

// EventTypes returns the type of every delivered models.Event, in order
func (c *FakeConn) EventTypes() []string {
	var types []string
	for _, m := range c.Messages() {
		if ev, ok := m.(models.Event); ok {
			types = append(types, ev.Type)
		}
	}
	return types
}

// LastEvent returns the most recent delivered event of the given type
func (c *FakeConn) LastEvent(eventType string) (models.Event, bool) {
	msgs := c.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if ev, ok := msgs[i].(models.Event); ok && ev.Type == eventType {
			return ev, true
		}
	}
	return models.Event{}, false
}
