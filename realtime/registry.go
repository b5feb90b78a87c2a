// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"sync"
)

// Topic names a partition of live connections
type Topic string

const (
	// TopicAdmin is keyed by session id (host view)
	TopicAdmin Topic = "admin"
	// TopicSession is keyed by invite code (participant view)
	TopicSession Topic = "session"
	// TopicTeam is keyed by team id
	TopicTeam Topic = "team"
)

// Conn is a live connection that accepts JSON-serializable events
type Conn interface {
	Send(v any) error
}

type bucketKey struct {
	topic Topic
	key   string
}

// Registry tracks live connections per topic and key and fans events out to them.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	buckets map[bucketKey]map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{buckets: make(map[bucketKey]map[Conn]struct{})}
}

// Connect registers c under topic/key, creating the bucket on first use
func (r *Registry) Connect(topic Topic, key string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := bucketKey{topic, key}
	bucket, ok := r.buckets[k]
	if !ok {
		bucket = make(map[Conn]struct{})
		r.buckets[k] = bucket
	}
	bucket[c] = struct{}{}

	slog.Debug("connection registered", "topic", topic, "key", key, "connections", len(bucket))
}

// Disconnect removes c from topic/key and prunes the bucket when it empties
func (r *Registry) Disconnect(topic Topic, key string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(bucketKey{topic, key}, c)
}

func (r *Registry) remove(k bucketKey, c Conn) {
	bucket, ok := r.buckets[k]
	if !ok {
		return
	}
	delete(bucket, c)
	if len(bucket) == 0 {
		delete(r.buckets, k)
	}
}

// Broadcast delivers v to every connection under topic/key and returns how
// many deliveries succeeded. Connections whose Send fails are removed once the
// pass completes; their failure never reaches the caller.
func (r *Registry) Broadcast(topic Topic, key string, v any) int {
	k := bucketKey{topic, key}

	r.mu.Lock()
	bucket := r.buckets[k]
	conns := make([]Conn, 0, len(bucket))
	for c := range bucket {
		conns = append(conns, c)
	}
	r.mu.Unlock()

	delivered := 0
	var dead []Conn
	for _, c := range conns {
		if err := c.Send(v); err != nil {
			slog.Debug("dropping connection after failed send", "topic", topic, "key", key, "error", err)
			dead = append(dead, c)
			continue
		}
		delivered++
	}

	if len(dead) > 0 {
		r.mu.Lock()
		for _, c := range dead {
			r.remove(k, c)
		}
		r.mu.Unlock()
	}

	return delivered
}

// Count returns the number of live connections under topic/key
func (r *Registry) Count(topic Topic, key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets[bucketKey{topic, key}])
}

// Buckets returns the number of non-empty partitions across all topics
func (r *Registry) Buckets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}
