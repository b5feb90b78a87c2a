// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/quickly-quiz/testutil"
)

func TestConnectAndDisconnectPrunesBucket(t *testing.T) {
	reg := NewRegistry()
	a, b := testutil.NewFakeConn(), testutil.NewFakeConn()

	reg.Connect(TopicAdmin, "s1", a)
	reg.Connect(TopicAdmin, "s1", b)
	assert.Equal(t, 2, reg.Count(TopicAdmin, "s1"))
	assert.Equal(t, 1, reg.Buckets())

	reg.Disconnect(TopicAdmin, "s1", a)
	assert.Equal(t, 1, reg.Count(TopicAdmin, "s1"))

	reg.Disconnect(TopicAdmin, "s1", b)
	assert.Equal(t, 0, reg.Count(TopicAdmin, "s1"))
	assert.Equal(t, 0, reg.Buckets())

	// unknown connection and bucket are ignored
	reg.Disconnect(TopicTeam, "missing", a)
}

func TestTopicsArePartitionedIndependently(t *testing.T) {
	reg := NewRegistry()
	admin, participant := testutil.NewFakeConn(), testutil.NewFakeConn()

	reg.Connect(TopicAdmin, "X", admin)
	reg.Connect(TopicSession, "X", participant)

	assert.Equal(t, 1, reg.Broadcast(TopicSession, "X", "hello"))
	assert.Empty(t, admin.Messages())
	assert.Equal(t, []any{"hello"}, participant.Messages())
}

func TestBroadcastRemovesDeadConnection(t *testing.T) {
	reg := NewRegistry()
	live, dead := testutil.NewFakeConn(), testutil.NewDeadConn()

	reg.Connect(TopicTeam, "t1", live)
	reg.Connect(TopicTeam, "t1", dead)

	delivered := reg.Broadcast(TopicTeam, "t1", map[string]string{"type": "team_status"})

	assert.Equal(t, 1, delivered)
	assert.Len(t, live.Messages(), 1)
	assert.Equal(t, 1, reg.Count(TopicTeam, "t1"))

	// the next pass only sees the live socket
	assert.Equal(t, 1, reg.Broadcast(TopicTeam, "t1", "again"))
	assert.Len(t, live.Messages(), 2)
}

func TestBroadcastAllDeadPrunesBucket(t *testing.T) {
	reg := NewRegistry()
	reg.Connect(TopicSession, "CODE", testutil.NewDeadConn())

	assert.Equal(t, 0, reg.Broadcast(TopicSession, "CODE", "x"))
	assert.Equal(t, 0, reg.Buckets())
}

func TestBroadcastToEmptyPartition(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 0, reg.Broadcast(TopicAdmin, "nobody", "x"))
	assert.Equal(t, 0, reg.Buckets())
}

func TestRegistryConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("s%d", i%3)
			c := testutil.NewFakeConn()
			reg.Connect(TopicAdmin, key, c)
			reg.Broadcast(TopicAdmin, key, i)
			reg.Disconnect(TopicAdmin, key, c)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Buckets())
}
