// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime tracks live websocket connections and fans events out to them.

# Partitions

Connections are grouped by topic and key:

	TopicAdmin   → session id   (host dashboard)
	TopicSession → invite code  (every participant of a session)
	TopicTeam    → team id      (one team's view)

A bucket is created on the first Connect and pruned when its last connection
leaves.

# Broadcasting

	n := reg.Broadcast(realtime.TopicTeam, teamID, event)

Broadcast copies the bucket under the lock and sends outside it, so one slow
socket only delays its own pass. Sockets whose send fails are removed after
the pass. Delivery is best effort and errors are never returned.

# Sockets

Socket wraps a gorilla/websocket connection. Listen answers the text frame
"ping" with "pong" to keep intermediaries from reclaiming idle connections and
silently ignores everything else.
*/
package realtime
