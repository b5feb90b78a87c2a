// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared helpers for tests.

Databases are in-memory SQLite with the real schema, one per test:

	st := testutil.SetupTestStore(t)
	sess, qs := testutil.CreateTestQuiz(t, st, models.StatusInProgress, "Q1", "Q2")
	team := testutil.CreateTestTeam(t, st, sess.ID, "Alpha")

FakeConn stands in for a websocket connection and records every event it
receives; NewDeadConn returns one whose sends always fail.

MakeRequest, AssertStatus and AssertJSON wrap httptest for handler tests.
*/
package testutil
