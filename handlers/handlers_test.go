// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/danielhkuo/quickly-quiz/session"
	"github.com/danielhkuo/quickly-quiz/store"
	"github.com/danielhkuo/quickly-quiz/testutil"
)

// setupService builds a session service over a fresh database with
// notifications disabled.
func setupService(t *testing.T) (*session.Service, *store.Store) {
	t.Helper()
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	svc := session.NewService(st, session.NewReader(st), nil, session.OptionsFromConfig(cfg))
	return svc, st
}
