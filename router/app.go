// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"

	"github.com/danielhkuo/quickly-quiz/cliparse"
	"github.com/danielhkuo/quickly-quiz/notify"
	"github.com/danielhkuo/quickly-quiz/realtime"
	"github.com/danielhkuo/quickly-quiz/session"
	"github.com/danielhkuo/quickly-quiz/store"
)

// App holds the long-lived services behind the HTTP routes
type App struct {
	Config     cliparse.Config
	Store      *store.Store
	Registry   *realtime.Registry
	Dispatcher *notify.Dispatcher
	Notifier   *notify.Notifier
	Service    *session.Service
}

// NewApp wires storage, the connection registry, the notification workers,
// and the session service. Call Close to stop the workers.
func NewApp(db *sql.DB, cfg cliparse.Config) *App {
	st := store.New(db)
	reg := realtime.NewRegistry()
	disp := notify.NewDispatcher(cfg.NotifyWorkers, cfg.NotifyQueueSize)
	reader := session.NewReader(st)
	n := notify.New(disp, reg, reader)

	return &App{
		Config:     cfg,
		Store:      st,
		Registry:   reg,
		Dispatcher: disp,
		Notifier:   n,
		Service:    session.NewService(st, reader, n, session.OptionsFromConfig(cfg)),
	}
}

// Close drains pending notifications and stops the workers
func (a *App) Close() {
	a.Dispatcher.Close()
}
