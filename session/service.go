// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/cliparse"
	"github.com/danielhkuo/quickly-quiz/stats"
	"github.com/danielhkuo/quickly-quiz/store"
)

// Notifier receives a call after every committed mutation. Implementations
// must return quickly and never report failures back to the caller.
type Notifier interface {
	SessionChanged(sessionID, eventType string)
	TeamRegistered(sessionID, teamID string)
	AnswerSubmitted(sessionID, teamID string)
	VotesSubmitted(sessionID, teamID string)
}

// NopNotifier discards every notification
type NopNotifier struct{}

func (NopNotifier) SessionChanged(string, string)  {}
func (NopNotifier) TeamRegistered(string, string)  {}
func (NopNotifier) AnswerSubmitted(string, string) {}
func (NopNotifier) VotesSubmitted(string, string)  {}

// Options holds the per-deployment policies of the service
type Options struct {
	StatsPolicy     stats.Policy
	UniqueTeamNames bool
}

// OptionsFromConfig extracts service options from the parsed configuration
func OptionsFromConfig(cfg cliparse.Config) Options {
	policy := stats.Policy(cfg.StatsPolicy)
	if !policy.Valid() {
		policy = stats.PolicyStrict
	}
	return Options{StatsPolicy: policy, UniqueTeamNames: cfg.UniqueTeamNames}
}

// Service is the command surface over sessions, teams, answers and votes.
// Mutations commit first, then hand off to the Notifier.
type Service struct {
	store  *store.Store
	reader *Reader
	notify Notifier
	opts   Options
}

func NewService(st *store.Store, reader *Reader, notifier Notifier, opts Options) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if !opts.StatsPolicy.Valid() {
		opts.StatsPolicy = stats.PolicyStrict
	}
	return &Service{store: st, reader: reader, notify: notifier, opts: opts}
}

// Reader exposes the snapshot reader the service was built with
func (s *Service) Reader() *Reader {
	return s.reader
}

// mapErr converts store failures into apperr kinds, naming the missing entity
func mapErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFoundf(fmt.Sprintf("%s not found", entity))
	}
	return apperr.Internalf("Database error", err)
}
