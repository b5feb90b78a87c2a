// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"fmt"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/models"
)

// Transition describes the writes a legal state change requires.
// The caller applies it atomically; the machine itself never touches storage.
type Transition struct {
	Status             string
	Stage              string
	Pointer            *int
	ActivateQuestionID string
	DeactivateAll      bool
	// SynthesizeAt is set when the aggregate question must be materialized at that ordinal
	SynthesizeAt *int
}

// Cursor identifies the current question of a running session.
// When Synthesize is true, Question is nil and the caller derives the aggregate
// question (or loads the persisted one) for Ordinal.
type Cursor struct {
	Question   *models.Question
	Synthesize bool
	Ordinal    int
}

// Machine decides legal transitions for one session kind
type Machine interface {
	Start(s models.Session, qs []models.Question) (Transition, error)
	Advance(s models.Session, qs []models.Question) (Transition, error)
	Finish(s models.Session) (Transition, error)
	Current(s models.Session, qs []models.Question) (Cursor, error)
}

// For returns the machine driving sessions of the given kind
func For(kind models.SessionKind) (Machine, error) {
	switch kind {
	case models.KindSurvey:
		return StageMachine{}, nil
	case models.KindQuiz:
		return PointerMachine{}, nil
	default:
		return nil, apperr.Validationf(fmt.Sprintf("unknown session kind %q", kind))
	}
}

// OnTeamRegistered returns the transition triggered by a team joining, if any.
// A quiz leaves draft and starts waiting for the host once the first team registers.
func OnTeamRegistered(s models.Session) (Transition, bool) {
	if s.Kind == models.KindQuiz && s.Status == models.StatusDraft {
		return Transition{Status: models.StatusWaiting, Pointer: s.CurrentOrdinal}, true
	}
	return Transition{}, false
}

// AcceptsTeams reports whether teams may still register
func AcceptsTeams(s models.Session) bool {
	return s.Status != models.StatusCompleted
}

// Running reports whether the session is past start and not yet completed
func Running(s models.Session) bool {
	switch s.Kind {
	case models.KindSurvey:
		return s.Status == models.StatusActive
	case models.KindQuiz:
		return s.Status == models.StatusInProgress
	}
	return false
}

func invalidState(op, status string) error {
	return apperr.InvalidStatef(fmt.Sprintf("cannot %s session in status %s", op, status))
}
