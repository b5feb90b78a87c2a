// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"fmt"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/models"
)

// StageMachine drives surveys: draft → active → completed, crossed with the
// stage sequence question → voting → results. Each stage has one question
// (the prompt or a stage marker) that is active while the stage is current.
type StageMachine struct{}

func (StageMachine) Start(s models.Session, qs []models.Question) (Transition, error) {
	if s.Status != models.StatusDraft {
		return Transition{}, invalidState("start", s.Status)
	}

	first := models.Stages[0]
	q := questionForStage(qs, first)
	if q == nil {
		return Transition{}, apperr.NotFoundf(fmt.Sprintf("no question for stage %s", first))
	}

	return Transition{
		Status:             models.StatusActive,
		Stage:              first,
		DeactivateAll:      true,
		ActivateQuestionID: q.ID,
	}, nil
}

func (StageMachine) Advance(s models.Session, qs []models.Question) (Transition, error) {
	if s.Status != models.StatusActive {
		return Transition{}, invalidState("advance", s.Status)
	}

	idx := stageIndex(s.Stage)
	if idx < 0 {
		return Transition{}, apperr.InvalidStatef(fmt.Sprintf("unknown stage %q", s.Stage))
	}
	if idx >= len(models.Stages)-1 {
		return Transition{}, apperr.InvalidStatef("survey is already at the final stage")
	}

	next := models.Stages[idx+1]
	q := questionForStage(qs, next)
	if q == nil {
		return Transition{}, apperr.NotFoundf(fmt.Sprintf("no question for stage %s", next))
	}

	return Transition{
		Status:             models.StatusActive,
		Stage:              next,
		DeactivateAll:      true,
		ActivateQuestionID: q.ID,
	}, nil
}

func (StageMachine) Finish(s models.Session) (Transition, error) {
	if s.Status != models.StatusActive {
		return Transition{}, invalidState("finish", s.Status)
	}
	return Transition{
		Status:        models.StatusCompleted,
		Stage:         s.Stage,
		DeactivateAll: true,
	}, nil
}

func (StageMachine) Current(s models.Session, qs []models.Question) (Cursor, error) {
	if s.Status != models.StatusActive {
		return Cursor{}, invalidState("read the current question of", s.Status)
	}
	for i := range qs {
		if qs[i].Active {
			return Cursor{Question: &qs[i], Ordinal: qs[i].Ordinal}, nil
		}
	}
	return Cursor{}, apperr.NotFoundf("no active question")
}

func stageIndex(stage string) int {
	for i, st := range models.Stages {
		if st == stage {
			return i
		}
	}
	return -1
}

func questionForStage(qs []models.Question, stage string) *models.Question {
	for i := range qs {
		if qs[i].Stage == stage {
			return &qs[i]
		}
	}
	return nil
}
