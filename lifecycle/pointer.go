// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/models"
)

// PointerMachine drives quizzes: draft → waiting → in_progress → completed,
// with a pointer over question ordinals. Advancing off the last authored
// question moves the pointer one past it, where the synthesized question lives.
type PointerMachine struct{}

func (PointerMachine) Start(s models.Session, qs []models.Question) (Transition, error) {
	if s.Status != models.StatusWaiting {
		return Transition{}, invalidState("start", s.Status)
	}

	concrete := authored(qs)
	if len(concrete) == 0 {
		return Transition{}, apperr.InvalidStatef("no questions")
	}

	first := concrete[0].Ordinal
	for _, q := range concrete[1:] {
		if q.Ordinal < first {
			first = q.Ordinal
		}
	}

	return Transition{Status: models.StatusInProgress, Pointer: &first}, nil
}

func (PointerMachine) Advance(s models.Session, qs []models.Question) (Transition, error) {
	if s.Status != models.StatusInProgress {
		return Transition{}, invalidState("advance", s.Status)
	}
	if s.CurrentOrdinal == nil {
		return Transition{}, apperr.NotFoundf("current question not found")
	}

	concrete := authored(qs)
	if len(concrete) == 0 {
		return Transition{}, apperr.NotFoundf("no questions")
	}

	cur := *s.CurrentOrdinal
	last := maxOrdinal(concrete)

	if cur > last {
		return Transition{}, apperr.InvalidStatef("already at the last question")
	}
	if !hasOrdinal(concrete, cur) {
		return Transition{}, apperr.NotFoundf("current question not found")
	}

	if cur == last {
		next := last + 1
		return Transition{
			Status:       models.StatusInProgress,
			Pointer:      &next,
			SynthesizeAt: &next,
		}, nil
	}

	next, ok := nextOrdinal(concrete, cur)
	if !ok {
		return Transition{}, apperr.NotFoundf("next question not found")
	}
	return Transition{Status: models.StatusInProgress, Pointer: &next}, nil
}

func (PointerMachine) Finish(s models.Session) (Transition, error) {
	if s.Status != models.StatusInProgress {
		return Transition{}, invalidState("finish", s.Status)
	}
	return Transition{Status: models.StatusCompleted, Pointer: s.CurrentOrdinal}, nil
}

func (PointerMachine) Current(s models.Session, qs []models.Question) (Cursor, error) {
	if s.Status != models.StatusInProgress {
		return Cursor{}, invalidState("read the current question of", s.Status)
	}
	if s.CurrentOrdinal == nil {
		return Cursor{}, apperr.NotFoundf("current question not found")
	}
	if len(qs) == 0 {
		return Cursor{}, apperr.NotFoundf("no questions")
	}

	cur := *s.CurrentOrdinal
	concrete := authored(qs)
	if len(concrete) == 0 || cur > maxOrdinal(concrete) {
		return Cursor{Synthesize: true, Ordinal: cur}, nil
	}

	for i := range qs {
		if qs[i].Ordinal == cur && !qs[i].Synthesized {
			return Cursor{Question: &qs[i], Ordinal: cur}, nil
		}
	}
	return Cursor{}, apperr.NotFoundf("current question not found")
}

// authored drops the synthesized question so ordinal arithmetic only sees
// questions created with the session.
func authored(qs []models.Question) []models.Question {
	out := make([]models.Question, 0, len(qs))
	for _, q := range qs {
		if !q.Synthesized {
			out = append(out, q)
		}
	}
	return out
}

func maxOrdinal(qs []models.Question) int {
	highest := qs[0].Ordinal
	for _, q := range qs[1:] {
		if q.Ordinal > highest {
			highest = q.Ordinal
		}
	}
	return highest
}

func hasOrdinal(qs []models.Question, ord int) bool {
	for _, q := range qs {
		if q.Ordinal == ord {
			return true
		}
	}
	return false
}

func nextOrdinal(qs []models.Question, cur int) (int, bool) {
	found := false
	next := 0
	for _, q := range qs {
		if q.Ordinal > cur && (!found || q.Ordinal < next) {
			next = q.Ordinal
			found = true
		}
	}
	return next, found
}
