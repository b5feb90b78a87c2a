// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/lifecycle"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/store"
	"github.com/danielhkuo/quickly-quiz/synth"
)

// load returns a session, its questions, and the machine that drives it
func (s *Service) load(ctx context.Context, id string) (models.Session, []models.Question, lifecycle.Machine, error) {
	sess, err := s.reader.GetSession(ctx, id)
	if err != nil {
		return models.Session{}, nil, nil, err
	}
	qs, err := s.store.ListQuestions(ctx, id)
	if err != nil {
		return models.Session{}, nil, nil, mapErr(err, "session")
	}
	m, err := lifecycle.For(sess.Kind)
	if err != nil {
		return models.Session{}, nil, nil, err
	}
	return sess, qs, m, nil
}

// StartSession moves a survey from draft or a quiz from waiting into its running state
func (s *Service) StartSession(ctx context.Context, id string) (models.Session, error) {
	sess, qs, m, err := s.load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}

	tr, err := m.Start(sess, qs)
	if err != nil {
		return models.Session{}, err
	}

	updated, err := s.apply(ctx, id, tr)
	if err != nil {
		return models.Session{}, err
	}

	slog.Info("session started", "session_id", id, "kind", sess.Kind)
	s.notify.SessionChanged(id, models.EventSessionStarted)
	return updated, nil
}

// AdvanceSession moves a survey one stage forward or a quiz to its next
// question. Advancing off the last authored quiz question materializes the
// synthesized question before the pointer moves onto it.
func (s *Service) AdvanceSession(ctx context.Context, id string) (models.Session, error) {
	sess, qs, m, err := s.load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}

	tr, err := m.Advance(sess, qs)
	if err != nil {
		return models.Session{}, err
	}

	if tr.SynthesizeAt != nil {
		if _, err := s.persistSynthesized(ctx, id, *tr.SynthesizeAt, qs); err != nil {
			return models.Session{}, err
		}
	}

	updated, err := s.apply(ctx, id, tr)
	if err != nil {
		return models.Session{}, err
	}

	event := models.EventQuestionChanged
	if sess.Kind == models.KindSurvey {
		event = models.EventStageChanged
	}

	if updated.CurrentOrdinal != nil {
		slog.Info("session advanced", "session_id", id, "ordinal", *updated.CurrentOrdinal)
	} else {
		slog.Info("session advanced", "session_id", id, "stage", updated.Stage)
	}
	s.notify.SessionChanged(id, event)
	return updated, nil
}

// FinishSession completes a running session
func (s *Service) FinishSession(ctx context.Context, id string) (models.Session, error) {
	sess, _, m, err := s.load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}

	tr, err := m.Finish(sess)
	if err != nil {
		return models.Session{}, err
	}

	updated, err := s.apply(ctx, id, tr)
	if err != nil {
		return models.Session{}, err
	}

	slog.Info("session completed", "session_id", id)
	s.notify.SessionChanged(id, models.EventSessionCompleted)
	return updated, nil
}

func (s *Service) apply(ctx context.Context, id string, tr lifecycle.Transition) (models.Session, error) {
	updated, err := s.store.ApplyTransition(ctx, id, tr)
	if err != nil {
		slog.Error("failed to apply transition", "session_id", id, "status", tr.Status, "error", err)
		return models.Session{}, mapErr(err, "session")
	}
	return updated, nil
}

// CurrentQuestion returns the question a running session is on. For a quiz
// past its last authored question this is the synthesized question, loaded
// if persisted and derived from the current answers otherwise.
func (s *Service) CurrentQuestion(ctx context.Context, sessionID string) (models.Question, error) {
	sess, qs, m, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Question{}, err
	}

	cur, err := m.Current(sess, qs)
	if err != nil {
		return models.Question{}, err
	}
	if !cur.Synthesize {
		return *cur.Question, nil
	}

	stored, err := s.store.GetSynthesizedQuestion(ctx, sessionID)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Question{}, mapErr(err, "question")
	}

	return s.deriveSynthesized(ctx, sessionID, cur.Ordinal, qs)
}

func (s *Service) deriveSynthesized(ctx context.Context, sessionID string, ordinal int, qs []models.Question) (models.Question, error) {
	if len(qs) == 0 {
		return models.Question{}, apperr.NotFoundf("no questions")
	}
	answers, err := s.store.ListAnswersBySession(ctx, sessionID)
	if err != nil {
		return models.Question{}, mapErr(err, "session")
	}
	return synth.Derive(sessionID, ordinal, synth.AnswerTexts(answers, qs))
}

// persistSynthesized derives and stores the synthesized question. A second
// call for the same session returns the stored question unchanged.
func (s *Service) persistSynthesized(ctx context.Context, sessionID string, ordinal int, qs []models.Question) (models.Question, error) {
	q, err := s.deriveSynthesized(ctx, sessionID, ordinal, qs)
	if err != nil {
		return models.Question{}, err
	}

	stored, created, err := s.store.CreateSynthesizedQuestion(ctx, q)
	if err != nil {
		slog.Error("failed to persist synthesized question", "session_id", sessionID, "error", err)
		return models.Question{}, mapErr(err, "question")
	}
	if created {
		slog.Info("synthesized question created", "session_id", sessionID, "ordinal", ordinal, "options", len(stored.Options))
	}
	return stored, nil
}
