// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/stats"
	"github.com/danielhkuo/quickly-quiz/store"
)

// QuestionStatistics aggregates the answers to one multiple-choice question
func (s *Service) QuestionStatistics(ctx context.Context, questionID string) (models.ChoiceStatistics, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return models.ChoiceStatistics{}, mapErr(err, "question")
	}
	if q.Kind != models.QuestionMultipleChoice {
		return models.ChoiceStatistics{}, apperr.Validationf("statistics are only available for multiple_choice questions")
	}

	sess, err := s.reader.GetSession(ctx, q.SessionID)
	if err != nil {
		return models.ChoiceStatistics{}, err
	}
	if err := s.checkPolicy(sess); err != nil {
		return models.ChoiceStatistics{}, err
	}

	answers, err := s.store.ListAnswersByQuestion(ctx, q.ID)
	if err != nil {
		return models.ChoiceStatistics{}, mapErr(err, "question")
	}
	return stats.Choice(q, answers), nil
}

// SessionStatistics returns the synthesized question's results for a quiz
// and the vote results for a survey.
func (s *Service) SessionStatistics(ctx context.Context, sessionID string) (models.SessionStatistics, error) {
	sess, err := s.reader.GetSession(ctx, sessionID)
	if err != nil {
		return models.SessionStatistics{}, err
	}
	if err := s.checkPolicy(sess); err != nil {
		return models.SessionStatistics{}, err
	}

	out := models.SessionStatistics{SessionID: sess.ID, Kind: sess.Kind}

	switch sess.Kind {
	case models.KindQuiz:
		q, err := s.store.GetSynthesizedQuestion(ctx, sess.ID)
		if errors.Is(err, store.ErrNotFound) {
			return models.SessionStatistics{}, apperr.NotFoundf("no statistics available")
		}
		if err != nil {
			return models.SessionStatistics{}, mapErr(err, "question")
		}
		answers, err := s.store.ListAnswersByQuestion(ctx, q.ID)
		if err != nil {
			return models.SessionStatistics{}, mapErr(err, "question")
		}
		choice := stats.Choice(q, answers)
		out.Choice = &choice

	case models.KindSurvey:
		prompt, err := s.promptQuestion(ctx, sess.ID)
		if err != nil {
			return models.SessionStatistics{}, err
		}
		answers, err := s.store.ListAnswersByQuestion(ctx, prompt.ID)
		if err != nil {
			return models.SessionStatistics{}, mapErr(err, "question")
		}
		votes, err := s.store.ListVotesBySession(ctx, sess.ID)
		if err != nil {
			return models.SessionStatistics{}, mapErr(err, "session")
		}
		teams, err := s.reader.ListTeams(ctx, sess.ID)
		if err != nil {
			return models.SessionStatistics{}, err
		}
		results := stats.Votes(answers, votes, teams)
		out.Votes = &results

	default:
		return models.SessionStatistics{}, apperr.Validationf("statistics are not available for this session")
	}

	return out, nil
}

func (s *Service) checkPolicy(sess models.Session) error {
	if !s.opts.StatsPolicy.Allows(sess.Status) {
		return apperr.Forbiddenf("statistics are available once the session is completed")
	}
	return nil
}
