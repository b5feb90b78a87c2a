// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/ids"
	"github.com/danielhkuo/quickly-quiz/models"
)

// SubmitVotes replaces every vote a survey team has cast. Nothing is written
// unless every id names a distinct answer to the same survey's prompt.
func (s *Service) SubmitVotes(ctx context.Context, teamID string, answerIDs []string) ([]models.Vote, error) {
	team, sess, err := s.surveyTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.StatusActive || sess.Stage != models.StageVoting {
		return nil, apperr.InvalidStatef("votes are only accepted during the voting stage")
	}

	if len(answerIDs) == 0 {
		return nil, apperr.Validationf("at least one answer must be selected")
	}
	seen := make(map[string]bool, len(answerIDs))
	for _, id := range answerIDs {
		if seen[id] {
			return nil, apperr.Validationf(fmt.Sprintf("answer %s selected twice", id))
		}
		seen[id] = true
	}

	prompt, err := s.promptQuestion(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.GetAnswers(ctx, answerIDs)
	if err != nil {
		return nil, mapErr(err, "answer")
	}
	if len(answers) != len(answerIDs) {
		return nil, apperr.Validationf("one or more answers do not exist")
	}
	for _, a := range answers {
		if a.SessionID != sess.ID || a.QuestionID != prompt.ID {
			return nil, apperr.Validationf(fmt.Sprintf("answer %s does not belong to this survey", a.ID))
		}
	}

	now := time.Now().UTC()
	votes := make([]models.Vote, 0, len(answerIDs))
	for _, id := range answerIDs {
		votes = append(votes, models.Vote{
			ID:        ids.MustID(),
			TeamID:    team.ID,
			AnswerID:  id,
			CreatedAt: now,
		})
	}

	progress := team.Progress.MarkAnswered(models.StageVoting)
	if err := s.store.ReplaceVotes(ctx, team.ID, votes, progress); err != nil {
		slog.Error("failed to store votes", "team_id", team.ID, "error", err)
		return nil, mapErr(err, "team")
	}

	slog.Info("votes submitted", "session_id", sess.ID, "team_id", team.ID, "count", len(votes))
	s.notify.VotesSubmitted(sess.ID, team.ID)
	return votes, nil
}
