// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/ids"
	"github.com/danielhkuo/quickly-quiz/lifecycle"
	"github.com/danielhkuo/quickly-quiz/models"
)

// SubmitAnswer records one answer to one question, replacing any earlier
// answer by the same participant (or, for team-owned quiz answers, the same
// team). Survey teams answer as a set through SubmitTeamAnswers.
func (s *Service) SubmitAnswer(ctx context.Context, req models.SubmitAnswerRequest) (models.Answer, error) {
	if req.QuestionID == "" {
		return models.Answer{}, apperr.Validationf("question_id is required")
	}

	team, participantID, err := s.answerOwner(ctx, req)
	if err != nil {
		return models.Answer{}, err
	}

	sess, err := s.reader.GetSession(ctx, team.SessionID)
	if err != nil {
		return models.Answer{}, err
	}

	q, err := s.store.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		return models.Answer{}, mapErr(err, "question")
	}
	if q.SessionID != sess.ID {
		return models.Answer{}, apperr.Validationf("question does not belong to this session")
	}

	if !lifecycle.Running(sess) {
		return models.Answer{}, apperr.InvalidStatef(fmt.Sprintf("session is not accepting answers (status %s)", sess.Status))
	}
	if sess.Kind == models.KindSurvey {
		if sess.Stage != models.StageQuestion {
			return models.Answer{}, apperr.InvalidStatef(fmt.Sprintf("answers are closed in stage %s", sess.Stage))
		}
		if q.Stage != models.StageQuestion {
			return models.Answer{}, apperr.Validationf("question does not accept answers")
		}
		if participantID == nil {
			return models.Answer{}, apperr.Validationf("survey teams submit their answer set through /teams/{id}/answers")
		}
	}

	a := models.Answer{
		ID:            ids.MustID(),
		SessionID:     sess.ID,
		TeamID:        team.ID,
		ParticipantID: participantID,
		QuestionID:    q.ID,
		CreatedAt:     time.Now().UTC(),
	}

	switch q.Kind {
	case models.QuestionFreeText:
		a.Content = strings.TrimSpace(req.Content)
		if a.Content == "" {
			return models.Answer{}, apperr.Validationf("text_answer is required")
		}
	case models.QuestionMultipleChoice:
		selected, err := validSelection(q, req.SelectedOptions)
		if err != nil {
			return models.Answer{}, err
		}
		a.SelectedOptions = selected
	default:
		return models.Answer{}, apperr.Validationf(fmt.Sprintf("questions of type %s take no answers", q.Kind))
	}

	stored, err := s.store.SaveAnswer(ctx, a, team.Progress.MarkAnswered(models.StageQuestion))
	if err != nil {
		slog.Error("failed to store answer", "question_id", q.ID, "team_id", team.ID, "error", err)
		return models.Answer{}, mapErr(err, "answer")
	}

	slog.Info("answer submitted", "session_id", sess.ID, "team_id", team.ID, "question_id", q.ID)
	s.notify.AnswerSubmitted(sess.ID, team.ID)
	return stored, nil
}

// answerOwner resolves the team an answer belongs to, and the participant
// when the answer is participant-owned.
func (s *Service) answerOwner(ctx context.Context, req models.SubmitAnswerRequest) (models.Team, *string, error) {
	switch {
	case req.ParticipantID != "":
		p, err := s.store.GetParticipant(ctx, req.ParticipantID)
		if err != nil {
			return models.Team{}, nil, mapErr(err, "participant")
		}
		if req.TeamID != "" && req.TeamID != p.TeamID {
			return models.Team{}, nil, apperr.Validationf("participant does not belong to this team")
		}
		team, err := s.reader.GetTeam(ctx, p.TeamID)
		if err != nil {
			return models.Team{}, nil, err
		}
		return team, &p.ID, nil
	case req.TeamID != "":
		team, err := s.reader.GetTeam(ctx, req.TeamID)
		if err != nil {
			return models.Team{}, nil, err
		}
		return team, nil, nil
	default:
		return models.Team{}, nil, apperr.Validationf("participant_id or team_id is required")
	}
}

// validSelection checks that every selected id is a distinct option of q
func validSelection(q models.Question, selected []string) ([]string, error) {
	if len(selected) == 0 {
		return nil, apperr.Validationf("selected_options is required")
	}

	known := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		known[o.ID] = true
	}

	seen := make(map[string]bool, len(selected))
	out := make([]string, 0, len(selected))
	for _, id := range selected {
		if !known[id] {
			return nil, apperr.Validationf(fmt.Sprintf("option %s does not belong to this question", id))
		}
		if seen[id] {
			return nil, apperr.Validationf(fmt.Sprintf("option %s selected twice", id))
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// SubmitTeamAnswers replaces a survey team's answers to the prompt with a new
// set. Blank entries are dropped.
func (s *Service) SubmitTeamAnswers(ctx context.Context, teamID string, texts []string) (int, error) {
	team, sess, err := s.surveyTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	if sess.Status != models.StatusActive || sess.Stage != models.StageQuestion {
		return 0, apperr.InvalidStatef("answers are only accepted during the question stage")
	}

	prompt, err := s.promptQuestion(ctx, sess.ID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	answers := make([]models.Answer, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		answers = append(answers, models.Answer{
			ID:         ids.MustID(),
			SessionID:  sess.ID,
			TeamID:     team.ID,
			QuestionID: prompt.ID,
			Content:    text,
			CreatedAt:  now,
		})
	}
	if len(answers) == 0 {
		return 0, apperr.Validationf("at least one answer is required")
	}

	progress := team.Progress.MarkAnswered(models.StageQuestion)
	if err := s.store.ReplaceTeamAnswers(ctx, team.ID, prompt.ID, answers, progress); err != nil {
		slog.Error("failed to store team answers", "team_id", team.ID, "error", err)
		return 0, mapErr(err, "team")
	}

	slog.Info("team answers submitted", "session_id", sess.ID, "team_id", team.ID, "count", len(answers))
	s.notify.AnswerSubmitted(sess.ID, team.ID)
	return len(answers), nil
}

// AvailableAnswers lists every answer to a survey's prompt, as offered for voting
func (s *Service) AvailableAnswers(ctx context.Context, teamID string) ([]models.AnswerView, error) {
	_, sess, err := s.surveyTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.promptQuestion(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.ListAnswersByQuestion(ctx, prompt.ID)
	if err != nil {
		return nil, mapErr(err, "question")
	}
	teams, err := s.reader.ListTeams(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	views := make([]models.AnswerView, 0, len(answers))
	for _, a := range answers {
		views = append(views, models.AnswerView{ID: a.ID, Content: a.Content, TeamName: names[a.TeamID]})
	}
	return views, nil
}

// surveyTeam loads a team and its session, rejecting teams of quizzes
func (s *Service) surveyTeam(ctx context.Context, teamID string) (models.Team, models.Session, error) {
	team, err := s.reader.GetTeam(ctx, teamID)
	if err != nil {
		return models.Team{}, models.Session{}, err
	}
	sess, err := s.reader.GetSession(ctx, team.SessionID)
	if err != nil {
		return models.Team{}, models.Session{}, err
	}
	if sess.Kind != models.KindSurvey {
		return models.Team{}, models.Session{}, apperr.Validationf("operation is only available for surveys")
	}
	return team, sess, nil
}

// promptQuestion returns the survey question collected during the question stage
func (s *Service) promptQuestion(ctx context.Context, sessionID string) (models.Question, error) {
	qs, err := s.store.ListQuestions(ctx, sessionID)
	if err != nil {
		return models.Question{}, mapErr(err, "session")
	}
	for _, q := range qs {
		if q.Stage == models.StageQuestion {
			return q, nil
		}
	}
	return models.Question{}, apperr.NotFoundf("survey question not found")
}
