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
	"github.com/danielhkuo/quickly-quiz/models"
)

// DefaultPrompt is the survey prompt used when none is supplied
const DefaultPrompt = "What should our team focus on next?"

const maxInviteAttempts = 10

// CreateSession validates the request and stores a new draft session with
// its questions. Surveys get their prompt and stage marker questions here.
func (s *Service) CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.SessionWithQuestions, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.SessionWithQuestions{}, apperr.Validationf("title is required")
	}

	kind := req.Kind
	if kind == "" {
		kind = models.KindQuiz
	}

	id, err := ids.GenerateID(16)
	if err != nil {
		return models.SessionWithQuestions{}, apperr.Internalf("Failed to generate session ID", err)
	}

	var questions []models.Question
	switch kind {
	case models.KindQuiz:
		questions, err = quizQuestions(id, req.Questions)
	case models.KindSurvey:
		questions, err = surveyQuestions(id, req.Prompt)
	default:
		err = apperr.Validationf(fmt.Sprintf("unknown session kind %q", kind))
	}
	if err != nil {
		return models.SessionWithQuestions{}, err
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return models.SessionWithQuestions{}, err
	}

	now := time.Now().UTC()
	sess := models.Session{
		ID:         id,
		Kind:       kind,
		Title:      title,
		InviteCode: code,
		Status:     models.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateSession(ctx, sess, questions); err != nil {
		slog.Error("failed to create session", "error", err)
		return models.SessionWithQuestions{}, mapErr(err, "session")
	}

	slog.Info("session created", "session_id", id, "kind", kind, "invite_code", code, "questions", len(questions))

	return models.SessionWithQuestions{Session: sess, Questions: questions}, nil
}

func (s *Service) uniqueInviteCode(ctx context.Context) (string, error) {
	for range maxInviteAttempts {
		code, err := ids.GenerateInviteCode()
		if err != nil {
			return "", apperr.Internalf("Failed to generate invite code", err)
		}
		exists, err := s.store.InviteCodeExists(ctx, code)
		if err != nil {
			return "", apperr.Internalf("Database error", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperr.Internalf("Failed to generate invite code", fmt.Errorf("%d collisions", maxInviteAttempts))
}

// quizQuestions validates authored quiz questions. Ordinals are assigned 1..n
// when every input omits them; otherwise they must strictly increase.
func quizQuestions(sessionID string, inputs []models.QuestionInput) ([]models.Question, error) {
	if len(inputs) == 0 {
		return nil, apperr.Validationf("at least one question is required")
	}

	autoOrder := true
	for _, in := range inputs {
		if in.Ordinal != 0 {
			autoOrder = false
			break
		}
	}

	questions := make([]models.Question, 0, len(inputs))
	prev := 0
	for i, in := range inputs {
		ordinal := in.Ordinal
		if autoOrder {
			ordinal = i + 1
		}
		if ordinal < 1 {
			return nil, apperr.Validationf(fmt.Sprintf("question %d: order must be positive", i+1))
		}
		if i > 0 && ordinal <= prev {
			return nil, apperr.Validationf(fmt.Sprintf("question %d: order must be unique and increasing", i+1))
		}
		prev = ordinal

		content := strings.TrimSpace(in.Content)
		if content == "" {
			return nil, apperr.Validationf(fmt.Sprintf("question %d: text is required", i+1))
		}

		kind := in.Kind
		if kind == "" {
			kind = models.QuestionFreeText
		}

		q := models.Question{
			ID:        ids.MustID(),
			SessionID: sessionID,
			Ordinal:   ordinal,
			Content:   content,
			Kind:      kind,
			Options:   []models.Option{},
		}

		switch kind {
		case models.QuestionFreeText:
			if len(in.Options) > 0 {
				return nil, apperr.Validationf(fmt.Sprintf("question %d: free_text questions take no options", i+1))
			}
		case models.QuestionMultipleChoice:
			if len(in.Options) == 0 {
				return nil, apperr.Validationf(fmt.Sprintf("question %d: multiple_choice questions need options", i+1))
			}
			for j, text := range in.Options {
				text = strings.TrimSpace(text)
				if text == "" {
					return nil, apperr.Validationf(fmt.Sprintf("question %d: option %d is empty", i+1, j+1))
				}
				q.Options = append(q.Options, models.Option{
					ID:         ids.MustID(),
					QuestionID: q.ID,
					Ordinal:    j,
					Text:       text,
				})
			}
		default:
			return nil, apperr.Validationf(fmt.Sprintf("question %d: unsupported type %q", i+1, kind))
		}

		questions = append(questions, q)
	}
	return questions, nil
}

// surveyQuestions builds the prompt question plus one marker per later stage
func surveyQuestions(sessionID, prompt string) ([]models.Question, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}

	questions := []models.Question{{
		Content: prompt,
		Kind:    models.QuestionFreeText,
		Stage:   models.StageQuestion,
	}}
	for _, stage := range models.Stages[1:] {
		questions = append(questions, models.Question{
			Content: stageMarkerText(stage),
			Kind:    models.QuestionStageMarker,
			Stage:   stage,
		})
	}

	for i := range questions {
		questions[i].ID = ids.MustID()
		questions[i].SessionID = sessionID
		questions[i].Ordinal = i + 1
		questions[i].Options = []models.Option{}
	}
	return questions, nil
}

func stageMarkerText(stage string) string {
	switch stage {
	case models.StageVoting:
		return "Voting"
	case models.StageResults:
		return "Results"
	}
	return stage
}

// GetSession returns a session with its ordered questions
func (s *Service) GetSession(ctx context.Context, id string) (models.SessionWithQuestions, error) {
	sess, err := s.reader.GetSession(ctx, id)
	if err != nil {
		return models.SessionWithQuestions{}, err
	}
	qs, err := s.store.ListQuestions(ctx, id)
	if err != nil {
		return models.SessionWithQuestions{}, mapErr(err, "session")
	}
	return models.SessionWithQuestions{Session: sess, Questions: qs}, nil
}

// GetSessionByCode resolves an invite code to its session
func (s *Service) GetSessionByCode(ctx context.Context, code string) (models.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !ids.ValidInviteCode(code) {
		return models.Session{}, apperr.NotFoundf("session not found")
	}
	sess, err := s.store.GetSessionByCode(ctx, code)
	return sess, mapErr(err, "session")
}

// DeleteSession removes a session and everything it owns
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return mapErr(err, "session")
	}
	slog.Info("session deleted", "session_id", id)
	return nil
}
