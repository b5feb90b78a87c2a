// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-quiz/models"
)

const answerColumns = `id, session_id, team_id, participant_id, question_id, content, selected_options, created_at`

func scanAnswer(row interface{ Scan(...any) error }) (models.Answer, error) {
	var a models.Answer
	var participant sql.NullString
	var selected string

	err := row.Scan(&a.ID, &a.SessionID, &a.TeamID, &participant, &a.QuestionID, &a.Content, &selected, &a.CreatedAt)
	if err != nil {
		return models.Answer{}, err
	}
	if participant.Valid {
		p := participant.String
		a.ParticipantID = &p
	}
	if selected != "" {
		if err := json.Unmarshal([]byte(selected), &a.SelectedOptions); err != nil {
			return models.Answer{}, fmt.Errorf("failed to decode selected options: %w", err)
		}
	}
	return a, nil
}

func encodeSelected(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	return string(b), err
}

func participantArg(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// UpsertAnswer stores an answer, overwriting the previous one by the same
// participant (or, for team-owned answers, the same team) to the same question.
// The returned answer keeps the id of the row it replaced.
func (s *Store) UpsertAnswer(ctx context.Context, a models.Answer) (models.Answer, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := upsertAnswer(ctx, tx, a)
		a.ID = id
		return err
	})
	if err != nil {
		return models.Answer{}, err
	}
	return a, nil
}

// SaveAnswer upserts an answer and overwrites its team's progress in one
// transaction
func (s *Store) SaveAnswer(ctx context.Context, a models.Answer, progress models.TeamProgress) (models.Answer, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := upsertAnswer(ctx, tx, a)
		if err != nil {
			return err
		}
		a.ID = id
		return updateTeamProgress(ctx, tx, a.TeamID, progress)
	})
	if err != nil {
		return models.Answer{}, err
	}
	return a, nil
}

// upsertAnswer returns the id of the stored row. Participant-owned answers
// rely on idx_answer_participant_question; team-owned ones replace the
// team's earliest row for the question.
func upsertAnswer(ctx context.Context, tx *sql.Tx, a models.Answer) (string, error) {
	selected, err := encodeSelected(a.SelectedOptions)
	if err != nil {
		return "", fmt.Errorf("failed to encode selected options: %w", err)
	}

	if a.ParticipantID != nil {
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO answer (id, session_id, team_id, participant_id, question_id, content, selected_options, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (question_id, participant_id) WHERE participant_id IS NOT NULL
			DO UPDATE SET content = excluded.content, selected_options = excluded.selected_options, created_at = excluded.created_at
			RETURNING id
		`, a.ID, a.SessionID, a.TeamID, *a.ParticipantID, a.QuestionID, a.Content, selected, a.CreatedAt).Scan(&id)
		if err != nil {
			return "", fmt.Errorf("failed to upsert answer: %w", err)
		}
		return id, nil
	}

	var existingID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM answer
		WHERE question_id = $1 AND team_id = $2 AND participant_id IS NULL
		ORDER BY created_at, id
		LIMIT 1
	`, a.QuestionID, a.TeamID).Scan(&existingID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO answer (id, session_id, team_id, participant_id, question_id, content, selected_options, created_at)
			VALUES ($1, $2, $3, NULL, $4, $5, $6, $7)
		`, a.ID, a.SessionID, a.TeamID, a.QuestionID, a.Content, selected, a.CreatedAt)
		if err != nil {
			return "", fmt.Errorf("failed to insert answer: %w", err)
		}
		return a.ID, nil
	case err != nil:
		return "", fmt.Errorf("failed to query answer: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE answer SET content = $1, selected_options = $2, created_at = $3 WHERE id = $4
	`, a.Content, selected, a.CreatedAt, existingID)
	if err != nil {
		return "", fmt.Errorf("failed to update answer: %w", err)
	}
	return existingID, nil
}

// ReplaceTeamAnswers deletes every answer a team gave to a question and inserts
// the new set, updating the team's progress in the same transaction. Votes on
// the removed answers go with them.
func (s *Store) ReplaceTeamAnswers(ctx context.Context, teamID, questionID string, answers []models.Answer, progress models.TeamProgress) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM answer WHERE team_id = $1 AND question_id = $2`, teamID, questionID)
		if err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}

		for _, a := range answers {
			selected, err := encodeSelected(a.SelectedOptions)
			if err != nil {
				return fmt.Errorf("failed to encode selected options: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO answer (id, session_id, team_id, participant_id, question_id, content, selected_options, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, a.ID, a.SessionID, teamID, participantArg(a.ParticipantID), questionID, a.Content, selected, a.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert answer: %w", err)
			}
		}

		return updateTeamProgress(ctx, tx, teamID, progress)
	})
}

// ListAnswersBySession returns every answer in a session in submission order
func (s *Store) ListAnswersBySession(ctx context.Context, sessionID string) ([]models.Answer, error) {
	return s.listAnswers(ctx, `WHERE session_id = $1`, sessionID)
}

// ListAnswersByQuestion returns the answers to one question in submission order
func (s *Store) ListAnswersByQuestion(ctx context.Context, questionID string) ([]models.Answer, error) {
	return s.listAnswers(ctx, `WHERE question_id = $1`, questionID)
}

// GetAnswers loads the answers with the given ids; missing ids are skipped
func (s *Store) GetAnswers(ctx context.Context, ids []string) ([]models.Answer, error) {
	if len(ids) == 0 {
		return []models.Answer{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.listAnswers(ctx, `WHERE id IN (`+placeholders(1, len(ids))+`)`, args...)
}

func (s *Store) listAnswers(ctx context.Context, where string, args ...any) ([]models.Answer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+answerColumns+` FROM answer `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
