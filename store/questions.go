// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-quiz/models"
)

const questionColumns = `id, session_id, ordinal, content, kind, stage, is_active, synthesized`

func scanQuestion(row interface{ Scan(...any) error }) (models.Question, error) {
	var q models.Question
	var stage sql.NullString
	err := row.Scan(&q.ID, &q.SessionID, &q.Ordinal, &q.Content, &q.Kind, &stage, &q.Active, &q.Synthesized)
	if err != nil {
		return models.Question{}, err
	}
	q.Stage = stage.String
	q.Options = []models.Option{}
	return q, nil
}

func insertQuestion(ctx context.Context, tx *sql.Tx, q models.Question) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO question (id, session_id, ordinal, content, kind, stage, is_active, synthesized)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, q.ID, q.SessionID, q.Ordinal, q.Content, q.Kind, nullString(q.Stage), q.Active, q.Synthesized)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	for _, o := range q.Options {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO question_option (id, question_id, ordinal, text)
			VALUES ($1, $2, $3, $4)
		`, o.ID, q.ID, o.Ordinal, o.Text)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}
	return nil
}

// ListQuestions returns a session's questions ordered by ordinal, options included
func (s *Store) ListQuestions(ctx context.Context, sessionID string) ([]models.Question, error) {
	return listQuestions(ctx, s.db, sessionID)
}

func listQuestions(ctx context.Context, q queryer, sessionID string) ([]models.Question, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+questionColumns+`
		FROM question
		WHERE session_id = $1
		ORDER BY ordinal
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}

	questions := []models.Question{}
	index := make(map[string]int)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		index[question.ID] = len(questions)
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// One pass over every option of the session
	optRows, err := q.QueryContext(ctx, `
		SELECT o.id, o.question_id, o.ordinal, o.text
		FROM question_option o
		JOIN question q ON q.id = o.question_id
		WHERE q.session_id = $1
		ORDER BY o.question_id, o.ordinal
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var o models.Option
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.Ordinal, &o.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if i, ok := index[o.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	return questions, optRows.Err()
}

// GetQuestion loads one question with its options
func (s *Store) GetQuestion(ctx context.Context, id string) (models.Question, error) {
	return getQuestion(ctx, s.db, `WHERE id = $1`, id)
}

// GetSynthesizedQuestion loads the persisted aggregate question of a session
func (s *Store) GetSynthesizedQuestion(ctx context.Context, sessionID string) (models.Question, error) {
	return getQuestion(ctx, s.db, `WHERE session_id = $1 AND synthesized = $2`, sessionID, true)
}

func getQuestion(ctx context.Context, q queryer, where string, args ...any) (models.Question, error) {
	row := q.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM question `+where, args...)
	question, err := scanQuestion(row)
	if err != nil {
		return models.Question{}, notFound(err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, question_id, ordinal, text
		FROM question_option
		WHERE question_id = $1
		ORDER BY ordinal
	`, question.ID)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Ordinal, &o.Text); err != nil {
			return models.Question{}, fmt.Errorf("failed to scan option: %w", err)
		}
		question.Options = append(question.Options, o)
	}
	return question, rows.Err()
}

// CreateSynthesizedQuestion persists the aggregate question of a session at
// most once. If one already exists it is returned unchanged and created is false.
func (s *Store) CreateSynthesizedQuestion(ctx context.Context, q models.Question) (stored models.Question, created bool, err error) {
	q.Synthesized = true

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := getQuestion(ctx, tx, `WHERE session_id = $1 AND synthesized = $2`, q.SessionID, true)
		if err == nil {
			stored = existing
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		if err := insertQuestion(ctx, tx, q); err != nil {
			return err
		}
		stored, created = q, true
		return nil
	})

	// A concurrent writer won the race; the unique index rejected our insert
	if err != nil && isUniqueViolation(err) {
		existing, getErr := s.GetSynthesizedQuestion(ctx, q.SessionID)
		if getErr == nil {
			return existing, false, nil
		}
	}
	if err != nil {
		return models.Question{}, false, err
	}
	return stored, created, nil
}

// CountSynthesizedQuestions is used to check the at-most-once guarantee
func (s *Store) CountSynthesizedQuestions(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM question WHERE session_id = $1 AND synthesized = $2`, sessionID, true).Scan(&n)
	return n, err
}
