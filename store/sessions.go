// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-quiz/lifecycle"
	"github.com/danielhkuo/quickly-quiz/models"
)

const sessionColumns = `id, kind, title, invite_code, status, current_stage, current_ordinal, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (models.Session, error) {
	var s models.Session
	var stage sql.NullString
	var ordinal sql.NullInt64

	err := row.Scan(&s.ID, &s.Kind, &s.Title, &s.InviteCode, &s.Status, &stage, &ordinal, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return models.Session{}, err
	}
	s.Stage = stage.String
	if ordinal.Valid {
		o := int(ordinal.Int64)
		s.CurrentOrdinal = &o
	}
	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// CreateSession inserts a session together with its questions and their options
func (s *Store) CreateSession(ctx context.Context, sess models.Session, questions []models.Question) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quiz_session (id, kind, title, invite_code, status, current_stage, current_ordinal, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, sess.ID, sess.Kind, sess.Title, sess.InviteCode, sess.Status,
			nullString(sess.Stage), nullInt(sess.CurrentOrdinal), sess.CreatedAt, sess.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		for _, q := range questions {
			if err := insertQuestion(ctx, tx, q); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetSession loads a session by id
func (s *Store) GetSession(ctx context.Context, id string) (models.Session, error) {
	return getSession(ctx, s.db, id)
}

func getSession(ctx context.Context, q queryer, id string) (models.Session, error) {
	row := q.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM quiz_session WHERE id = $1`, id)
	sess, err := scanSession(row)
	if err != nil {
		return models.Session{}, notFound(err)
	}
	return sess, nil
}

// GetSessionByCode loads a session by its invite code
func (s *Store) GetSessionByCode(ctx context.Context, code string) (models.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM quiz_session WHERE invite_code = $1`, code)
	sess, err := scanSession(row)
	if err != nil {
		return models.Session{}, notFound(err)
	}
	return sess, nil
}

// InviteCodeExists reports whether any session already uses code
func (s *Store) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quiz_session WHERE invite_code = $1`, code).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ApplyTransition writes the status, stage, pointer, and active question of a
// session in one transaction.
func (s *Store) ApplyTransition(ctx context.Context, sessionID string, tr lifecycle.Transition) (models.Session, error) {
	var updated models.Session

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE quiz_session
			SET status = $1, current_stage = $2, current_ordinal = $3, updated_at = $4
			WHERE id = $5
		`, tr.Status, nullString(tr.Stage), nullInt(tr.Pointer), time.Now().UTC(), sessionID)
		if err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}

		if tr.DeactivateAll {
			if _, err := tx.ExecContext(ctx, `UPDATE question SET is_active = $1 WHERE session_id = $2`, false, sessionID); err != nil {
				return fmt.Errorf("failed to deactivate questions: %w", err)
			}
		}
		if tr.ActivateQuestionID != "" {
			if _, err := tx.ExecContext(ctx, `UPDATE question SET is_active = $1 WHERE id = $2 AND session_id = $3`,
				true, tr.ActivateQuestionID, sessionID); err != nil {
				return fmt.Errorf("failed to activate question: %w", err)
			}
		}

		updated, err = getSession(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		return models.Session{}, err
	}
	return updated, nil
}

// DeleteSession removes a session; foreign keys cascade to everything it owns
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quiz_session WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
