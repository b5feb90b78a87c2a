// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-quiz/models"
)

// ReplaceVotes deletes every vote the team cast and inserts the new set,
// updating the team's progress in the same transaction.
func (s *Store) ReplaceVotes(ctx context.Context, teamID string, votes []models.Vote, progress models.TeamProgress) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE team_id = $1`, teamID); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}

		for _, v := range votes {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO vote (id, team_id, answer_id, created_at)
				VALUES ($1, $2, $3, $4)
			`, v.ID, teamID, v.AnswerID, v.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert vote: %w", err)
			}
		}

		return updateTeamProgress(ctx, tx, teamID, progress)
	})
}

// ListVotesBySession returns every vote cast by the session's teams
func (s *Store) ListVotesBySession(ctx context.Context, sessionID string) ([]models.Vote, error) {
	return s.listVotes(ctx, `
		SELECT v.id, v.team_id, v.answer_id, v.created_at
		FROM vote v
		JOIN team t ON t.id = v.team_id
		WHERE t.session_id = $1
		ORDER BY v.created_at, v.id
	`, sessionID)
}

// ListVotesByTeam returns the votes a team cast
func (s *Store) ListVotesByTeam(ctx context.Context, teamID string) ([]models.Vote, error) {
	return s.listVotes(ctx, `
		SELECT id, team_id, answer_id, created_at
		FROM vote
		WHERE team_id = $1
		ORDER BY created_at, id
	`, teamID)
}

func (s *Store) listVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.TeamID, &v.AnswerID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
