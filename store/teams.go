// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-quiz/models"
)

const teamColumns = `id, session_id, name, question_status, voting_status, joined_at`

func scanTeam(row interface{ Scan(...any) error }) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.SessionID, &t.Name, &t.Progress.Question, &t.Progress.Voting, &t.JoinedAt)
	if err != nil {
		return models.Team{}, err
	}
	t.Progress = t.Progress.Normalize()
	return t, nil
}

// CreateTeam inserts a team and its participants. With uniqueName set the
// insert fails with ErrNameTaken when the session already has a team of that
// name. When promoteTo is set the owning session moves to that status if it
// is still a draft.
func (s *Store) CreateTeam(ctx context.Context, team models.Team, promoteTo string, uniqueName bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		// touching the session row serializes concurrent registrations for it
		res, err := tx.ExecContext(ctx, `UPDATE quiz_session SET status = status WHERE id = $1`, team.SessionID)
		if err != nil {
			return fmt.Errorf("failed to lock session: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}

		if uniqueName {
			taken, err := teamNameExists(ctx, tx, team.SessionID, team.Name)
			if err != nil {
				return fmt.Errorf("failed to check team name: %w", err)
			}
			if taken {
				return ErrNameTaken
			}
		}

		progress := team.Progress.Normalize()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO team (id, session_id, name, question_status, voting_status, joined_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, team.ID, team.SessionID, team.Name, progress.Question, progress.Voting, team.JoinedAt)
		if err != nil {
			return fmt.Errorf("failed to insert team: %w", err)
		}

		for _, p := range team.Participants {
			contact, err := json.Marshal(p.ContactInfo)
			if err != nil {
				return fmt.Errorf("failed to encode contact info: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO participant (id, team_id, first_name, last_name, contact_info, profession)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, p.ID, team.ID, p.FirstName, p.LastName, string(contact), p.Profession)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}

		if promoteTo != "" {
			_, err := tx.ExecContext(ctx, `
				UPDATE quiz_session SET status = $1, updated_at = $2
				WHERE id = $3 AND status = $4
			`, promoteTo, time.Now().UTC(), team.SessionID, models.StatusDraft)
			if err != nil {
				return fmt.Errorf("failed to update session status: %w", err)
			}
		}
		return nil
	})
}

// GetTeam loads a team without its participants
func (s *Store) GetTeam(ctx context.Context, id string) (models.Team, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM team WHERE id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		return models.Team{}, notFound(err)
	}
	return t, nil
}

// ListTeams returns a session's teams in join order
func (s *Store) ListTeams(ctx context.Context, sessionID string) ([]models.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+teamColumns+`
		FROM team
		WHERE session_id = $1
		ORDER BY joined_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// teamNameExists reports whether a session already has a team called name
func teamNameExists(ctx context.Context, q queryer, sessionID, name string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team WHERE session_id = $1 AND name = $2`, sessionID, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func updateTeamProgress(ctx context.Context, q queryer, teamID string, p models.TeamProgress) error {
	p = p.Normalize()
	res, err := q.ExecContext(ctx, `
		UPDATE team SET question_status = $1, voting_status = $2 WHERE id = $3
	`, p.Question, p.Voting, teamID)
	if err != nil {
		return fmt.Errorf("failed to update team progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetParticipant loads a participant by id
func (s *Store) GetParticipant(ctx context.Context, id string) (models.Participant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, team_id, first_name, last_name, contact_info, profession
		FROM participant WHERE id = $1
	`, id)
	p, err := scanParticipant(row)
	if err != nil {
		return models.Participant{}, notFound(err)
	}
	return p, nil
}

// ListParticipants returns a team's members
func (s *Store) ListParticipants(ctx context.Context, teamID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, first_name, last_name, contact_info, profession
		FROM participant WHERE team_id = $1
		ORDER BY last_name, first_name, id
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func scanParticipant(row interface{ Scan(...any) error }) (models.Participant, error) {
	var p models.Participant
	var contact string
	if err := row.Scan(&p.ID, &p.TeamID, &p.FirstName, &p.LastName, &contact, &p.Profession); err != nil {
		return models.Participant{}, err
	}
	if contact != "" {
		if err := json.Unmarshal([]byte(contact), &p.ContactInfo); err != nil {
			return models.Participant{}, fmt.Errorf("failed to decode contact info: %w", err)
		}
	}
	if p.ContactInfo == nil {
		p.ContactInfo = map[string]string{}
	}
	return p, nil
}
