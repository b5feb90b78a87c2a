// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-quiz/apperr"
	"github.com/danielhkuo/quickly-quiz/ids"
	"github.com/danielhkuo/quickly-quiz/lifecycle"
	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/store"
)

// RegisterTeam adds a team and its participants to a session. The first team
// to join a draft quiz moves it to waiting.
func (s *Service) RegisterTeam(ctx context.Context, sessionID string, req models.RegisterTeamRequest) (models.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Team{}, apperr.Validationf("team_name is required")
	}
	if len(req.Participants) == 0 {
		return models.Team{}, apperr.Validationf("at least one participant is required")
	}

	sess, err := s.reader.GetSession(ctx, sessionID)
	if err != nil {
		return models.Team{}, err
	}
	if !lifecycle.AcceptsTeams(sess) {
		return models.Team{}, apperr.InvalidStatef("session is completed")
	}

	team := models.Team{
		ID:        ids.MustID(),
		SessionID: sessionID,
		Name:      name,
		JoinedAt:  time.Now().UTC(),
		Progress:  models.NewTeamProgress(),
	}

	for i, in := range req.Participants {
		first := strings.TrimSpace(in.FirstName)
		last := strings.TrimSpace(in.LastName)
		if first == "" || last == "" {
			return models.Team{}, apperr.Validationf(fmt.Sprintf("participant %d: first_name and last_name are required", i+1))
		}
		contact := in.ContactInfo
		if contact == nil {
			contact = map[string]string{}
		}
		team.Participants = append(team.Participants, models.Participant{
			ID:          ids.MustID(),
			TeamID:      team.ID,
			FirstName:   first,
			LastName:    last,
			ContactInfo: contact,
			Profession:  strings.TrimSpace(in.Profession),
		})
	}

	promoteTo := ""
	if tr, ok := lifecycle.OnTeamRegistered(sess); ok {
		promoteTo = tr.Status
	}

	if err := s.store.CreateTeam(ctx, team, promoteTo, s.opts.UniqueTeamNames); err != nil {
		if errors.Is(err, store.ErrNameTaken) {
			return models.Team{}, apperr.Conflictf(fmt.Sprintf("team name %q is already taken", name))
		}
		slog.Error("failed to register team", "session_id", sessionID, "error", err)
		return models.Team{}, mapErr(err, "session")
	}

	slog.Info("team registered", "session_id", sessionID, "team_id", team.ID, "participants", len(team.Participants))
	s.notify.TeamRegistered(sessionID, team.ID)
	if promoteTo != "" {
		s.notify.SessionChanged(sessionID, models.EventSessionInfo)
	}
	return team, nil
}

// RegisterTeamByCode resolves an invite code and registers the team there
func (s *Service) RegisterTeamByCode(ctx context.Context, code string, req models.RegisterTeamRequest) (models.Team, error) {
	sess, err := s.GetSessionByCode(ctx, code)
	if err != nil {
		return models.Team{}, err
	}
	return s.RegisterTeam(ctx, sess.ID, req)
}

// GetTeam returns a team with its participants
func (s *Service) GetTeam(ctx context.Context, id string) (models.Team, error) {
	team, err := s.reader.GetTeam(ctx, id)
	if err != nil {
		return models.Team{}, err
	}
	team.Participants, err = s.store.ListParticipants(ctx, id)
	if err != nil {
		return models.Team{}, mapErr(err, "team")
	}
	return team, nil
}

// ListTeams returns a session's teams in join order
func (s *Service) ListTeams(ctx context.Context, sessionID string) ([]models.Team, error) {
	if _, err := s.reader.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.reader.ListTeams(ctx, sessionID)
}

// SessionStatus is the host snapshot of a session
func (s *Service) SessionStatus(ctx context.Context, sessionID string) (models.SessionStatus, error) {
	return s.reader.SessionStatus(ctx, sessionID)
}

// SessionInfo is the participant snapshot of a session
func (s *Service) SessionInfo(ctx context.Context, code string) (models.SessionInfo, error) {
	sess, err := s.GetSessionByCode(ctx, code)
	if err != nil {
		return models.SessionInfo{}, err
	}
	return infoOf(sess), nil
}

// TeamStatus is one team's snapshot
func (s *Service) TeamStatus(ctx context.Context, teamID string) (models.TeamStatus, error) {
	return s.reader.TeamStatus(ctx, teamID)
}
