// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"

	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/store"
)

// Reader builds the snapshots shown to hosts, participants and teams.
// It is shared by the service and the notifier so both see the same views.
type Reader struct {
	store *store.Store
}

func NewReader(st *store.Store) *Reader {
	return &Reader{store: st}
}

func (r *Reader) GetSession(ctx context.Context, id string) (models.Session, error) {
	sess, err := r.store.GetSession(ctx, id)
	return sess, mapErr(err, "session")
}

func (r *Reader) GetTeam(ctx context.Context, id string) (models.Team, error) {
	team, err := r.store.GetTeam(ctx, id)
	return team, mapErr(err, "team")
}

func (r *Reader) ListTeams(ctx context.Context, sessionID string) ([]models.Team, error) {
	teams, err := r.store.ListTeams(ctx, sessionID)
	return teams, mapErr(err, "session")
}

// SessionStatus is the host view: lifecycle state plus every team's progress
func (r *Reader) SessionStatus(ctx context.Context, sessionID string) (models.SessionStatus, error) {
	sess, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return models.SessionStatus{}, err
	}
	teams, err := r.ListTeams(ctx, sessionID)
	if err != nil {
		return models.SessionStatus{}, err
	}

	summaries := make([]models.TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, models.TeamSummary{
			ID:             t.ID,
			Name:           t.Name,
			JoinedAt:       t.JoinedAt,
			QuestionStatus: t.Progress.Question,
			VotingStatus:   t.Progress.Voting,
		})
	}

	return models.SessionStatus{
		SessionID:      sess.ID,
		Title:          sess.Title,
		Kind:           sess.Kind,
		Status:         sess.Status,
		Stage:          sess.Stage,
		CurrentOrdinal: sess.CurrentOrdinal,
		Teams:          summaries,
		TeamsCount:     len(summaries),
	}, nil
}

// SessionInfo is the participant view, looked up by invite code
func (r *Reader) SessionInfo(ctx context.Context, inviteCode string) (models.SessionInfo, error) {
	sess, err := r.store.GetSessionByCode(ctx, inviteCode)
	if err != nil {
		return models.SessionInfo{}, mapErr(err, "session")
	}
	return infoOf(sess), nil
}

func infoOf(sess models.Session) models.SessionInfo {
	return models.SessionInfo{
		ID:             sess.ID,
		Title:          sess.Title,
		Kind:           sess.Kind,
		Status:         sess.Status,
		Stage:          sess.Stage,
		CurrentOrdinal: sess.CurrentOrdinal,
	}
}

// TeamStatus is one team's view of its session
func (r *Reader) TeamStatus(ctx context.Context, teamID string) (models.TeamStatus, error) {
	team, err := r.GetTeam(ctx, teamID)
	if err != nil {
		return models.TeamStatus{}, err
	}
	sess, err := r.GetSession(ctx, team.SessionID)
	if err != nil {
		return models.TeamStatus{}, err
	}

	return models.TeamStatus{
		TeamID:         team.ID,
		TeamName:       team.Name,
		SessionID:      sess.ID,
		SessionTitle:   sess.Title,
		SessionStatus:  sess.Status,
		Stage:          sess.Stage,
		QuestionStatus: team.Progress.Question,
		VotingStatus:   team.Progress.Voting,
	}, nil
}
