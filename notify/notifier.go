// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickly-quiz/models"
	"github.com/danielhkuo/quickly-quiz/realtime"
)

// StateReader loads the fresh snapshots pushed to clients
type StateReader interface {
	GetSession(ctx context.Context, id string) (models.Session, error)
	GetTeam(ctx context.Context, id string) (models.Team, error)
	ListTeams(ctx context.Context, sessionID string) ([]models.Team, error)
	SessionStatus(ctx context.Context, sessionID string) (models.SessionStatus, error)
	SessionInfo(ctx context.Context, inviteCode string) (models.SessionInfo, error)
	TeamStatus(ctx context.Context, teamID string) (models.TeamStatus, error)
}

// Broadcaster delivers an event to every connection of a partition
type Broadcaster interface {
	Broadcast(topic realtime.Topic, key string, v any) int
}

// Notifier turns committed mutations into websocket events. Every method only
// enqueues; the state is re-read when the job runs.
type Notifier struct {
	dispatcher *Dispatcher
	hub        Broadcaster
	state      StateReader
}

func New(dispatcher *Dispatcher, hub Broadcaster, state StateReader) *Notifier {
	return &Notifier{dispatcher: dispatcher, hub: hub, state: state}
}

// SessionChanged pushes a start, advance or finish to every partition of the session
func (n *Notifier) SessionChanged(sessionID, eventType string) {
	n.dispatcher.Enqueue(sessionID, eventType, func(ctx context.Context) error {
		sess, err := n.state.GetSession(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load session %s: %w", sessionID, err)
		}

		errs := []error{n.pushAdmin(ctx, sessionID)}

		info, err := n.state.SessionInfo(ctx, sess.InviteCode)
		if err != nil {
			errs = append(errs, fmt.Errorf("load session info: %w", err))
		} else {
			n.hub.Broadcast(realtime.TopicSession, sess.InviteCode, models.Event{Type: eventType, Data: info})
		}

		errs = append(errs, n.pushAllTeams(ctx, sessionID))
		return errors.Join(errs...)
	})
}

// TeamRegistered announces a new team to the host and the session's participants
func (n *Notifier) TeamRegistered(sessionID, teamID string) {
	n.dispatcher.Enqueue(sessionID, models.EventTeamJoined, func(ctx context.Context) error {
		errs := []error{n.pushAdmin(ctx, sessionID)}
		errs = append(errs, n.pushActivity(ctx, sessionID, teamID, models.EventTeamJoined))
		return errors.Join(errs...)
	})
}

// AnswerSubmitted refreshes the host view, tells participants a team answered,
// and updates the team's own status
func (n *Notifier) AnswerSubmitted(sessionID, teamID string) {
	n.dispatcher.Enqueue(sessionID, models.EventAnswerSubmitted, func(ctx context.Context) error {
		errs := []error{n.pushAdmin(ctx, sessionID)}
		errs = append(errs, n.pushActivity(ctx, sessionID, teamID, models.EventAnswerSubmitted))
		errs = append(errs, n.pushTeam(ctx, teamID))
		return errors.Join(errs...)
	})
}

// VotesSubmitted refreshes the host view and the voting team's status
func (n *Notifier) VotesSubmitted(sessionID, teamID string) {
	n.dispatcher.Enqueue(sessionID, "votes_submitted", func(ctx context.Context) error {
		return errors.Join(n.pushAdmin(ctx, sessionID), n.pushTeam(ctx, teamID))
	})
}

// Snapshot builds the event sent to a connection right after it registers
func (n *Notifier) Snapshot(ctx context.Context, topic realtime.Topic, key string) (models.Event, error) {
	switch topic {
	case realtime.TopicAdmin:
		st, err := n.state.SessionStatus(ctx, key)
		if err != nil {
			return models.Event{}, err
		}
		return models.Event{Type: models.EventSessionStatus, Data: st}, nil
	case realtime.TopicSession:
		info, err := n.state.SessionInfo(ctx, key)
		if err != nil {
			return models.Event{}, err
		}
		return models.Event{Type: models.EventSessionInfo, Data: info}, nil
	case realtime.TopicTeam:
		st, err := n.state.TeamStatus(ctx, key)
		if err != nil {
			return models.Event{}, err
		}
		return models.Event{Type: models.EventTeamStatus, Data: st}, nil
	}
	return models.Event{}, fmt.Errorf("unknown topic %q", topic)
}

// Exists reports, as a NotFound error, a partition key with nothing behind it
func (n *Notifier) Exists(ctx context.Context, topic realtime.Topic, key string) error {
	var err error
	switch topic {
	case realtime.TopicAdmin:
		_, err = n.state.GetSession(ctx, key)
	case realtime.TopicSession:
		_, err = n.state.SessionInfo(ctx, key)
	case realtime.TopicTeam:
		_, err = n.state.GetTeam(ctx, key)
	default:
		err = fmt.Errorf("unknown topic %q", topic)
	}
	return err
}

func (n *Notifier) pushAdmin(ctx context.Context, sessionID string) error {
	st, err := n.state.SessionStatus(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session status: %w", err)
	}
	sent := n.hub.Broadcast(realtime.TopicAdmin, sessionID, models.Event{Type: models.EventSessionStatus, Data: st})
	slog.Debug("pushed session status", "session_id", sessionID, "delivered", sent)
	return nil
}

func (n *Notifier) pushTeam(ctx context.Context, teamID string) error {
	st, err := n.state.TeamStatus(ctx, teamID)
	if err != nil {
		return fmt.Errorf("load team status: %w", err)
	}
	n.hub.Broadcast(realtime.TopicTeam, teamID, models.Event{Type: models.EventTeamStatus, Data: st})
	return nil
}

func (n *Notifier) pushAllTeams(ctx context.Context, sessionID string) error {
	teams, err := n.state.ListTeams(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	var errs []error
	for _, t := range teams {
		errs = append(errs, n.pushTeam(ctx, t.ID))
	}
	return errors.Join(errs...)
}

func (n *Notifier) pushActivity(ctx context.Context, sessionID, teamID, eventType string) error {
	sess, err := n.state.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}
	team, err := n.state.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("load team %s: %w", teamID, err)
	}
	teams, err := n.state.ListTeams(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	n.hub.Broadcast(realtime.TopicSession, sess.InviteCode, models.Event{
		Type: eventType,
		Data: models.TeamActivity{
			SessionID:  sessionID,
			TeamID:     teamID,
			TeamName:   team.Name,
			TeamsCount: len(teams),
		},
	})
	return nil
}
