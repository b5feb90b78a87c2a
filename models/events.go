// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Event types pushed over websockets
const (
	EventSessionStatus    = "session_status"
	EventSessionInfo      = "session_info"
	EventTeamStatus       = "team_status"
	EventSessionStarted   = "session_started"
	EventStageChanged     = "stage_changed"
	EventQuestionChanged  = "question_changed"
	EventSessionCompleted = "session_completed"
	EventTeamJoined       = "team_joined"
	EventAnswerSubmitted  = "answer_submitted"
	EventError            = "error"
)

// Event is the envelope of every websocket message
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// TeamActivity is the payload of team_joined and answer_submitted
type TeamActivity struct {
	SessionID  string `json:"session_id"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	TeamsCount int    `json:"teams_count,omitempty"`
}
