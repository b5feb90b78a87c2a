// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// SessionKind selects which state machine drives a session
type SessionKind string

const (
	KindSurvey SessionKind = "survey"
	KindQuiz   SessionKind = "quiz"
)

// Session status constants
const (
	StatusDraft      = "draft"
	StatusWaiting    = "waiting"
	StatusActive     = "active"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Survey stage constants, in the order they are visited
const (
	StageQuestion = "question"
	StageVoting   = "voting"
	StageResults  = "results"
)

// Stages lists survey stages in order
var Stages = []string{StageQuestion, StageVoting, StageResults}

// Question kind constants
const (
	QuestionFreeText       = "free_text"
	QuestionMultipleChoice = "multiple_choice"
	QuestionStageMarker    = "stage_marker"
)

// Progress values for a team's per-stage status
const (
	ProgressPending  = "pending"
	ProgressAnswered = "answered"
)

// Request types

type QuestionInput struct {
	Ordinal int      `json:"order"`
	Content string   `json:"text"`
	Kind    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type CreateSessionRequest struct {
	Title     string          `json:"title"`
	Kind      SessionKind     `json:"kind"`
	Prompt    string          `json:"prompt,omitempty"`
	Questions []QuestionInput `json:"questions"`
}

type ParticipantInput struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	ContactInfo map[string]string `json:"contact_info"`
	Profession  string            `json:"profession"`
}

type RegisterTeamRequest struct {
	Name         string             `json:"team_name"`
	Participants []ParticipantInput `json:"participants"`
}

// SubmitAnswerRequest carries either a free-text answer or a set of option IDs.
// ParticipantID is used by quizzes, TeamID by surveys.
type SubmitAnswerRequest struct {
	ParticipantID   string   `json:"participant_id,omitempty"`
	TeamID          string   `json:"team_id,omitempty"`
	QuestionID      string   `json:"question_id"`
	Content         string   `json:"text_answer,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`
}

type SubmitTeamAnswersRequest struct {
	Answers []string `json:"answers"`
}

type SubmitVotesRequest struct {
	AnswerIDs []string `json:"answer_ids"`
}

// Response types

type SubmitCountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type TransitionResponse struct {
	Message string  `json:"message"`
	Session Session `json:"session"`
}

// Domain types

type Session struct {
	ID             string      `json:"id"`
	Kind           SessionKind `json:"kind"`
	Title          string      `json:"title"`
	InviteCode     string      `json:"invite_code"`
	Status         string      `json:"status"`
	Stage          string      `json:"current_stage,omitempty"`
	CurrentOrdinal *int        `json:"current_question_order,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type SessionWithQuestions struct {
	Session   Session    `json:"session"`
	Questions []Question `json:"questions"`
}

type Team struct {
	ID           string        `json:"id"`
	SessionID    string        `json:"session_id"`
	Name         string        `json:"name"`
	JoinedAt     time.Time     `json:"joined_at"`
	Progress     TeamProgress  `json:"progress"`
	Participants []Participant `json:"participants,omitempty"`
}

type Participant struct {
	ID          string            `json:"id"`
	TeamID      string            `json:"team_id"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	ContactInfo map[string]string `json:"contact_info"`
	Profession  string            `json:"profession"`
}

type Question struct {
	ID          string   `json:"id"`
	SessionID   string   `json:"session_id"`
	Ordinal     int      `json:"order"`
	Content     string   `json:"text"`
	Kind        string   `json:"type"`
	Stage       string   `json:"stage,omitempty"`
	Active      bool     `json:"is_active"`
	Synthesized bool     `json:"is_last"`
	Options     []Option `json:"options"`
}

type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Ordinal    int    `json:"order"`
	Text       string `json:"text"`
}

type Answer struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	TeamID          string    `json:"team_id"`
	ParticipantID   *string   `json:"participant_id,omitempty"`
	QuestionID      string    `json:"question_id"`
	Content         string    `json:"text_answer"`
	SelectedOptions []string  `json:"selected_options,omitempty"`
	CreatedAt       time.Time `json:"answered_at"`
}

type Vote struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	AnswerID  string    `json:"answer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot types pushed over websockets and returned by status endpoints

type TeamSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	JoinedAt       time.Time `json:"joined_at"`
	QuestionStatus string    `json:"question_status"`
	VotingStatus   string    `json:"voting_status"`
}

// SessionStatus is the host/admin view of a session
type SessionStatus struct {
	SessionID      string        `json:"session_id"`
	Title          string        `json:"title"`
	Kind           SessionKind   `json:"kind"`
	Status         string        `json:"status"`
	Stage          string        `json:"current_stage,omitempty"`
	CurrentOrdinal *int          `json:"current_question_order,omitempty"`
	Teams          []TeamSummary `json:"teams"`
	TeamsCount     int           `json:"teams_count"`
}

// SessionInfo is the participant view of a session, keyed by invite code
type SessionInfo struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Kind           SessionKind `json:"kind"`
	Status         string      `json:"status"`
	Stage          string      `json:"current_stage,omitempty"`
	CurrentOrdinal *int        `json:"current_question_order,omitempty"`
}

// TeamStatus is the team-specific view of a session
type TeamStatus struct {
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	SessionID      string `json:"session_id"`
	SessionTitle   string `json:"session_title"`
	SessionStatus  string `json:"session_status"`
	Stage          string `json:"current_stage,omitempty"`
	QuestionStatus string `json:"question_status"`
	VotingStatus   string `json:"voting_status"`
}

// Statistics types

type OptionStatistics struct {
	OptionID   string  `json:"option_id"`
	OptionText string  `json:"option_text"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ChoiceStatistics struct {
	QuestionID   string             `json:"question_id"`
	QuestionText string             `json:"question_text"`
	TotalAnswers int                `json:"total_answers"`
	Options      []OptionStatistics `json:"options"`
}

type AnswerVotes struct {
	AnswerID   string   `json:"answer_id"`
	Content    string   `json:"content"`
	TeamName   string   `json:"team_name"`
	Votes      int      `json:"votes"`
	Percentage float64  `json:"percentage"`
	VotedTeams []string `json:"voted_teams"`
}

type TeamVotes struct {
	TeamID   string   `json:"team_id"`
	TeamName string   `json:"team_name"`
	VotedFor []string `json:"voted_for"`
}

type AnswerView struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	TeamName string `json:"team_name"`
}

type VoteStatistics struct {
	Answers     []AnswerView  `json:"answers"`
	Statistics  []AnswerVotes `json:"statistics"`
	TeamsVoting []TeamVotes   `json:"teams_voting"`
	TotalVotes  int           `json:"total_votes"`
}

// SessionStatistics wraps whichever aggregate applies to the session's kind
type SessionStatistics struct {
	SessionID string            `json:"session_id"`
	Kind      SessionKind       `json:"kind"`
	Choice    *ChoiceStatistics `json:"choice,omitempty"`
	Votes     *VoteStatistics   `json:"votes,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
