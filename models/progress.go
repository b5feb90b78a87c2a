// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// TeamProgress tracks whether a team has completed the answering and voting
// stages of a session.
type TeamProgress struct {
	Question string `json:"question_status"`
	Voting   string `json:"voting_status"`
}

// NewTeamProgress returns progress with every stage pending
func NewTeamProgress() TeamProgress {
	return TeamProgress{Question: ProgressPending, Voting: ProgressPending}
}

// MarkAnswered returns a copy with the given stage marked answered.
// Stages without a progress slot (results) leave the value unchanged.
func (p TeamProgress) MarkAnswered(stage string) TeamProgress {
	switch stage {
	case StageQuestion:
		p.Question = ProgressAnswered
	case StageVoting:
		p.Voting = ProgressAnswered
	}
	return p
}

// Normalize fills empty slots with ProgressPending
func (p TeamProgress) Normalize() TeamProgress {
	if p.Question == "" {
		p.Question = ProgressPending
	}
	if p.Voting == "" {
		p.Voting = ProgressPending
	}
	return p
}

// Answered reports whether the given stage is marked answered
func (p TeamProgress) Answered(stage string) bool {
	switch stage {
	case StageQuestion:
		return p.Question == ProgressAnswered
	case StageVoting:
		return p.Voting == ProgressAnswered
	}
	return false
}
