// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and snapshot types.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: title, kind, prompt, questions
  - RegisterTeamRequest: team_name, participants
  - SubmitAnswerRequest: participant_id or team_id, question_id, text_answer or selected_options
  - SubmitTeamAnswersRequest: answers
  - SubmitVotesRequest: answer_ids

# Domain Types

  - Session: a hosted survey or quiz, reachable by invite code
  - Team, Participant: registered groups and their members
  - Question, Option: ordered questions, with options for multiple choice
  - Answer, Vote: submissions

# Snapshot Types

Pushed over websockets and returned by status endpoints:

  - SessionStatus: host view with every team's progress
  - SessionInfo: participant view keyed by invite code
  - TeamStatus: a single team's view
  - ChoiceStatistics, VoteStatistics: aggregates

# Constants

Session kinds:

	KindSurvey = "survey" // draft → active → completed, stages question → voting → results
	KindQuiz   = "quiz"   // draft → waiting → in_progress → completed, question pointer

Team progress values:

	ProgressPending  = "pending"
	ProgressAnswered = "answered"
*/
package models
