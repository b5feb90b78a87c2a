// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the command surface behind the HTTP handlers.

Service validates requests, asks the lifecycle package which writes a
transition needs, applies them through the store, and then hands off to a
Notifier. The Notifier only enqueues work, so a command returns as soon as
its own writes commit.

# Session Kinds

Surveys run draft → active → completed. While active they move through the
question, voting, and results stages. Teams answer the prompt during the
question stage and vote on each other's answers during the voting stage.

Quizzes run draft → waiting → in_progress → completed. The first team to
register moves a draft quiz to waiting. Advancing past the last authored
question synthesizes one more multiple-choice question from the free-text
answers collected so far.

# Errors

Every method returns apperr errors: NotFound for missing records,
InvalidState for illegal transitions, Validation for bad payloads, Conflict
for duplicate team names, Forbidden for sealed statistics, and Internal for
storage failures.

# Snapshots

Reader builds the host, participant, and team views. It is shared with the
notify package so pushed events and status endpoints agree.
*/
package session
