// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always written by the application so the same DDL runs on
// SQLite and PostgreSQL.
const schema = `
-- Sessions
CREATE TABLE IF NOT EXISTS quiz_session (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL CHECK (kind IN ('survey', 'quiz')),
    title TEXT NOT NULL,
    invite_code TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'waiting', 'active', 'in_progress', 'completed')),
    current_stage TEXT,
    current_ordinal INTEGER,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_session_invite_code ON quiz_session(invite_code);

-- Teams
CREATE TABLE IF NOT EXISTS team (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES quiz_session(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    question_status TEXT NOT NULL DEFAULT 'pending',
    voting_status TEXT NOT NULL DEFAULT 'pending',
    joined_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_team_session_id ON team(session_id);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    contact_info TEXT NOT NULL DEFAULT '{}',
    profession TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_participant_team_id ON participant(team_id);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES quiz_session(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    content TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('free_text', 'multiple_choice', 'stage_marker')),
    stage TEXT,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    synthesized BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (session_id, ordinal)
);

CREATE INDEX IF NOT EXISTS idx_question_session_id ON question(session_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_question_one_synthesized ON question(session_id) WHERE synthesized;

-- Options
CREATE TABLE IF NOT EXISTS question_option (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    text TEXT NOT NULL,
    UNIQUE (question_id, ordinal)
);

CREATE INDEX IF NOT EXISTS idx_question_option_question_id ON question_option(question_id);

-- Answers
CREATE TABLE IF NOT EXISTS answer (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES quiz_session(id) ON DELETE CASCADE,
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    participant_id TEXT REFERENCES participant(id) ON DELETE CASCADE,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    content TEXT NOT NULL DEFAULT '',
    selected_options TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_session_id ON answer(session_id);
CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);
CREATE INDEX IF NOT EXISTS idx_answer_team_id ON answer(team_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_answer_participant_question ON answer(question_id, participant_id) WHERE participant_id IS NOT NULL;

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    answer_id TEXT NOT NULL REFERENCES answer(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (team_id, answer_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_team_id ON vote(team_id);
CREATE INDEX IF NOT EXISTS idx_vote_answer_id ON vote(answer_id);
`
