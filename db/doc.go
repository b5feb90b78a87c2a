// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connections

Open picks a driver from the configured type:

	sqlite   → modernc.org/sqlite (default, foreign keys pragma appended)
	postgres → github.com/lib/pq
	pgx      → github.com/jackc/pgx/v4/stdlib

SQLite is limited to one open connection. Code running against it must close
rows before issuing the next query and use the transaction handle inside a
transaction.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - quiz_session: session metadata, status, stage and question pointer
  - team: registered teams with per-stage progress
  - participant: team members
  - question: ordered questions, at most one synthesized per session
  - question_option: ordered options of multiple-choice questions
  - answer: free-text or selected-option answers
  - vote: one row per team per voted answer

# Relationships

	quiz_session 1──* team 1──* participant
	quiz_session 1──* question 1──* question_option
	question 1──* answer *──1 team
	answer 1──* vote *──1 team

All foreign keys use ON DELETE CASCADE, so deleting a session removes
everything it owns.
*/
package db
