// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the database/sql repository behind the session service.

Queries use $N placeholders, which both SQLite and PostgreSQL accept.
Lookups by id return ErrNotFound when no row matches; the session service maps
that to apperr.NotFound.

# Transactions

Multi-row writes run in one transaction:

  - CreateSession: session, questions, options
  - CreateTeam: team, participants, optional draft → waiting promotion
  - ApplyTransition: status, stage, pointer, active question flags
  - ReplaceTeamAnswers / ReplaceVotes: delete-then-insert plus team progress
  - CreateSynthesizedQuestion: existence check then insert

CreateSynthesizedQuestion is idempotent. The existence check runs inside the
transaction and a unique partial index on question(session_id) WHERE
synthesized rejects a concurrent second insert, in which case the stored
question is returned.
*/
package store
