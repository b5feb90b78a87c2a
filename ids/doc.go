// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ids generates identifiers.

# Entity IDs

Sessions, teams, participants, questions, answers and votes use random hex IDs:

	id, err := ids.GenerateID(16) // 32 hex chars

# Invite Codes

Invite codes are what participants type to join a session:

	code, err := ids.GenerateInviteCode() // e.g. "K7Q2ZP0D"

They are eight characters from A-Z and 0-9, drawn uniformly with crypto/rand.
Codes are not derived from the session ID, so the session service checks the
store and draws again on collision.
*/
package ids
