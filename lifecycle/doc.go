// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle decides which session transitions are legal.

It is pure: machines read a session and its questions and return a Transition
describing the writes to apply, or a typed apperr failure. The session service
applies transitions inside a store transaction.

# Survey (StageMachine)

	draft ──Start──▶ active ──Finish──▶ completed
	                   │
	         question ─Advance─▶ voting ─Advance─▶ results

Advancing deactivates every question and activates the one whose stage matches
the new stage. Advancing at results is rejected.

# Quiz (PointerMachine)

	draft ──first team──▶ waiting ──Start──▶ in_progress ──Finish──▶ completed

Start points at the smallest ordinal. Advance moves to the next greater
ordinal; from the last authored question it moves one past the end and asks the
caller to synthesize the aggregate question there. Advancing from the
synthesized question is rejected.
*/
package lifecycle
