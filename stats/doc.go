// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats aggregates answers and votes.

Choice counts, for every option of a multiple-choice question, the answers
whose selected set contains it. Votes tallies the votes cast for each free-text
answer and breaks them down per team.

Percentages are rounded half away from zero to two decimal places using
shopspring/decimal, and are 0 when nothing was counted.

Policy decides whether statistics can be read before a session completes:

	PolicyStrict  → only once the session is completed (sealed results)
	PolicyLenient → any time, partial while the session runs
*/
package stats
