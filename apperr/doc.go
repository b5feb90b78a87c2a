// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the typed failures raised by the session core.

# Kinds

	NotFound     → 404  referenced entity absent
	InvalidState → 400  operation illegal in the current status or stage
	Forbidden    → 403  gated by a stricter precondition (statistics before completion)
	Conflict     → 409  duplicate unique key (team name)
	Validation   → 400  malformed payload (vote referencing another session's answer)
	NoData       → 422  nothing to synthesize from
	Internal     → 500  persistence failure

Errors match by kind with errors.Is, and KindOf treats anything that is not an
*Error as Internal. Handlers translate with middleware.WriteError.
*/
package apperr
