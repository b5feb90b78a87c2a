// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package synth derives the final multiple-choice question of a quiz from the
// free-text answers submitted to every earlier question. Persisting the result
// is the store's job and is idempotent per session.
package synth
