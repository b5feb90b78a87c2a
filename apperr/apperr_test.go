// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed", NotFoundf("session not found"), NotFound},
		{"wrapped typed", fmt.Errorf("advance: %w", InvalidStatef("not in progress")), InvalidState},
		{"plain error", errors.New("boom"), Internal},
		{"internal with cause", Internalf("Database error", sql.ErrConnDone), Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Forbiddenf("statistics are available after the session completes"))

	assert.True(t, errors.Is(err, New(Forbidden, "")))
	assert.False(t, errors.Is(err, New(NotFound, "")))
	assert.True(t, Is(err, Forbidden))
	assert.False(t, Is(nil, Forbidden))
}

func TestUnwrapKeepsCause(t *testing.T) {
	err := Internalf("Database error", sql.ErrNoRows)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Contains(t, err.Error(), "Database error")
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		NotFound:     http.StatusNotFound,
		InvalidState: http.StatusBadRequest,
		Forbidden:    http.StatusForbidden,
		Conflict:     http.StatusConflict,
		Validation:   http.StatusBadRequest,
		NoData:       http.StatusUnprocessableEntity,
		Internal:     http.StatusInternalServerError,
		Kind("other"): http.StatusInternalServerError,
	}

	for kind, want := range tests {
		assert.Equal(t, want, HTTPStatus(kind), "kind %s", kind)
	}
}
