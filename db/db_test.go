// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)"},
		{"sqlite://quiz.db", "quiz.db?_pragma=foreign_keys(1)"},
		{"file:quiz.db?cache=shared", "file:quiz.db?cache=shared&_pragma=foreign_keys(1)"},
		{"quiz.db?_pragma=foreign_keys(0)", "quiz.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in))
	}
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, CreateSchema(conn))
	require.NoError(t, CreateSchema(conn))

	var fk int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}
