// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evgeny Bolotov

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebolotov/itemvault/models"
)

func Test_buildInsertUserQuery_SQLContainsParts(t *testing.T) {
	user := models.User{Login: "john", PasswordHash: "$2a$10$hash"}

	query, args, err := buildInsertUserQuery(sq.Dollar, user)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 2)
	require.Equal(t, "john", args[0])
	require.Equal(t, "$2a$10$hash", args[1])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "insert into users")
	require.Contains(t, q, "login")
	require.Contains(t, q, "password_hash")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$2")
}

func Test_buildInsertUserQuery_SQLitePlaceholders(t *testing.T) {
	query, args, err := buildInsertUserQuery(sq.Question, models.User{Login: "john"})
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.Contains(t, query, "?")
	assert.NotContains(t, query, "$1")
}

func Test_buildFindUserByLoginQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, args, err := buildFindUserByLoginQuery(sq.Dollar, "john")
	require.NoError(t, err)

	require.Len(t, args, 1)
	require.Equal(t, "john", args[0])

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	cols := []string{
		"user_id",
		"login",
		"password_hash",
		"failed_attempts",
		"last_attempt_time",
		"locked_until",
		"passkey_credential_id",
		"passkey_public_key",
		"current_challenge",
		"created_at",
	}
	for _, c := range cols {
		require.Contains(t, q, c)
	}

	require.Contains(t, q, "from users")
	require.Contains(t, q, "where")
	require.Contains(t, query, "$1")
}

func Test_buildUpdateLockoutQuery(t *testing.T) {
	now := time.Now()
	until := now.Add(15 * time.Minute)

	tests := []struct {
		name       string
		user       models.User
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name: "locked user",
			user: models.User{
				UserID:          42,
				FailedAttempts:  5,
				LastAttemptTime: &now,
				LockedUntil:     &until,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)
				assert.Contains(t, q, "update users")
				assert.Contains(t, q, "failed_attempts")
				assert.Contains(t, q, "last_attempt_time")
				assert.Contains(t, q, "locked_until")
				assert.Contains(t, q, "user_id")

				require.Len(t, args, 4)
				assert.Equal(t, 5, args[0])
				assert.Equal(t, &now, args[1])
				assert.Equal(t, &until, args[2])
				assert.Equal(t, int64(42), args[3])
			},
		},
		{
			name: "reset counters",
			user: models.User{UserID: 7},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Len(t, args, 4)
				assert.Equal(t, 0, args[0])
				assert.Nil(t, args[1])
				assert.Nil(t, args[2])
				assert.Equal(t, int64(7), args[3])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateLockoutQuery(sq.Dollar, tt.user)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildUpdatePasskeyQuery_ClearsChallenge(t *testing.T) {
	user := models.User{
		UserID:              1,
		PasskeyCredentialID: "Y3JlZA",
		PasskeyPublicKey:    "a2V5",
		CurrentChallenge:    "",
	}

	query, args, err := buildUpdatePasskeyQuery(sq.Dollar, user)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "passkey_credential_id")
	assert.Contains(t, q, "passkey_public_key")
	assert.Contains(t, q, "current_challenge")

	require.Len(t, args, 4)
	assert.Equal(t, "Y3JlZA", args[0])
	assert.Equal(t, "a2V5", args[1])
	assert.Equal(t, "", args[2])
	assert.Equal(t, int64(1), args[3])
}

func Test_buildSelectItemsQuery_ScopedAndOrdered(t *testing.T) {
	query, args, err := buildSelectItemsQuery(sq.Dollar, 42)
	require.NoError(t, err)

	require.Len(t, args, 1)
	require.Equal(t, int64(42), args[0])

	q := strings.ToLower(query)
	assert.Contains(t, q, "from items")
	assert.Contains(t, q, "where")
	assert.Contains(t, q, "user_id")
	assert.Contains(t, q, "order by item_id")
}

func Test_buildDeleteItemQuery_ScopedByOwner(t *testing.T) {
	query, args, err := buildDeleteItemQuery(sq.Dollar, 42, 7)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "delete from items")
	assert.Contains(t, q, "item_id")
	assert.Contains(t, q, "user_id")

	// squirrel orders sq.Eq keys alphabetically: item_id before user_id.
	require.Len(t, args, 2)
	assert.Contains(t, args, int64(42))
	assert.Contains(t, args, int64(7))
}
