package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
)

func TestUserTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.IssueUser("user-42")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, ScopeUser, claims.Scope)
	assert.Equal(t, "user-42", claims.Subject)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.IssueAdmin("admin@example.com")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, ScopeAdmin, claims.Scope)
	assert.Equal(t, "admin@example.com", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").IssueUser("user-42")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Parse(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret").Parse("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}
