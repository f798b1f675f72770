package utils

import (
	"testing"

	"room-rescue/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *user.User {
	return &user.User{
		ID:    7,
		Email: "a@x.com",
		Name:  "Alice",
		Roles: user.RoleSlice{user.RoleStudent, user.RoleStaff},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", claims["sub"])
	assert.Equal(t, TokenTypeAccess, claims["typ"])
	assert.Equal(t, float64(7), claims["uid"])
	assert.ElementsMatch(t, []string{"STUDENT", "STAFF"}, ClaimRoles(claims))
}

func TestRefreshTokenType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims["typ"])
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateAccessToken(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseToken("not.a.jwt")
	assert.Error(t, err)
}
