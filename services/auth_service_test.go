package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripexpense/tripexpense-backend/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{ID: 42, Name: "Ana", Email: "ana@example.com"}

	token, expiresAt, err := GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	userID, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	user := &models.User{ID: 7, Name: "Ben", Email: "ben@example.com"}
	token, _, err := GenerateToken(user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestAvatarFor(t *testing.T) {
	assert.Equal(t, "A", avatarFor("ana"))
	assert.Equal(t, "B", avatarFor("  ben smith"))
	assert.Equal(t, "", avatarFor("   "))
}
