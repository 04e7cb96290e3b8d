package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espacios-app/reservas-api/internal/domain"
)

var signingKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	raw, err := GenerateToken(signingKey, 42, domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseToken(signingKey, raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	raw, err := GenerateToken(signingKey, 42, domain.RoleRegular, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-key"), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	raw, err := GenerateToken(signingKey, 42, domain.RoleRegular, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(signingKey, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken(signingKey, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
