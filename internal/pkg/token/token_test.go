package token_test

import (
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	raw, claims, err := token.Generate("secret", "user-1", "CUSTOMER", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := token.Parse("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "CUSTOMER", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, _, err := token.Generate("secret", "user-1", "CUSTOMER", time.Hour)
	require.NoError(t, err)

	_, err = token.Parse("other", raw)
	assert.ErrorIs(t, err, token.ErrInvalid)
}

func TestParse_Expired(t *testing.T) {
	raw, _, err := token.Generate("secret", "user-1", "CUSTOMER", -time.Minute)
	require.NoError(t, err)

	_, err = token.Parse("secret", raw)
	assert.ErrorIs(t, err, token.ErrExpired)
}
