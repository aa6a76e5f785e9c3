package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	signed, expiresAt, err := Issue(42, testSecret, 7)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	userID, err := Verify(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, _, err := Issue(42, testSecret, 7)
	require.NoError(t, err)

	_, err = Verify(signed, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpired(t *testing.T) {
	signed, _, err := Issue(42, testSecret, -1)
	require.NoError(t, err)

	_, err = Verify(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := Verify(raw, testSecret)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}
