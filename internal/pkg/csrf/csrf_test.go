package csrf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "csrf-test-secret"

func TestGenerateAndVerify(t *testing.T) {
	token, err := Generate(testSecret)
	require.NoError(t, err)
	require.Contains(t, token, ".")

	assert.True(t, Verify(testSecret, token))
}

func TestGenerateUnique(t *testing.T) {
	a, err := Generate(testSecret)
	require.NoError(t, err)
	b, err := Generate(testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Generate(testSecret)
	require.NoError(t, err)

	assert.False(t, Verify("another-secret", token))
}

func TestVerifyTampered(t *testing.T) {
	token, err := Generate(testSecret)
	require.NoError(t, err)

	nonce, mac, _ := strings.Cut(token, ".")

	assert.False(t, Verify(testSecret, "deadbeef."+mac))
	assert.False(t, Verify(testSecret, nonce+".deadbeef"))
}

func TestVerifyMalformed(t *testing.T) {
	for _, raw := range []string{"", "no-dot", ".justmac", "nonce."} {
		assert.False(t, Verify(testSecret, raw), "token %q must not verify", raw)
	}
}
