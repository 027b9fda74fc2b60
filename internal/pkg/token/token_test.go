package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeRe = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestNewVerificationCode_Format(t *testing.T) {
	code, err := NewVerificationCode()

	require.NoError(t, err)
	assert.Regexp(t, codeRe, code)
}

func TestNewVerificationCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNewStateToken(t *testing.T) {
	state, err := NewStateToken()

	require.NoError(t, err)
	assert.Len(t, state, 64)
	assert.Regexp(t, `^[0-9a-f]+$`, state)
}

func TestNewCodeVerifier(t *testing.T) {
	verifier, err := NewCodeVerifier()

	require.NoError(t, err)
	assert.Len(t, verifier, 43)
	assert.NotContains(t, verifier, "=")
	assert.NotContains(t, verifier, "+")
	assert.NotContains(t, verifier, "/")
}

func TestCodeChallengeS256(t *testing.T) {
	// RFC 7636 appendix B test vector.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", CodeChallengeS256(verifier))
}
