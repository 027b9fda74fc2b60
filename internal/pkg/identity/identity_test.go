package identity

import (
	"errors"
	"testing"

	"github.com/social-verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidWalletAddress(t *testing.T) {
	valid := []string{
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01",
		"0xabcdef0123456789abcdef0123456789abcdef01",
		"0xAbCdEf0123456789aBcDeF0123456789AbCdEf01",
	}
	for _, addr := range valid {
		assert.True(t, ValidWalletAddress(addr), addr)
	}

	invalid := []string{
		"",
		"0x123",
		"0x",
		"ABCDEF0123456789ABCDEF0123456789ABCDEF01",   // no 0x prefix
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF",   // too short
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF012", // too long
		"0xGHIJKL0123456789ABCDEF0123456789ABCDEF01", // non-hex
		"not-a-wallet",
	}
	for _, addr := range invalid {
		assert.False(t, ValidWalletAddress(addr), addr)
	}
}

func TestValidSocialHandle(t *testing.T) {
	valid := []string{"alice", "@alice", "Alice_123", "a", "@fifteen_chars__"}
	for _, h := range valid {
		assert.True(t, ValidSocialHandle(h), h)
	}

	invalid := []string{"", "@", "sixteen_chars___x", "has space", "has-dash", "héllo"}
	for _, h := range invalid {
		assert.False(t, ValidSocialHandle(h), h)
	}
}

func TestWallet_Normalizes(t *testing.T) {
	got, err := Wallet("0xABCDEF0123456789ABCDEF0123456789ABCDEF01")

	require.NoError(t, err)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", got)
}

func TestWallet_Invalid(t *testing.T) {
	_, err := Wallet("0x123")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestHandle_Normalizes(t *testing.T) {
	got, err := Handle("@Alice_123")

	require.NoError(t, err)
	assert.Equal(t, "alice_123", got)
}

func TestHandle_Invalid(t *testing.T) {
	_, err := Handle("no spaces allowed")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestNormalize_Idempotent(t *testing.T) {
	wallet := NormalizeWalletAddress("0xABCDEF0123456789ABCDEF0123456789ABCDEF01")
	assert.Equal(t, wallet, NormalizeWalletAddress(wallet))

	handle := NormalizeSocialHandle("@Alice_123")
	assert.Equal(t, handle, NormalizeSocialHandle(handle))
}
