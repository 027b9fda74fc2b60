package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Verification codes are human-typed into a profile bio, so the alphabet is
// uppercase alphanumeric only. Not a security boundary; the code only guards
// against accidental bio-text collisions.
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

// NewVerificationCode generates a fresh 8-character challenge code. A new
// code is generated per initiation; codes are never reused across challenges.
func NewVerificationCode() (string, error) {
	b := make([]byte, codeLength)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate verification code: %w", err)
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b), nil
}

// NewStateToken generates a cryptographically random 64-character hex token,
// used as the single-use OAuth state lookup key.
func NewStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewCodeVerifier generates a PKCE code verifier: 32 random bytes,
// base64url-encoded without padding (43 characters, within the RFC 7636
// 43-128 range).
func NewCodeVerifier() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CodeChallengeS256 derives the S256 code challenge for a verifier.
func CodeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
