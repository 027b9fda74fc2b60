// Package identity validates and normalizes the two identifiers the service
// binds together: hex wallet addresses and social platform handles.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/social-verify-api/internal/domain"
)

var handleRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// ValidWalletAddress reports whether input is a 0x-prefixed 40-hex-char
// address. The 0x prefix is mandatory here even though go-ethereum accepts
// bare hex.
func ValidWalletAddress(input string) bool {
	return strings.HasPrefix(input, "0x") && common.IsHexAddress(input)
}

// ValidSocialHandle reports whether input is a platform handle, with or
// without the leading @.
func ValidSocialHandle(input string) bool {
	return handleRe.MatchString(strings.TrimPrefix(input, "@"))
}

// NormalizeWalletAddress lowercases a valid address. Storage and lookup
// always use this form.
func NormalizeWalletAddress(input string) string {
	return strings.ToLower(input)
}

// NormalizeSocialHandle strips the leading @ and lowercases.
func NormalizeSocialHandle(input string) string {
	return strings.ToLower(strings.TrimPrefix(input, "@"))
}

// Wallet validates and normalizes in one step, wrapping domain.ErrBadRequest
// on failure. Orchestrator entry points call this before touching any store.
func Wallet(input string) (string, error) {
	if !ValidWalletAddress(input) {
		return "", fmt.Errorf("invalid wallet address %q: %w", input, domain.ErrBadRequest)
	}
	return NormalizeWalletAddress(input), nil
}

// Handle validates and normalizes a social handle, wrapping
// domain.ErrBadRequest on failure.
func Handle(input string) (string, error) {
	if !ValidSocialHandle(input) {
		return "", fmt.Errorf("invalid social handle %q: %w", input, domain.ErrBadRequest)
	}
	return NormalizeSocialHandle(input), nil
}
