package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrExpired marks a challenge or pending OAuth state read past its TTL.
	ErrExpired = errors.New("expired")
	// ErrEvidenceMismatch marks fetched evidence that does not satisfy the
	// challenge (code not in bio, wallet or hashtags not in tweet). The
	// underlying challenge is not consumed.
	ErrEvidenceMismatch = errors.New("evidence mismatch")
	// ErrTooManyAttempts marks a challenge whose attempt budget is spent.
	ErrTooManyAttempts = errors.New("too many attempts")
	// ErrUnavailable marks a collaborator failure (social platform fetch,
	// OAuth code exchange, attestation submission).
	ErrUnavailable = errors.New("collaborator unavailable")
)
