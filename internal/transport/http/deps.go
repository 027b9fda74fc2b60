package http

import (
	"github.com/social-verify-api/internal/application/verification"
	jwtinfra "github.com/social-verify-api/internal/infrastructure/jwt"
)

// Deps holds everything the router needs. The stores and collaborators are
// already bound inside the verification service; the router only adds
// transport concerns on top.
type Deps struct {
	VerificationSvc verification.Service
	JWTProvider     *jwtinfra.Provider // nil disables the admin surface
}
