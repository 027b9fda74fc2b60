package handler

import (
	"errors"
	"net/http"

	"github.com/social-verify-api/internal/domain"
)

// httpError maps domain sentinel errors to HTTP status codes. Anything not
// recognized is a 500.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrExpired):
		status = http.StatusGone
	case errors.Is(err, domain.ErrEvidenceMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusBadGateway
	}
	writeError(w, status, err.Error())
}
