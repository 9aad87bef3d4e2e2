package handler

import (
	"errors"
	"net/http"

	"github.com/synapsehub/support-portal/internal/domain"
)

// httpError maps domain sentinel errors to HTTP status codes. Error text
// comes from the service layer, which only produces user-safe messages.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrExpired),
		errors.Is(err, domain.ErrMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnverified):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrUpstreamAuth), errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
