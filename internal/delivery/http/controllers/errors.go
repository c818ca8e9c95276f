package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// writeDomainError translates a service error into the response envelope.
// When the upstream API attached a human-readable detail it is surfaced
// verbatim; otherwise the sentinel picks a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code, message := http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, message = http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed"
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = http.StatusNotFound, helpers.ErrCodeNotFound, "not found"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		status, code, message = http.StatusConflict, helpers.ErrCodeConflict, "already registered"
	case errors.Is(err, domain.ErrUnavailable):
		status, code, message = http.StatusBadGateway, helpers.ErrCodeUnavailable, "event service unavailable"
	}

	var remote *domain.RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		message = remote.Detail
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, message)
}
