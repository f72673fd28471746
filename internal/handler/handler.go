package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already partially written; nothing useful to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// respondError maps a service-layer failure to the wire. Validation failures
// carry their field list; permission failures stay generic; unknown errors
// become a 500 without detail.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var validationErrs model.ValidationErrors
	if errors.As(err, &validationErrs) {
		logger.Warn().Err(err).Msg("validation failed")
		writeJSON(w, http.StatusBadRequest, model.ValidationErrorResponse{Errors: validationErrs})
		return
	}

	if errors.Is(err, auth.ErrUnauthenticated) {
		writeError(w, http.StatusUnauthorized, "authentication required", logger)
		return
	}
	if errors.Is(err, auth.ErrForbidden) {
		writeError(w, http.StatusForbidden, "forbidden", logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case model.ErrCodeOrderNotFound, model.ErrCodeNotFound:
			writeError(w, http.StatusNotFound, "not found", logger)
		case model.ErrCodeProductNotFound:
			// A missing product referenced by a write is a bad request; the
			// target resource itself exists.
			writeError(w, http.StatusBadRequest, domainErr.Message, logger)
		default:
			writeError(w, http.StatusBadRequest, domainErr.Message, logger)
		}
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}

// respondNotFound is for lookups where a missing product is the resource
// itself, not a reference inside a payload.
func respondNotFound(w http.ResponseWriter, logger zerolog.Logger) {
	writeError(w, http.StatusNotFound, "not found", logger)
}
