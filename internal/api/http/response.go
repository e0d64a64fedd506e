package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors to client-facing responses. Internal detail
// (driver errors, schema names) never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Message, Field: ve.Field})
		return
	}

	var rle *domain.RateLimitError
	if errors.As(err, &rle) {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rle.RetryAfter.Seconds())+1))
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: domain.ErrRateLimitExceeded.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrAvailabilityConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrUnconfiguredRate):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrBookingNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrRateLimitExceeded):
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: err.Error()})
	default:
		// Includes ErrInventoryNotFound: a data-integrity fault the caller
		// cannot fix. Detail goes to the log, not the client.
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "something went wrong, please try again"})
	}
}
