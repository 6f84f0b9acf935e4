package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-bank-cards/internal/jwt"
	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/services"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: card not found
	Error string `json:"error"`
}

// statusOf maps a service error to an HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrRejected), errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with the status derived from its kind. Internal
// errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Errorw("internal server error", "err", err)
		msg = "Internal server error"
		if errors.Is(err, services.ErrCardNumberGeneration) {
			msg = services.ErrCardNumberGeneration.Error()
		}
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeBadRequest writes a 400 with msg.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// principal returns the claims stored by the auth middleware or writes 401.
func principal(w http.ResponseWriter, r *http.Request) (*jwt.Claims, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return claims, true
}
