package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"soulcare/internal/service"
	"soulcare/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondError maps the error taxonomy onto HTTP statuses. Validation
// problems are the client's to fix; gateway failures are retryable and
// reported as such.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case session.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOtpInvalid):
		writeError(w, http.StatusUnauthorized, service.ErrOtpInvalid.Error())
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrResendCooldown), errors.Is(err, session.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNoSession):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrInvalidTransition), errors.Is(err, session.ErrNoActiveChallenge):
		writeError(w, http.StatusConflict, err.Error())
	case session.IsGateway(err):
		writeError(w, http.StatusBadGateway, "persistence unavailable, please retry")
	default:
		// Unclassified errors carry internal detail (driver messages, wrap
		// chains); clients get a generic body, the services log the cause.
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
