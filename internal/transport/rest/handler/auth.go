package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"soulcare/internal/model"
	"soulcare/internal/service"
)

// AuthHandler handles the OTP login endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// RequestOtp handles POST /v1/auth/otp/request
func (h *AuthHandler) RequestOtp(w http.ResponseWriter, r *http.Request) {
	var req model.OtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.SubmitMobile(r.Context(), req.MobileNumber)
	if errors.Is(err, service.ErrResendCooldown) {
		// Not a failure: the client shows the countdown from retryAfterSec.
		writeJSON(w, http.StatusTooManyRequests, resp)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// VerifyOtp handles POST /v1/auth/otp/verify
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req model.OtpVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.SubmitCode(r.Context(), req.MobileNumber, req.Otp)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Back handles POST /v1/auth/back — back navigation in the login flow,
// discarding the in-flight challenge.
func (h *AuthHandler) Back(w http.ResponseWriter, r *http.Request) {
	var req model.OtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.authSvc.Back(req.MobileNumber)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
