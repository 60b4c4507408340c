package handler

import (
	"encoding/json"
	"net/http"

	"soulcare/internal/model"
	"soulcare/internal/service"
	"soulcare/internal/transport/rest/middleware"
)

// UserHandler handles profile endpoints
type UserHandler struct {
	userSvc *service.UserService
	authSvc *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService, authSvc *service.AuthService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		authSvc: authSvc,
	}
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userSvc.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// CompleteProfileRequest is the request body for finishing the login flow.
type CompleteProfileRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// CompleteProfile handles POST /v1/users/me/complete-profile
func (h *UserHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CompleteProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authSvc.CompleteProfile(r.Context(), userID, req.Name, req.Username)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /v1/users/me/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var fields model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), userID, fields)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
