package handler

import (
	"encoding/json"
	"net/http"

	"soulcare/internal/questionbank"
	"soulcare/internal/service"
	"soulcare/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment session and history endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Questions handles GET /v1/questions
func (h *AssessmentHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, questionbank.All())
}

// StartSession handles POST /v1/assessments/session
func (h *AssessmentHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	view, err := h.assessmentSvc.StartSession(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// GetSession handles GET /v1/assessments/session
func (h *AssessmentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	view, err := h.assessmentSvc.GetSession(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AnswerRequest is the request body for recording an answer.
type AnswerRequest struct {
	Index int `json:"index"`
	Value int `json:"value"`
}

// Answer handles PUT /v1/assessments/session/answer
func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.assessmentSvc.Answer(r.Context(), userID, req.Index, req.Value)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Next handles POST /v1/assessments/session/next
func (h *AssessmentHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	view, err := h.assessmentSvc.Next(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Previous handles POST /v1/assessments/session/previous
func (h *AssessmentHandler) Previous(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	view, err := h.assessmentSvc.Previous(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Reset handles POST /v1/assessments/session/reset
func (h *AssessmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	view, err := h.assessmentSvc.Reset(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// History handles GET /v1/assessments
func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	records, err := h.assessmentSvc.History(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Quota handles GET /v1/assessments/quota
func (h *AssessmentHandler) Quota(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quota, err := h.assessmentSvc.Quota(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quota)
}
