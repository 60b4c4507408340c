package handler

import (
	"encoding/json"
	"net/http"

	"soulcare/internal/model"
	"soulcare/internal/service"
	"soulcare/internal/transport/rest/middleware"
)

// ChatHandler handles support-chat endpoints
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// List handles GET /v1/chat/messages
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	messages, err := h.chatSvc.ListMessages(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// SendRequest is the request body for posting a chat message.
type SendRequest struct {
	Body string `json:"body"`
}

// Send handles POST /v1/chat/messages
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), userID, model.ChatSenderUser, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
