package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"soulcare/internal/model"
	"soulcare/internal/repository"
	"soulcare/internal/session"
)

const chatHistoryLimit = 200

// ChatService persists support-chat messages and fans them out to the
// user's live connections.
type ChatService struct {
	chatRepo    repository.ChatRepo
	log         *zap.SugaredLogger
	broadcaster Broadcaster
}

// NewChatService creates a new chat service
func NewChatService(chatRepo repository.ChatRepo, log *zap.SugaredLogger) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		log:      log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ChatService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SendMessage stores a message and pushes it to the user's open sockets.
func (s *ChatService) SendMessage(ctx context.Context, userID string, sender model.ChatSender, body string) (*model.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &session.ValidationError{Field: "body", Reason: "message body is empty"}
	}

	msg := &model.ChatMessage{
		UserID: userID,
		Sender: sender,
		Body:   body,
	}
	if _, err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(userID, "chat_message", msg)
	}
	return msg, nil
}

// ListMessages returns a user's chat history, oldest first.
func (s *ChatService) ListMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	return s.chatRepo.ListByUser(ctx, userID, chatHistoryLimit)
}
