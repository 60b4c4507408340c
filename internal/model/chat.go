package model

import "time"

// ChatSender identifies which side of the support chat sent a message.
type ChatSender string

const (
	ChatSenderUser    ChatSender = "user"
	ChatSenderSupport ChatSender = "support"
)

// ChatMessage is one support-chat message for a user.
type ChatMessage struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"userId"`
	Sender    ChatSender `json:"sender" bson:"sender"`
	Body      string     `json:"body" bson:"body"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}
