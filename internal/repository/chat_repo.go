package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soulcare/internal/model"
)

// ChatRepo handles MongoDB operations for support-chat messages
type ChatRepo interface {
	Create(ctx context.Context, msg *model.ChatMessage) (string, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]model.ChatMessage, error)
}

type chatRepo struct {
	collection *mongo.Collection
}

// NewChatRepo creates a new chat repository
func NewChatRepo(db *mongo.Database) ChatRepo {
	return &chatRepo{
		collection: db.Collection("chat_messages"),
	}
}

func (r *chatRepo) Create(ctx context.Context, msg *model.ChatMessage) (string, error) {
	if msg.ID == "" {
		msg.ID = primitive.NewObjectID().Hex()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return "", err
	}
	return msg.ID, nil
}

// ListByUser returns a user's messages oldest first, capped at limit.
func (r *chatRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]model.ChatMessage, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
