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

// AssessmentRepo handles MongoDB operations for assessment records
type AssessmentRepo interface {
	Create(ctx context.Context, rec *model.AssessmentRecord) (string, error)
	ListByUser(ctx context.Context, userID string) ([]model.AssessmentRecord, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, rec *model.AssessmentRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListByUser returns a user's records newest first.
func (r *assessmentRepo) ListByUser(ctx context.Context, userID string) ([]model.AssessmentRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.AssessmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
