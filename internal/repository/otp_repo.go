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

// OtpRepo handles MongoDB operations for OTP challenges
type OtpRepo interface {
	Create(ctx context.Context, otp *model.OtpVerification) (string, error)
	GetActiveByMobile(ctx context.Context, mobileNumber string) (*model.OtpVerification, error)
	MarkVerified(ctx context.Context, id string) error
	SupersedeByMobile(ctx context.Context, mobileNumber string) error
}

type otpRepo struct {
	collection *mongo.Collection
}

// NewOtpRepo creates a new OTP repository
func NewOtpRepo(db *mongo.Database) OtpRepo {
	return &otpRepo{
		collection: db.Collection("otps"),
	}
}

func (r *otpRepo) Create(ctx context.Context, otp *model.OtpVerification) (string, error) {
	if otp.ID == "" {
		otp.ID = primitive.NewObjectID().Hex()
	}
	otp.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, otp); err != nil {
		return "", err
	}
	return otp.ID, nil
}

// GetActiveByMobile returns the newest challenge for a number that is not
// verified, not superseded, and not yet expired.
func (r *otpRepo) GetActiveByMobile(ctx context.Context, mobileNumber string) (*model.OtpVerification, error) {
	filter := bson.M{
		"mobileNumber": mobileNumber,
		"verified":     false,
		"superseded":   false,
		"expiresAt":    bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	var otp model.OtpVerification
	err := r.collection.FindOne(ctx, filter, opts).Decode(&otp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepo) MarkVerified(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"verified": true}})
	return err
}

// SupersedeByMobile marks every pending challenge for a number as
// superseded. Records stay behind for audit; they just stop matching.
func (r *otpRepo) SupersedeByMobile(ctx context.Context, mobileNumber string) error {
	filter := bson.M{
		"mobileNumber": mobileNumber,
		"verified":     false,
		"superseded":   false,
	}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"superseded": true}})
	return err
}
