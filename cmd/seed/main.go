package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soulcare/internal/model"
	"soulcare/internal/repository"
)

// Seeds a demo user with a short assessment history, for local development
// against an empty database.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "soulcare"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	userRepo := repository.NewUserRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)

	const mobile = "15550009999"
	user, err := userRepo.GetByMobileNumber(ctx, mobile)
	if err != nil {
		log.Fatalf("failed to look up demo user: %v", err)
	}
	if user == nil {
		user = &model.User{
			MobileNumber:     mobile,
			Name:             "Demo Student",
			Username:         "demo",
			ProfileCompleted: true,
		}
		id, err := userRepo.Create(ctx, user)
		if err != nil {
			log.Fatalf("failed to create demo user: %v", err)
		}
		user.ID = id
		log.Printf("created demo user %s (%s)", user.Username, id)
	} else {
		log.Printf("demo user already present (%s)", user.ID)
	}

	now := time.Now()
	history := []struct {
		daysAgo int
		score   int
		level   model.StressLevel
	}{
		{7, 18, model.StressLow},
		{4, 27, model.StressMedium},
		{1, 38, model.StressHigh},
	}
	for _, h := range history {
		rec := &model.AssessmentRecord{
			UserID:      user.ID,
			Score:       h.score,
			StressLevel: h.level,
			CreatedAt:   now.AddDate(0, 0, -h.daysAgo),
		}
		if _, err := assessmentRepo.Create(ctx, rec); err != nil {
			log.Fatalf("failed to seed assessment: %v", err)
		}
	}
	log.Printf("seeded %d assessment records for %s", len(history), user.Username)
}
