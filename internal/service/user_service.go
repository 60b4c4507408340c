package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"soulcare/internal/model"
	"soulcare/internal/repository"
	"soulcare/internal/session"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserService handles profile reads and edits
type UserService struct {
	userRepo repository.UserRepo
	log      *zap.SugaredLogger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepo, log *zap.SugaredLogger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log,
	}
}

// GetByID returns a user or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile validates the provided fields and persists them. A nil
// field is left untouched. When the update leaves both name and username
// filled in, the profile counts as completed.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, fields model.ProfileUpdate) (*model.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}

	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if len(name) < 2 {
			return nil, &session.ValidationError{Field: "name", Reason: "must be at least 2 characters"}
		}
		set["name"] = name
		user.Name = name
	}
	if fields.Username != nil {
		username := strings.TrimSpace(*fields.Username)
		if len(username) < 3 {
			return nil, &session.ValidationError{Field: "username", Reason: "must be at least 3 characters"}
		}
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrUsernameTaken
		}
		set["username"] = username
		user.Username = username
	}
	if fields.Email != nil {
		email := strings.TrimSpace(*fields.Email)
		if email != "" && !strings.Contains(email, "@") {
			return nil, &session.ValidationError{Field: "email", Reason: "invalid email address"}
		}
		set["email"] = email
	}
	if fields.DateOfBirth != nil {
		set["dateOfBirth"] = strings.TrimSpace(*fields.DateOfBirth)
	}
	if fields.ProfileImage != nil {
		set["profileImage"] = *fields.ProfileImage
	}
	if fields.Address != nil {
		set["address"] = strings.TrimSpace(*fields.Address)
	}
	if fields.Hobbies != nil {
		set["hobbies"] = *fields.Hobbies
	}
	if fields.Bio != nil {
		set["bio"] = strings.TrimSpace(*fields.Bio)
	}

	if len(set) == 0 {
		return nil, &session.ValidationError{Reason: "no fields to update"}
	}

	if user.Name != "" && user.Username != "" {
		set["profileCompleted"] = true
	}

	updated, err := s.userRepo.UpdateFields(ctx, userID, set)
	if err != nil {
		return nil, err
	}
	s.log.Infow("profile updated", "userId", userID, "completed", updated.ProfileCompleted)
	return updated, nil
}
