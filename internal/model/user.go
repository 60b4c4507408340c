package model

import "time"

// User is an account keyed by mobile number. It is created on the first
// OTP request for a number and filled in during profile completion.
type User struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	MobileNumber     string     `json:"mobileNumber" bson:"mobileNumber"`
	Name             string     `json:"name,omitempty" bson:"name,omitempty"`
	Username         string     `json:"username,omitempty" bson:"username,omitempty"`
	Email            string     `json:"email,omitempty" bson:"email,omitempty"`
	DateOfBirth      string     `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	ProfileImage     string     `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Address          string     `json:"address,omitempty" bson:"address,omitempty"`
	Hobbies          []string   `json:"hobbies,omitempty" bson:"hobbies,omitempty"`
	Bio              string     `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileCompleted bool       `json:"profileCompleted" bson:"profileCompleted"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ProfileUpdate enumerates the optional fields a profile edit may carry.
// Nil means "leave unchanged"; the zero value of the pointed-to type clears.
type ProfileUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Username     *string   `json:"username,omitempty"`
	Email        *string   `json:"email,omitempty"`
	DateOfBirth  *string   `json:"dateOfBirth,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Hobbies      *[]string `json:"hobbies,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
}
