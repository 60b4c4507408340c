package model

import "time"

// OtpVerification is one login challenge for a mobile number. A new request
// for the same number supersedes earlier unverified challenges instead of
// deleting them.
type OtpVerification struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	MobileNumber string    `json:"mobileNumber" bson:"mobileNumber"`
	Otp          string    `json:"otp" bson:"otp"`
	ExpiresAt    time.Time `json:"expiresAt" bson:"expiresAt"`
	Verified     bool      `json:"verified" bson:"verified"`
	Superseded   bool      `json:"superseded" bson:"superseded"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
