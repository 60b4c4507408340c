package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for an authenticated user token.
type UserClaims struct {
	UserID       string `json:"userId"`
	MobileNumber string `json:"mobileNumber"`
	jwt.RegisteredClaims
}

// OtpRequest is the request body for requesting a login challenge.
type OtpRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

// OtpRequestResponse is returned after an OTP challenge is created.
// Otp is only populated when the echo capability is enabled in config;
// it must stay empty in any hardened deployment.
type OtpRequestResponse struct {
	Success       bool   `json:"success"`
	RetryAfterSec int    `json:"retryAfterSec,omitempty"`
	Otp           string `json:"otp,omitempty"`
}

// OtpVerifyRequest is the request body for verifying a challenge.
type OtpVerifyRequest struct {
	MobileNumber string `json:"mobileNumber"`
	Otp          string `json:"otp"`
}

// OtpVerifyResponse is returned after a successful verification.
type OtpVerifyResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
