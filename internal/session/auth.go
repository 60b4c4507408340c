package session

import (
	"context"
	"regexp"
	"strings"

	"soulcare/internal/model"
)

// AuthState names the states of a login flow.
type AuthState string

const (
	AuthLogin         AuthState = "login"
	AuthVerify        AuthState = "verify"
	AuthProfile       AuthState = "profile"
	AuthAuthenticated AuthState = "authenticated"
)

// AuthGateway is the persistence surface the login flow drives.
type AuthGateway interface {
	RequestOtp(ctx context.Context, mobileNumber string) (*model.OtpRequestResponse, error)
	VerifyOtp(ctx context.Context, mobileNumber, otp string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID string, fields model.ProfileUpdate) (*model.User, error)
}

var (
	mobileRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	otpRe    = regexp.MustCompile(`^[0-9]{6}$`)
)

// AuthSession walks one device through mobile submission, OTP verification,
// and profile completion. The resend cooldown ticks inside the session and
// is stopped on Close.
type AuthSession struct {
	State        AuthState
	MobileNumber string
	IssuedOtp    string // populated only when the gateway echoes in dev mode
	User         *model.User

	cooldown *Cooldown
}

// NewAuthSession starts a flow, honoring the re-entry rule for a cached
// identity: a completed profile skips straight to Authenticated, an
// incomplete one resumes at Profile.
func NewAuthSession(cached *model.User) *AuthSession {
	s := &AuthSession{State: AuthLogin, cooldown: NewCooldown(ResendCooldownSeconds)}
	if cached != nil {
		s.User = cached
		s.MobileNumber = cached.MobileNumber
		if cached.ProfileCompleted {
			s.State = AuthAuthenticated
		} else {
			s.State = AuthProfile
		}
	}
	return s
}

// SubmitMobile requests an OTP challenge for the number and moves the flow
// to Verify. In Verify it acts as a resend, gated on the cooldown; each
// successful request restarts the countdown at sixty.
func (s *AuthSession) SubmitMobile(ctx context.Context, gw AuthGateway, mobileNumber string) error {
	if s.State != AuthLogin && s.State != AuthVerify {
		return ErrInvalidTransition
	}
	mobileNumber = strings.TrimSpace(mobileNumber)
	if !mobileRe.MatchString(mobileNumber) {
		return &ValidationError{Field: "mobileNumber", Reason: "must be 10-15 digits"}
	}
	if s.State == AuthVerify && !s.cooldown.Ready() {
		return &ValidationError{Field: "mobileNumber", Reason: "resend not available yet"}
	}

	resp, err := gw.RequestOtp(ctx, mobileNumber)
	if err != nil {
		return &GatewayError{Op: "requestOtp", Err: err}
	}

	s.State = AuthVerify
	s.MobileNumber = mobileNumber
	s.IssuedOtp = resp.Otp
	s.cooldown.Start()
	return nil
}

// SubmitCode verifies a six-digit code. Malformed codes are rejected
// locally and never reach the gateway. On a match the flow carries the
// returned user forward: to Profile when it still needs completion, or
// straight to Authenticated for a returning user.
func (s *AuthSession) SubmitCode(ctx context.Context, gw AuthGateway, code string) error {
	if s.State != AuthVerify {
		return ErrInvalidTransition
	}
	if !otpRe.MatchString(code) {
		return &ValidationError{Field: "otp", Reason: "code must be exactly 6 digits"}
	}

	user, err := gw.VerifyOtp(ctx, s.MobileNumber, code)
	if err != nil {
		return &GatewayError{Op: "verifyOtp", Err: err}
	}

	s.User = user
	s.IssuedOtp = ""
	if user.ProfileCompleted {
		s.State = AuthAuthenticated
	} else {
		s.State = AuthProfile
	}
	return nil
}

// SubmitProfile completes the profile with name and username and moves the
// flow to Authenticated. On gateway failure the flow stays in Profile for
// retry.
func (s *AuthSession) SubmitProfile(ctx context.Context, gw AuthGateway, name, username string) error {
	if s.State != AuthProfile {
		return ErrInvalidTransition
	}
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if len(name) < 2 {
		return &ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	if len(username) < 3 {
		return &ValidationError{Field: "username", Reason: "must be at least 3 characters"}
	}

	user, err := gw.UpdateUserProfile(ctx, s.User.ID, model.ProfileUpdate{
		Name:     &name,
		Username: &username,
	})
	if err != nil {
		return &GatewayError{Op: "updateUserProfile", Err: err}
	}

	s.User = user
	s.State = AuthAuthenticated
	return nil
}

// Back navigates one step toward Login. Leaving Verify discards the
// in-flight challenge; leaving Profile clears the cached identity.
func (s *AuthSession) Back() {
	switch s.State {
	case AuthVerify:
		s.MobileNumber = ""
		s.IssuedOtp = ""
		s.cooldown.Stop()
		s.State = AuthLogin
	case AuthProfile, AuthAuthenticated:
		s.User = nil
		s.MobileNumber = ""
		s.State = AuthLogin
	}
}

// ResendRemaining reports the seconds left before a new OTP may be
// requested.
func (s *AuthSession) ResendRemaining() int {
	return s.cooldown.Remaining()
}

// Close releases the session's timer. Safe to call more than once.
func (s *AuthSession) Close() {
	s.cooldown.Stop()
}
