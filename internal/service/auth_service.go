package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"soulcare/internal/cache"
	"soulcare/internal/config"
	"soulcare/internal/model"
	"soulcare/internal/repository"
	"soulcare/internal/session"
)

var (
	ErrOtpInvalid     = errors.New("invalid or expired code")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrResendCooldown = errors.New("resend cooldown active")
)

// AuthService drives the mobile-number login flow. It implements the
// persistence side of session.AuthGateway and manages the per-number flow
// state machines on top of it.
type AuthService struct {
	userRepo  repository.UserRepo
	otpRepo   repository.OtpRepo
	userSvc   *UserService
	cooldowns cache.CooldownCache
	flows     *session.AuthManager
	cfg       *config.Config
	log       *zap.SugaredLogger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepo,
	otpRepo repository.OtpRepo,
	userSvc *UserService,
	cooldowns cache.CooldownCache,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *AuthService {
	if cfg.OTPEchoEnabled {
		log.Warnw("otp echo mode is ENABLED; issued codes are returned in responses", "env", cfg.Env)
	}
	return &AuthService{
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		userSvc:   userSvc,
		cooldowns: cooldowns,
		flows:     session.NewAuthManager(cfg.AuthFlowTTL),
		cfg:       cfg,
		log:       log,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lock serializes flow transitions per mobile number. The manager hands the
// same session to every request for a number, so one transition runs at a
// time.
func (s *AuthService) lock(mobileNumber string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[mobileNumber]
	if !ok {
		l = &sync.Mutex{}
		s.locks[mobileNumber] = l
	}
	return l
}

// Close stops all live login flows.
func (s *AuthService) Close() {
	s.flows.Close()
}

// SubmitMobile starts (or re-enters) the login flow for a number and
// issues an OTP challenge. The server-side cooldown is checked before the
// flow runs so a second device cannot sidestep the countdown.
func (s *AuthService) SubmitMobile(ctx context.Context, mobileNumber string) (*model.OtpRequestResponse, error) {
	if rem, err := s.cooldowns.Remaining(ctx, mobileNumber); err == nil && rem > 0 {
		return &model.OtpRequestResponse{Success: false, RetryAfterSec: rem}, ErrResendCooldown
	}

	l := s.lock(mobileNumber)
	l.Lock()
	defer l.Unlock()

	flow := s.flows.GetOrCreate(mobileNumber)
	if flow.State == session.AuthProfile || flow.State == session.AuthAuthenticated {
		// A fresh mobile submission is a new login, not a step in a flow
		// abandoned past verification. Start over.
		s.flows.Drop(mobileNumber)
		flow = s.flows.GetOrCreate(mobileNumber)
	}
	if err := flow.SubmitMobile(ctx, s, mobileNumber); err != nil {
		return nil, err
	}

	return &model.OtpRequestResponse{
		Success:       true,
		RetryAfterSec: flow.ResendRemaining(),
		Otp:           flow.IssuedOtp,
	}, nil
}

// SubmitCode verifies the code for a pending challenge and, on success,
// issues a bearer token for the flow's user.
func (s *AuthService) SubmitCode(ctx context.Context, mobileNumber, code string) (*model.OtpVerifyResponse, error) {
	l := s.lock(mobileNumber)
	l.Lock()
	defer l.Unlock()

	flow := s.flows.Get(mobileNumber)
	if flow == nil {
		return nil, session.ErrNoActiveChallenge
	}

	if err := flow.SubmitCode(ctx, s, code); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(flow.User)
	if err != nil {
		return nil, err
	}

	resp := &model.OtpVerifyResponse{Token: token, User: flow.User}
	if flow.State == session.AuthAuthenticated {
		s.flows.Drop(mobileNumber)
	}
	return resp, nil
}

// CompleteProfile finishes the Profile step of the login flow for the
// authenticated user. When the flow is no longer in memory (for example
// after a restart) it is rebuilt from the stored identity, which lands in
// the right state by the re-entry rule.
func (s *AuthService) CompleteProfile(ctx context.Context, userID, name, username string) (*model.User, error) {
	user, err := s.userSvc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	l := s.lock(user.MobileNumber)
	l.Lock()
	defer l.Unlock()

	flow := s.flows.Get(user.MobileNumber)
	if flow == nil || flow.User == nil || flow.User.ID != user.ID {
		flow = session.NewAuthSession(user)
		defer flow.Close()
	}

	if err := flow.SubmitProfile(ctx, s, name, username); err != nil {
		return nil, err
	}

	s.flows.Drop(user.MobileNumber)
	return flow.User, nil
}

// Back navigates the login flow for a number one step toward Login.
func (s *AuthService) Back(mobileNumber string) {
	l := s.lock(mobileNumber)
	l.Lock()
	defer l.Unlock()

	if flow := s.flows.Get(mobileNumber); flow != nil {
		flow.Back()
		if flow.State == session.AuthLogin {
			s.flows.Drop(mobileNumber)
		}
	}
}

// RequestOtp creates or refreshes the challenge for a number, superseding
// any pending one, and arms the resend cooldown. The user record is
// created on the first request for a new number.
func (s *AuthService) RequestOtp(ctx context.Context, mobileNumber string) (*model.OtpRequestResponse, error) {
	user, err := s.userRepo.GetByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &model.User{MobileNumber: mobileNumber}
		if _, err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log.Infow("new user registered", "userId", user.ID)
	}

	if err := s.otpRepo.SupersedeByMobile(ctx, mobileNumber); err != nil {
		return nil, fmt.Errorf("failed to supersede challenges: %w", err)
	}

	code, err := generateOtp()
	if err != nil {
		return nil, err
	}

	otp := &model.OtpVerification{
		MobileNumber: mobileNumber,
		Otp:          code,
		ExpiresAt:    time.Now().Add(s.cfg.OTPTTL),
	}
	if _, err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	if err := s.cooldowns.Arm(ctx, mobileNumber, s.cfg.ResendCooldown); err != nil {
		s.log.Warnw("failed to arm resend cooldown", "error", err)
	}

	// TODO: hand the code to the SMS provider once one is provisioned.
	s.log.Infow("otp challenge issued", "otpId", otp.ID)

	resp := &model.OtpRequestResponse{
		Success:       true,
		RetryAfterSec: int(s.cfg.ResendCooldown.Seconds()),
	}
	if s.cfg.OTPEchoEnabled && !s.cfg.IsProduction() {
		resp.Otp = code
	}
	return resp, nil
}

// VerifyOtp checks a code against the active challenge for a number and,
// on a match, marks it verified and returns the associated user.
func (s *AuthService) VerifyOtp(ctx context.Context, mobileNumber, code string) (*model.User, error) {
	otp, err := s.otpRepo.GetActiveByMobile(ctx, mobileNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up challenge: %w", err)
	}
	if otp == nil {
		return nil, ErrOtpInvalid
	}
	if subtle.ConstantTimeCompare([]byte(otp.Otp), []byte(code)) != 1 {
		return nil, ErrOtpInvalid
	}

	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("failed to mark challenge verified: %w", err)
	}

	user, err := s.userRepo.GetByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &model.User{MobileNumber: mobileNumber}
		if _, err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	s.log.Infow("otp verified", "userId", user.ID)
	return user, nil
}

// UpdateUserProfile persists profile fields through the user service.
func (s *AuthService) UpdateUserProfile(ctx context.Context, userID string, fields model.ProfileUpdate) (*model.User, error) {
	return s.userSvc.UpdateProfile(ctx, userID, fields)
}

// GenerateToken signs a bearer token for a user.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	claims := &model.UserClaims{
		UserID:       user.ID,
		MobileNumber: user.MobileNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken validates a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
