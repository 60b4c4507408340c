package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"soulcare/internal/config"
	"soulcare/internal/model"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("u%d", r.seq)
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByMobileNumber(ctx context.Context, mobileNumber string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.MobileNumber == mobileNumber {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateFields(ctx context.Context, id string, set bson.M) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if v, ok := set["name"].(string); ok {
		u.Name = v
	}
	if v, ok := set["username"].(string); ok {
		u.Username = v
	}
	if v, ok := set["profileCompleted"].(bool); ok {
		u.ProfileCompleted = v
	}
	cp := *u
	return &cp, nil
}

type memOtpRepo struct {
	mu   sync.Mutex
	otps []*model.OtpVerification
	seq  int
}

func (r *memOtpRepo) Create(ctx context.Context, otp *model.OtpVerification) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	otp.ID = fmt.Sprintf("otp%d", r.seq)
	otp.CreatedAt = time.Now()
	cp := *otp
	r.otps = append(r.otps, &cp)
	return otp.ID, nil
}

func (r *memOtpRepo) GetActiveByMobile(ctx context.Context, mobileNumber string) (*model.OtpVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.otps) - 1; i >= 0; i-- {
		o := r.otps[i]
		if o.MobileNumber == mobileNumber && !o.Verified && !o.Superseded && o.ExpiresAt.After(time.Now()) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOtpRepo) MarkVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.otps {
		if o.ID == id {
			o.Verified = true
		}
	}
	return nil
}

func (r *memOtpRepo) SupersedeByMobile(ctx context.Context, mobileNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.otps {
		if o.MobileNumber == mobileNumber && !o.Verified && !o.Superseded {
			o.Superseded = true
		}
	}
	return nil
}

// memCooldowns records arms but never reports time remaining, so tests
// exercise the in-flow countdown rather than the shared one.
type memCooldowns struct {
	arms int32
}

func (c *memCooldowns) Arm(ctx context.Context, mobileNumber string, d time.Duration) error {
	atomic.AddInt32(&c.arms, 1)
	return nil
}

func (c *memCooldowns) Remaining(ctx context.Context, mobileNumber string) (int, error) {
	return 0, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	cfg := &config.Config{
		Env:            "development",
		JWTSecret:      "test-secret",
		OTPEchoEnabled: true,
		OTPTTL:         5 * time.Minute,
		ResendCooldown: time.Minute,
		AuthFlowTTL:    10 * time.Minute,
	}
	log := zap.NewNop().Sugar()
	userSvc := NewUserService(users, log)
	svc := NewAuthService(users, &memOtpRepo{}, userSvc, &memCooldowns{}, cfg, log)
	t.Cleanup(svc.Close)
	return svc, users
}

const testMobile = "15550003333"

func TestLoginFlowEndToEnd(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.SubmitMobile(ctx, testMobile)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Otp, "echo mode returns the issued code")

	verify, err := svc.SubmitCode(ctx, testMobile, resp.Otp)
	require.NoError(t, err)
	assert.NotEmpty(t, verify.Token)
	require.NotNil(t, verify.User)
	assert.False(t, verify.User.ProfileCompleted)

	user, err := svc.CompleteProfile(ctx, verify.User.ID, "Jo", "jdoe")
	require.NoError(t, err)
	assert.True(t, user.ProfileCompleted)
	assert.Equal(t, "jdoe", user.Username)

	claims, err := svc.ValidateToken(verify.Token)
	require.NoError(t, err)
	assert.Equal(t, verify.User.ID, claims.UserID)
}

func TestSubmitMobileRestartsAbandonedFlow(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.SubmitMobile(ctx, testMobile)
	require.NoError(t, err)

	// Verify the code but abandon profile completion, parking the flow
	// past the Verify state.
	_, err = svc.SubmitCode(ctx, testMobile, resp.Otp)
	require.NoError(t, err)

	// A new login for the number must start over, not get stuck behind
	// the abandoned flow.
	resp2, err := svc.SubmitMobile(ctx, testMobile)
	require.NoError(t, err)
	assert.True(t, resp2.Success)
	require.NotEmpty(t, resp2.Otp)

	verify, err := svc.SubmitCode(ctx, testMobile, resp2.Otp)
	require.NoError(t, err)
	assert.NotEmpty(t, verify.Token)
}

func TestSubmitMobileWrongCodeAfterAbandon(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.SubmitMobile(ctx, testMobile)
	require.NoError(t, err)
	_, err = svc.SubmitCode(ctx, testMobile, resp.Otp)
	require.NoError(t, err)

	// The restarted flow supersedes the old challenge, so the old code
	// no longer verifies.
	_, err = svc.SubmitMobile(ctx, testMobile)
	require.NoError(t, err)
	_, err = svc.SubmitCode(ctx, testMobile, resp.Otp)
	assert.ErrorIs(t, err, ErrOtpInvalid)
}

func TestConcurrentSubmitMobileSerialized(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.SubmitMobile(ctx, testMobile); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	// Exactly one request wins; the rest land after the flow entered
	// Verify with its countdown running.
	assert.Equal(t, int32(1), atomic.LoadInt32(&successes))
}

func TestUpdateProfileRejectsTakenUsername(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	_, err := users.Create(ctx, &model.User{MobileNumber: "15550004444", Username: "taken"})
	require.NoError(t, err)

	resp, err := svc.SubmitMobile(ctx, testMobile)
	require.NoError(t, err)
	verify, err := svc.SubmitCode(ctx, testMobile, resp.Otp)
	require.NoError(t, err)

	_, err = svc.CompleteProfile(ctx, verify.User.ID, "Jo", "taken")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
