package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulcare/internal/model"
)

type fakeAuthGateway struct {
	requestCalls int
	verifyCalls  int
	updateCalls  int

	verifyErr error
	user      *model.User
}

func (g *fakeAuthGateway) RequestOtp(ctx context.Context, mobileNumber string) (*model.OtpRequestResponse, error) {
	g.requestCalls++
	return &model.OtpRequestResponse{Success: true, Otp: "123456"}, nil
}

func (g *fakeAuthGateway) VerifyOtp(ctx context.Context, mobileNumber, otp string) (*model.User, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.user, nil
}

func (g *fakeAuthGateway) UpdateUserProfile(ctx context.Context, userID string, fields model.ProfileUpdate) (*model.User, error) {
	g.updateCalls++
	u := *g.user
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Username != nil {
		u.Username = *fields.Username
	}
	u.ProfileCompleted = true
	return &u, nil
}

const testMobile = "15550001234"

func newVerifyFlow(t *testing.T, gw *fakeAuthGateway) *AuthSession {
	t.Helper()
	s := NewAuthSession(nil)
	t.Cleanup(s.Close)
	require.NoError(t, s.SubmitMobile(context.Background(), gw, testMobile))
	require.Equal(t, AuthVerify, s.State)
	return s
}

func TestSubmitMobileValidatesFormat(t *testing.T) {
	gw := &fakeAuthGateway{}
	s := NewAuthSession(nil)
	defer s.Close()

	for _, bad := range []string{"", "abc", "123", "+12-555", "123456789012345678"} {
		err := s.SubmitMobile(context.Background(), gw, bad)
		assert.Truef(t, IsValidation(err), "%q should fail local validation", bad)
	}
	assert.Equal(t, AuthLogin, s.State)
	assert.Equal(t, 0, gw.requestCalls)
}

func TestSubmitCodeRejectsMalformedLocally(t *testing.T) {
	gw := &fakeAuthGateway{user: &model.User{ID: "u1", MobileNumber: testMobile}}
	s := newVerifyFlow(t, gw)

	for _, bad := range []string{"12345", "1234567", "12a456", "", "12 456"} {
		err := s.SubmitCode(context.Background(), gw, bad)
		assert.Truef(t, IsValidation(err), "%q should fail local validation", bad)
	}
	assert.Equal(t, AuthVerify, s.State)
	assert.Equal(t, 0, gw.verifyCalls, "malformed codes must never reach the gateway")
}

func TestVerifyMismatchStaysInVerify(t *testing.T) {
	gw := &fakeAuthGateway{verifyErr: errors.New("invalid or expired code")}
	s := newVerifyFlow(t, gw)

	err := s.SubmitCode(context.Background(), gw, "654321")
	require.Error(t, err)
	assert.True(t, IsGateway(err))
	assert.Equal(t, AuthVerify, s.State)
}

func TestVerifyMovesNewUserToProfile(t *testing.T) {
	gw := &fakeAuthGateway{user: &model.User{ID: "u1", MobileNumber: testMobile}}
	s := newVerifyFlow(t, gw)

	require.NoError(t, s.SubmitCode(context.Background(), gw, "123456"))
	assert.Equal(t, AuthProfile, s.State)
	assert.Empty(t, s.IssuedOtp, "challenge is consumed on verification")
}

func TestVerifySkipsProfileForReturningUser(t *testing.T) {
	gw := &fakeAuthGateway{user: &model.User{ID: "u1", MobileNumber: testMobile, ProfileCompleted: true}}
	s := newVerifyFlow(t, gw)

	require.NoError(t, s.SubmitCode(context.Background(), gw, "123456"))
	assert.Equal(t, AuthAuthenticated, s.State)
}

func TestSubmitProfileValidatesLengths(t *testing.T) {
	gw := &fakeAuthGateway{user: &model.User{ID: "u1", MobileNumber: testMobile}}
	s := newVerifyFlow(t, gw)
	require.NoError(t, s.SubmitCode(context.Background(), gw, "123456"))

	assert.True(t, IsValidation(s.SubmitProfile(context.Background(), gw, "J", "jdoe")))
	assert.True(t, IsValidation(s.SubmitProfile(context.Background(), gw, "Jo", "jd")))
	assert.Equal(t, AuthProfile, s.State)
	assert.Equal(t, 0, gw.updateCalls)

	require.NoError(t, s.SubmitProfile(context.Background(), gw, "Jo", "jdoe"))
	assert.Equal(t, AuthAuthenticated, s.State)
	assert.True(t, s.User.ProfileCompleted)
}

func TestResendGatedOnCooldown(t *testing.T) {
	gw := &fakeAuthGateway{}
	s := newVerifyFlow(t, gw)

	// The countdown is running, so an immediate resend is refused without
	// touching the gateway again.
	err := s.SubmitMobile(context.Background(), gw, testMobile)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 1, gw.requestCalls)
	assert.Equal(t, AuthVerify, s.State)

	// Once the countdown lapses the resend goes through and restarts the
	// full count.
	s.cooldown.Stop()
	require.True(t, s.cooldown.Ready())

	require.NoError(t, s.SubmitMobile(context.Background(), gw, testMobile))
	assert.Equal(t, 2, gw.requestCalls)
	assert.Equal(t, AuthVerify, s.State)
	assert.Equal(t, ResendCooldownSeconds, s.ResendRemaining())
}

func TestBackFromVerifyDiscardsChallenge(t *testing.T) {
	gw := &fakeAuthGateway{}
	s := newVerifyFlow(t, gw)

	s.Back()
	assert.Equal(t, AuthLogin, s.State)
	assert.Empty(t, s.MobileNumber)
	assert.Empty(t, s.IssuedOtp)
}

func TestBackFromProfileClearsIdentity(t *testing.T) {
	gw := &fakeAuthGateway{user: &model.User{ID: "u1", MobileNumber: testMobile}}
	s := newVerifyFlow(t, gw)
	require.NoError(t, s.SubmitCode(context.Background(), gw, "123456"))

	s.Back()
	assert.Equal(t, AuthLogin, s.State)
	assert.Nil(t, s.User)
}

func TestReentryWithCompletedProfile(t *testing.T) {
	cached := &model.User{ID: "u1", MobileNumber: testMobile, ProfileCompleted: true}
	s := NewAuthSession(cached)
	defer s.Close()
	assert.Equal(t, AuthAuthenticated, s.State)
}

func TestReentryWithIncompleteProfile(t *testing.T) {
	cached := &model.User{ID: "u1", MobileNumber: testMobile}
	s := NewAuthSession(cached)
	defer s.Close()
	assert.Equal(t, AuthProfile, s.State)
}

func TestSubmitCodeWithoutChallenge(t *testing.T) {
	gw := &fakeAuthGateway{}
	s := NewAuthSession(nil)
	defer s.Close()

	err := s.SubmitCode(context.Background(), gw, "123456")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
