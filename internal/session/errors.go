package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a transition is requested from a
	// state that does not allow it.
	ErrInvalidTransition = errors.New("transition not allowed in current state")

	// ErrQuotaExceeded marks a session blocked by the daily assessment limit.
	ErrQuotaExceeded = errors.New("daily assessment limit reached")

	// ErrNoActiveChallenge is returned when a code is submitted without a
	// pending OTP challenge.
	ErrNoActiveChallenge = errors.New("no active otp challenge")
)

// ValidationError is a local input problem. It never corrupts session state
// and never reaches the persistence gateway.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// GatewayError wraps a persistence failure so callers can distinguish it
// from local validation and retry in place.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsGateway reports whether err is a persistence-gateway failure.
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
