package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the uniform login failure: an unknown login
	// and a wrong password produce the same error so the response does not
	// reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNoPasskeyRegistered is returned when a passkey login ceremony is
	// requested for an account that has no registered credential.
	ErrNoPasskeyRegistered = errors.New("no passkey registered for this account")

	// ErrNoCeremonyInProgress is returned when a Finish call arrives without
	// a preceding Begin for the same user.
	ErrNoCeremonyInProgress = errors.New("no ceremony in progress")

	// ErrCeremonyFailed is returned when an authenticator response cannot be
	// parsed or fails cryptographic verification.
	ErrCeremonyFailed = errors.New("passkey ceremony failed")
)

// LockedError reports that an account is locked out. RetryAfter is how long
// remains until the lock expires; callers use [errors.As] to extract it.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked, try again in %d minutes", e.RetryAfterMinutes())
}

// RetryAfterMinutes returns the remaining lock time rounded up to whole
// minutes, so a lock about to expire still reports one minute.
func (e *LockedError) RetryAfterMinutes() int {
	return int(math.Ceil(e.RetryAfter.Minutes()))
}

// PasswordPolicyError carries every password policy violation found during
// registration, in the order the checks run.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return "password does not meet policy: " + strings.Join(e.Violations, "; ")
}
