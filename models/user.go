package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, credential data, and the lockout state
// maintained by the login path. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier, case-sensitive as stored.
	// Immutable after registration.
	Login string `json:"login"`

	// Password carries the plain-text password only on inbound
	// register/login requests. It is never persisted and never serialized
	// back to the client.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// FailedAttempts counts consecutive failed login attempts.
	// Reset to zero on any successful credential verification.
	FailedAttempts int `json:"-"`

	// LastAttemptTime records the most recent failed login attempt.
	// Informational only; not used by the lockout decision itself.
	LastAttemptTime *time.Time `json:"-"`

	// LockedUntil, when set and in the future, refuses login regardless of
	// credential correctness. Lock expiry is evaluated lazily on access;
	// there is no background timer.
	LockedUntil *time.Time `json:"-"`

	// PasskeyCredentialID is the WebAuthn credential identifier registered
	// for this user, base64url-encoded without padding. Unique across users
	// when present.
	PasskeyCredentialID string `json:"-"`

	// PasskeyPublicKey is the WebAuthn credential public key,
	// base64url-encoded without padding.
	PasskeyPublicKey string `json:"-"`

	// CurrentChallenge holds the single in-flight WebAuthn ceremony state
	// (serialized session data). Overwritten by each new ceremony start and
	// cleared on completion.
	CurrentChallenge string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// IsLocked reports whether the account is currently locked, comparing
// LockedUntil against now. An expired lock counts as open.
func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// LockRemaining returns how long the account stays locked from the point of
// view of now. Zero when the account is not locked.
func (u User) LockRemaining(now time.Time) time.Duration {
	if !u.IsLocked(now) {
		return 0
	}
	return u.LockedUntil.Sub(now)
}

// HasPasskey reports whether a passkey ceremony has completed for this user.
func (u User) HasPasskey() bool {
	return u.PasskeyCredentialID != ""
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
