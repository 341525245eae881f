// Package validators provides input validation and enforcement of business
// rules across the application.
//
// The central rule set is the password policy: a pure, stateless check that
// reports every violated rule in one pass so the client can show the user the
// complete list instead of fixing problems one at a time.
//
// This package decouples validation logic from transport layers and storage,
// enabling reusable, composable, and testable validation strategies.
package validators

import (
	"strings"
	"unicode"
)

// Password policy violation messages, in the order they are reported.
const (
	MsgPasswordTooShort  = "password must be at least 8 characters long"
	MsgPasswordNoUpper   = "password must contain at least one uppercase letter"
	MsgPasswordNoLower   = "password must contain at least one lowercase letter"
	MsgPasswordNoDigit   = "password must contain at least one digit"
	MsgPasswordNoSpecial = "password must contain at least one special character"
)

// minPasswordLength is the minimum acceptable password length.
const minPasswordLength = 8

// specialCharacters is the fixed symbol set at least one of which must be
// present in every password.
const specialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidatePassword checks the given password against the policy and returns
// the list of violated rules. Every rule is evaluated independently (no
// short-circuiting), and the order of the returned messages is stable:
// length, uppercase, lowercase, digit, special character.
//
// The returned slice is empty iff the password is acceptable. The function is
// pure and safe for concurrent use.
func ValidatePassword(password string) []string {
	violations := make([]string, 0, 5)

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(specialCharacters, r) {
			hasSpecial = true
		}
	}

	if len(password) < minPasswordLength {
		violations = append(violations, MsgPasswordTooShort)
	}
	if !hasUpper {
		violations = append(violations, MsgPasswordNoUpper)
	}
	if !hasLower {
		violations = append(violations, MsgPasswordNoLower)
	}
	if !hasDigit {
		violations = append(violations, MsgPasswordNoDigit)
	}
	if !hasSpecial {
		violations = append(violations, MsgPasswordNoSpecial)
	}

	return violations
}
