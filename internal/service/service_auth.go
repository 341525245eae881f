package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ebolotov/itemvault/internal/config"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/internal/validators"
	"github.com/ebolotov/itemvault/models"
)

const (
	// maxLoginAttempts is the number of consecutive failed password checks
	// after which the account locks.
	maxLoginAttempts = 5

	// lockoutDuration is how long an engaged lock refuses logins.
	lockoutDuration = 15 * time.Minute
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification with lockout
// tracking, and JWT token lifecycle, using a UserRepository for persistence
// and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now supplies the current time; replaced in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both Login and Password are non-empty, runs the password
// policy checks, hashes the password with bcrypt, and delegates persistence
// to the UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A *PasswordPolicyError listing every failed policy check.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken — see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if violations := validators.ValidatePassword(user.Password); len(violations) > 0 {
		log.Error().Str("login", user.Login).Int("violations", len(violations)).Msg("password policy check failed")
		return models.User{}, &PasswordPolicyError{Violations: violations}
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = passwordHash
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user with lockout tracking.
//
// A locked account refuses the attempt before the password is checked.
// An unknown login and a wrong password both return ErrInvalidCredentials so
// the caller cannot distinguish them. Each failed check increments the
// attempt counter; the check that reaches maxLoginAttempts engages a lock of
// lockoutDuration. A successful check resets the counters. An expired lock
// is cleared lazily on the next attempt; nothing runs in the background.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A *LockedError while the lock is active (including the attempt that
//     engages it).
//   - ErrInvalidCredentials on unknown login or password mismatch.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("login", user.Login).Msg("login attempt for unknown user")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	now := a.now()

	if foundUser.IsLocked(now) {
		log.Warn().Int64("id", foundUser.UserID).Msg("login attempt on locked account")
		return models.User{}, &LockedError{RetryAfter: foundUser.LockRemaining(now)}
	}

	// an expired lock restarts attempt counting
	if foundUser.LockedUntil != nil {
		foundUser.FailedAttempts = 0
		foundUser.LockedUntil = nil
	}

	if !utils.CheckPassword(foundUser.PasswordHash, user.Password) {
		return models.User{}, a.registerFailedAttempt(ctx, foundUser, now)
	}

	if foundUser.FailedAttempts > 0 || foundUser.LastAttemptTime != nil {
		foundUser.FailedAttempts = 0
		foundUser.LastAttemptTime = nil
		foundUser.LockedUntil = nil
		if err := a.userRepository.UpdateLockout(ctx, foundUser); err != nil {
			log.Err(err).Int64("id", foundUser.UserID).Msg("error resetting lockout counters")
			return models.User{}, fmt.Errorf("error resetting lockout counters: %w", err)
		}
	}

	return foundUser, nil
}

// registerFailedAttempt persists one failed password check and decides the
// caller-visible error: a LockedError when this attempt engages the lock,
// ErrInvalidCredentials otherwise.
func (a *authService) registerFailedAttempt(ctx context.Context, user models.User, now time.Time) error {
	log := logger.FromContext(ctx)

	user.FailedAttempts++
	user.LastAttemptTime = &now

	locked := user.FailedAttempts >= maxLoginAttempts
	if locked {
		until := now.Add(lockoutDuration)
		user.LockedUntil = &until
	}

	if err := a.userRepository.UpdateLockout(ctx, user); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error persisting failed attempt")
		return fmt.Errorf("error persisting failed attempt: %w", err)
	}

	log.Warn().Int64("id", user.UserID).Int("failed_attempts", user.FailedAttempts).Bool("locked", locked).Msg("wrong password")

	if locked {
		return &LockedError{RetryAfter: lockoutDuration}
	}

	return ErrInvalidCredentials
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Login, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CheckAccess re-validates the account behind an already-verified token.
// A token outliving its account reports ErrTokenIsExpiredOrInvalid; a lock
// engaged after issuance reports a LockedError. A valid token is therefore
// necessary but not sufficient for access.
func (a *authService) CheckAccess(ctx context.Context, token models.Token) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Int64("id", token.UserID).Msg("token refers to a vanished account")
			return models.User{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Int64("id", token.UserID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	now := a.now()
	if user.IsLocked(now) {
		log.Warn().Int64("id", user.UserID).Msg("access attempt on locked account")
		return models.User{}, &LockedError{RetryAfter: user.LockRemaining(now)}
	}

	return user, nil
}
