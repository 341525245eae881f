package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the credential-related updates
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// On PostgreSQL the INSERT carries a RETURNING clause; on SQLite the new ID
// is read back via LastInsertId.
//
// Error handling:
//   - unique constraint violation on login → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.placeholder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if r.db.supportsReturning() {
		query += " RETURNING user_id, created_at"

		row := r.db.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&user.UserID, &user.CreatedAt); err != nil {
			if r.db.isUniqueViolation(err) {
				return models.User{}, ErrLoginAlreadyExists
			}
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	} else {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			if r.db.isUniqueViolation(err) {
				return models.User{}, ErrLoginAlreadyExists
			}
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}

		userID, err := res.LastInsertId()
		if err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error reading inserted user id")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
		user.UserID = userID

		// created_at is assigned by the database; read it back so both
		// backends return the same populated record
		selectQuery, selectArgs, err := buildSelectCreatedAtQuery(r.db.placeholder(), user.TableName(), "user_id", userID)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building created_at query")
			return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := r.db.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error reading created_at")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	user.Password = ""
	return user, nil
}

// FindUserByLogin retrieves the user record whose login matches exactly.
// Returns [ErrNoUserWasFound] when no such account exists.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByLoginQuery(r.db.placeholder(), login)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// FindUserByID retrieves the user record by its internal identifier.
// Returns [ErrNoUserWasFound] when no such account exists.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByIDQuery(r.db.placeholder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateLockout persists the lockout counters of a user: failed attempts,
// the last attempt timestamp, and the lock expiry.
func (r *userRepository) UpdateLockout(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateLockoutQuery(r.db.placeholder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateLockout").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingUser(ctx, query, args, "*userRepository.UpdateLockout")
}

// UpdatePasskey stores the registered passkey credential of a user and
// clears the ceremony state in the same statement.
//
// Error handling:
//   - unique constraint violation on the credential ID → [ErrPasskeyAlreadyExists].
//   - zero affected rows → [ErrNoUserWasFound].
func (r *userRepository) UpdatePasskey(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePasskeyQuery(r.db.placeholder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasskey").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.isUniqueViolation(err) {
			return ErrPasskeyAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.UpdatePasskey").Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasskey").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdateChallenge stores the serialized in-flight ceremony state of a user.
// An empty challenge clears the state.
func (r *userRepository) UpdateChallenge(ctx context.Context, userID int64, challenge string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateChallengeQuery(r.db.placeholder(), userID, challenge)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateChallenge").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingUser(ctx, query, args, "*userRepository.UpdateChallenge")
}

// execExpectingUser runs a DML statement that must affect exactly one user
// row. Zero affected rows means the account vanished.
func (r *userRepository) execExpectingUser(ctx context.Context, query string, args []any, funcName string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads a full users row, converting nullable columns to their
// model representation.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var lastAttempt, lockedUntil sql.NullTime
	var credentialID, publicKey, challenge sql.NullString

	err := row.Scan(
		&user.UserID,
		&user.Login,
		&user.PasswordHash,
		&user.FailedAttempts,
		&lastAttempt,
		&lockedUntil,
		&credentialID,
		&publicKey,
		&challenge,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastAttempt.Valid {
		user.LastAttemptTime = &lastAttempt.Time
	}
	if lockedUntil.Valid {
		user.LockedUntil = &lockedUntil.Time
	}
	user.PasskeyCredentialID = credentialID.String
	user.PasskeyPublicKey = publicKey.String
	user.CurrentChallenge = challenge.String

	return user, nil
}
