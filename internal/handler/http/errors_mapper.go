package http

import (
	"errors"
	"net/http"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/service"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrNoCeremonyInProgress:    http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNoPasskeyRegistered:     http.StatusNotFound,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrLoginAlreadyExists:   http.StatusConflict,
	store.ErrPasskeyAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrItemNotFound:         http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

// statusFromError maps a service-layer error to an HTTP status code and a
// response message. Unrecognized errors become an opaque 500 so that internal
// details stay in the server log only.
func statusFromError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError sends a JSON error body with the given status code.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

// writeServiceError logs err and translates it into an HTTP response.
// Typed errors get dedicated treatment: a lockout rejection carries the
// remaining lock time in its message with status 403, a password policy
// failure itemizes every unmet rule with status 400.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var lockedErr *service.LockedError
	if errors.As(err, &lockedErr) {
		log.Err(err).Int("retry_after_minutes", lockedErr.RetryAfterMinutes()).Msg("account is locked")
		writeError(w, lockedErr.Error(), http.StatusForbidden)
		return
	}

	var policyErr *service.PasswordPolicyError
	if errors.As(err, &policyErr) {
		log.Err(err).Strs("violations", policyErr.Violations).Msg("password policy violated")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Errors: policyErr.Violations}, http.StatusBadRequest)
		return
	}

	status, message := statusFromError(err)
	log.Err(err).Int("status", status).Msg("request failed")
	writeError(w, message, status)
}
