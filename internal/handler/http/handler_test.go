package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ebolotov/itemvault/internal/service"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/internal/utils"
)

// ctxWithUser attaches an authenticated identity to ctx the way the auth
// middleware does.
func ctxWithUser(ctx context.Context, userID int64, login string) context.Context {
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
	return context.WithValue(ctx, utils.LoginCtxKey, login)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest},
		{service.ErrNoCeremonyInProgress, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{service.ErrNoPasskeyRegistered, http.StatusNotFound},
		{store.ErrLoginAlreadyExists, http.StatusConflict},
		{store.ErrPasskeyAlreadyExists, http.StatusConflict},
		{store.ErrNoUserWasFound, http.StatusNotFound},
		{store.ErrItemNotFound, http.StatusNotFound},
		{store.ErrExecutingQuery, http.StatusInternalServerError},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, _ := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

// TestStatusFromError_WrappedError verifies that status mapping sees through
// fmt.Errorf wrapping added by the service layer.
func TestStatusFromError_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("item lookup ended with error: %w", store.ErrItemNotFound)

	status, message := statusFromError(wrapped)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, store.ErrItemNotFound.Error(), message)
}

// TestStatusFromError_UnknownErrorIsOpaque verifies that unexpected errors do
// not leak their message into the response.
func TestStatusFromError_UnknownErrorIsOpaque(t *testing.T) {
	status, message := statusFromError(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), message)
}
