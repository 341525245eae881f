package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebolotov/itemvault/internal/service"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/models"
)

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid bearer header",
			header:    "Bearer some.jwt.token",
			wantToken: "some.jwt.token",
		},
		{
			name:    "missing token part",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "empty token part",
			header:  "Bearer ",
			wantErr: ErrEmptyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

// nextProbe records whether the wrapped handler was reached and captures the
// identity the middleware stored in the context.
type nextProbe struct {
	called bool
	userID int64
	login  string
}

func (p *nextProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.userID, _ = utils.GetUserIDFromContext(r.Context())
		p.login, _ = utils.GetLoginFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	probe := &nextProbe{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.auth(probe.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newHandlerWithAuth(t, auth)
	probe := &nextProbe{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bad.token")
	rec := httptest.NewRecorder()

	h.auth(probe.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

// TestAuthMiddleware_VanishedUser verifies that a structurally valid token
// whose account no longer exists is rejected exactly like an invalid token.
func TestAuthMiddleware_VanishedUser(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: 42, Login: "alice"}, nil
		},
		checkAccessFn: func(_ context.Context, _ models.Token) (models.User, error) {
			return models.User{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newHandlerWithAuth(t, auth)
	probe := &nextProbe{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.token")
	rec := httptest.NewRecorder()

	h.auth(probe.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeErrorResponse(t, rec)
	assert.Equal(t, service.ErrTokenIsExpiredOrInvalid.Error(), body.Error)
	assert.False(t, probe.called)
}

// TestAuthMiddleware_LockedAccount verifies that a valid token over a locked
// account is rejected with 403 and the remaining lock time.
func TestAuthMiddleware_LockedAccount(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: 42, Login: "alice"}, nil
		},
		checkAccessFn: func(_ context.Context, _ models.Token) (models.User, error) {
			return models.User{}, &service.LockedError{RetryAfter: 10 * time.Minute}
		},
	}
	h := newHandlerWithAuth(t, auth)
	probe := &nextProbe{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.token")
	rec := httptest.NewRecorder()

	h.auth(probe.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeErrorResponse(t, rec)
	assert.Contains(t, body.Error, "10 minutes")
	assert.False(t, probe.called)
}

func TestAuthMiddleware_Success(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "valid.token", tokenString)
			return models.Token{UserID: 42, Login: "alice"}, nil
		},
		checkAccessFn: func(_ context.Context, token models.Token) (models.User, error) {
			return models.User{UserID: token.UserID, Login: token.Login}, nil
		},
	}
	h := newHandlerWithAuth(t, auth)
	probe := &nextProbe{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid.token")
	rec := httptest.NewRecorder()

	h.auth(probe.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.called)
	assert.Equal(t, int64(42), probe.userID)
	assert.Equal(t, "alice", probe.login)
}
