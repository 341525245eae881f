package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/service"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/models"
)

// ─────────────────────────────────────────────
// Mock PasskeyService
// ─────────────────────────────────────────────

type mockPasskeyService struct {
	beginRegistrationFn  func(ctx context.Context, userID int64) (*protocol.CredentialCreation, error)
	finishRegistrationFn func(ctx context.Context, userID int64, response []byte) (models.User, error)
	beginLoginFn         func(ctx context.Context, login string) (*protocol.CredentialAssertion, error)
	finishLoginFn        func(ctx context.Context, login string, response []byte) (models.User, error)
}

func (m *mockPasskeyService) BeginRegistration(ctx context.Context, userID int64) (*protocol.CredentialCreation, error) {
	return m.beginRegistrationFn(ctx, userID)
}

func (m *mockPasskeyService) FinishRegistration(ctx context.Context, userID int64, response []byte) (models.User, error) {
	return m.finishRegistrationFn(ctx, userID, response)
}

func (m *mockPasskeyService) BeginLogin(ctx context.Context, login string) (*protocol.CredentialAssertion, error) {
	return m.beginLoginFn(ctx, login)
}

func (m *mockPasskeyService) FinishLogin(ctx context.Context, login string, response []byte) (models.User, error) {
	return m.finishLoginFn(ctx, login, response)
}

// newHandlerWithPasskey builds a Handler with the given PasskeyService mock
// and a stub AuthService able to issue tokens.
func newHandlerWithPasskey(t *testing.T, passkey service.PasskeyService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService:    &mockAuthService{},
		PasskeyService: passkey,
	}
	return NewHandler(svcs, logger.Nop())
}

// ─────────────────────────────────────────────
// registration ceremony
// ─────────────────────────────────────────────

func TestPasskeyRegisterBegin_Success(t *testing.T) {
	passkey := &mockPasskeyService{
		beginRegistrationFn: func(_ context.Context, userID int64) (*protocol.CredentialCreation, error) {
			require.Equal(t, int64(42), userID)
			return &protocol.CredentialCreation{}, nil
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/register", nil)
	req = req.WithContext(ctxWithUser(req.Context(), 42, "alice"))
	rec := httptest.NewRecorder()

	h.passkeyRegisterBegin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestPasskeyRegisterBegin_NoUserInContext(t *testing.T) {
	h := newHandlerWithPasskey(t, &mockPasskeyService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/register", nil)
	rec := httptest.NewRecorder()

	h.passkeyRegisterBegin(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPasskeyRegisterFinish_Success(t *testing.T) {
	passkey := &mockPasskeyService{
		finishRegistrationFn: func(_ context.Context, userID int64, response []byte) (models.User, error) {
			require.Equal(t, int64(42), userID)
			assert.JSONEq(t, `{"id":"cred"}`, string(response))
			return models.User{UserID: 42, Login: "alice", PasskeyCredentialID: "cred"}, nil
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/register/verify", strings.NewReader(`{"id":"cred"}`))
	req = req.WithContext(ctxWithUser(req.Context(), 42, "alice"))
	rec := httptest.NewRecorder()

	h.passkeyRegisterFinish(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

// TestPasskeyRegisterFinish_CeremonyFailed verifies that an attestation which
// fails to parse or verify produces 400, not 401.
func TestPasskeyRegisterFinish_CeremonyFailed(t *testing.T) {
	passkey := &mockPasskeyService{
		finishRegistrationFn: func(_ context.Context, _ int64, _ []byte) (models.User, error) {
			return models.User{}, service.ErrCeremonyFailed
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/register/verify", strings.NewReader(`{}`))
	req = req.WithContext(ctxWithUser(req.Context(), 42, "alice"))
	rec := httptest.NewRecorder()

	h.passkeyRegisterFinish(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasskeyRegisterFinish_NoCeremonyInProgress(t *testing.T) {
	passkey := &mockPasskeyService{
		finishRegistrationFn: func(_ context.Context, _ int64, _ []byte) (models.User, error) {
			return models.User{}, service.ErrNoCeremonyInProgress
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/register/verify", strings.NewReader(`{}`))
	req = req.WithContext(ctxWithUser(req.Context(), 42, "alice"))
	rec := httptest.NewRecorder()

	h.passkeyRegisterFinish(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// authentication ceremony
// ─────────────────────────────────────────────

func TestPasskeyLoginBegin_Success(t *testing.T) {
	passkey := &mockPasskeyService{
		beginLoginFn: func(_ context.Context, login string) (*protocol.CredentialAssertion, error) {
			require.Equal(t, "alice", login)
			return &protocol.CredentialAssertion{}, nil
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login", strings.NewReader(`{"login":"alice"}`))
	rec := httptest.NewRecorder()

	h.passkeyLoginBegin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPasskeyLoginBegin_EmptyLogin(t *testing.T) {
	h := newHandlerWithPasskey(t, &mockPasskeyService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.passkeyLoginBegin(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasskeyLoginBegin_NoPasskeyRegistered(t *testing.T) {
	passkey := &mockPasskeyService{
		beginLoginFn: func(_ context.Context, _ string) (*protocol.CredentialAssertion, error) {
			return nil, service.ErrNoPasskeyRegistered
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login", strings.NewReader(`{"login":"alice"}`))
	rec := httptest.NewRecorder()

	h.passkeyLoginBegin(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPasskeyLoginBegin_UnknownUser(t *testing.T) {
	passkey := &mockPasskeyService{
		beginLoginFn: func(_ context.Context, _ string) (*protocol.CredentialAssertion, error) {
			return nil, fmt.Errorf("user search by login failed: %w", store.ErrNoUserWasFound)
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login", strings.NewReader(`{"login":"ghost"}`))
	rec := httptest.NewRecorder()

	h.passkeyLoginBegin(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), body.Error)
}

func TestPasskeyLoginFinish_Success(t *testing.T) {
	passkey := &mockPasskeyService{
		finishLoginFn: func(_ context.Context, login string, response []byte) (models.User, error) {
			require.Equal(t, "alice", login)
			assert.JSONEq(t, `{"id":"cred"}`, string(response))
			return models.User{UserID: 42, Login: "alice", PasskeyCredentialID: "cred"}, nil
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	body := `{"login":"alice","response":{"id":"cred"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.passkeyLoginFinish(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var loginResponse models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResponse))
	assert.Equal(t, "signed.jwt.token", loginResponse.Token)
	assert.Equal(t, int64(42), loginResponse.User.ID)
	assert.True(t, loginResponse.User.HasPasskey)
}

// TestPasskeyLoginFinish_CeremonyFailed verifies that a failed assertion
// produces 401 with a generic message.
func TestPasskeyLoginFinish_CeremonyFailed(t *testing.T) {
	passkey := &mockPasskeyService{
		finishLoginFn: func(_ context.Context, _ string, _ []byte) (models.User, error) {
			return models.User{}, service.ErrCeremonyFailed
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	body := `{"login":"alice","response":{"id":"cred"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.passkeyLoginFinish(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	errorResponse := decodeErrorResponse(t, rec)
	assert.Equal(t, service.ErrCeremonyFailed.Error(), errorResponse.Error)
}

func TestPasskeyLoginFinish_MissingAssertion(t *testing.T) {
	h := newHandlerWithPasskey(t, &mockPasskeyService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login/verify", strings.NewReader(`{"login":"alice"}`))
	rec := httptest.NewRecorder()

	h.passkeyLoginFinish(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasskeyLoginFinish_UnknownUser(t *testing.T) {
	passkey := &mockPasskeyService{
		finishLoginFn: func(_ context.Context, _ string, _ []byte) (models.User, error) {
			return models.User{}, fmt.Errorf("user search by login failed: %w", store.ErrNoUserWasFound)
		},
	}

	h := newHandlerWithPasskey(t, passkey)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/passkey/login/verify",
		strings.NewReader(`{"login":"ghost","response":{"id":"cred"}}`))
	rec := httptest.NewRecorder()

	h.passkeyLoginFinish(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), body.Error)
}
