package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/service"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/models"
)

// passkeyRegisterBegin starts a passkey registration ceremony for the
// authenticated user and returns the credential creation options.
func (h *Handler) passkeyRegisterBegin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	options, err := h.services.PasskeyService.BeginRegistration(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, options, http.StatusOK)
}

// passkeyRegisterFinish completes a passkey registration ceremony. The request
// body is the attestation response produced by the browser's WebAuthn API.
func (h *Handler) passkeyRegisterFinish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Msg("error reading request body")
		writeError(w, "error reading request body", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.PasskeyService.FinishRegistration(ctx, userID, body)
	if err != nil {
		// ceremony failures on the registration path are client errors
		if errors.Is(err, service.ErrCeremonyFailed) {
			log.Err(err).Msg("passkey registration ceremony failed")
			writeError(w, service.ErrCeremonyFailed.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("passkey registered")

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "passkey registered"}, http.StatusOK)
}

// passkeyLoginBegin starts a passkey authentication ceremony and returns the
// credential request options.
func (h *Handler) passkeyLoginBegin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasskeyLoginBeginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.Login == "" {
		log.Error().Msg("no login provided")
		writeError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
		return
	}

	options, err := h.services.PasskeyService.BeginLogin(ctx, request.Login)
	if err != nil {
		// an unknown login is an authentication failure, not a lookup miss
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("login", request.Login).Msg("passkey login attempt for unknown user")
			writeError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, options, http.StatusOK)
}

// passkeyLoginFinish completes a passkey authentication ceremony and, on
// success, issues a bearer token for the verified account.
func (h *Handler) passkeyLoginFinish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasskeyLoginFinishRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.Login == "" || len(request.Response) == 0 {
		log.Error().Msg("no login or assertion provided")
		writeError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
		return
	}

	verifiedUser, err := h.services.PasskeyService.FinishLogin(ctx, request.Login, request.Response)
	if err != nil {
		// ceremony failures on the login path are authentication failures
		if errors.Is(err, service.ErrCeremonyFailed) {
			log.Err(err).Msg("passkey login ceremony failed")
			writeError(w, service.ErrCeremonyFailed.Error(), http.StatusUnauthorized)
			return
		}
		// an unknown login is an authentication failure, not a lookup miss
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("login", request.Login).Msg("passkey login attempt for unknown user")
			writeError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Int64("id", verifiedUser.UserID).Msg("user logged in with passkey")

	token, err := h.services.AuthService.CreateToken(ctx, verifiedUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	_, _ = utils.WriteJSON(w, models.LoginResponse{
		Token: token.SignedString,
		User:  userResponse(verifiedUser),
	}, http.StatusOK)
}
