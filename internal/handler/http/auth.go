package http

import (
	"encoding/json"
	"net/http"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Str("login", registeredUser.Login).Msg("user registered")

	_, _ = utils.WriteJSON(w, models.RegisterResponse{
		Message: "user registered",
		UserID:  registeredUser.UserID,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	_, _ = utils.WriteJSON(w, models.LoginResponse{
		Token: token.SignedString,
		User:  userResponse(foundUser),
	}, http.StatusOK)
}

// me reports the identity behind the presented bearer token. It re-reads the
// account so that the passkey flag reflects the current state, not the state
// at token issuance.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.CheckAccess(ctx, models.Token{UserID: userID})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, userResponse(foundUser), http.StatusOK)
}

// userResponse builds the public projection of a user record.
func userResponse(user models.User) models.UserResponse {
	return models.UserResponse{
		ID:         user.UserID,
		Login:      user.Login,
		HasPasskey: user.HasPasskey(),
	}
}
