package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/ebolotov/itemvault/internal/config"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/models"
)

// passkeyService is the concrete implementation of PasskeyService built on
// the go-webauthn library. Ceremony session state is serialized to JSON and
// stored on the user row between the Begin and Finish steps, so a new Begin
// simply overwrites whatever ceremony was in flight.
type passkeyService struct {
	userRepository store.UserRepository
	webAuthn       *webauthn.WebAuthn
	logger         *logger.Logger
}

// NewPasskeyService constructs a PasskeyService for the configured relying
// party. When no origins are configured, the https origin of the RP ID is
// assumed.
func NewPasskeyService(userRepository store.UserRepository, cfg config.WebAuthn, logger *logger.Logger) (PasskeyService, error) {
	origins := cfg.RPOrigins
	if len(origins) == 0 {
		origins = []string{"https://" + cfg.RPID}
	}

	webAuthn, err := webauthn.New(&webauthn.Config{
		RPDisplayName: cfg.RPDisplayName,
		RPID:          cfg.RPID,
		RPOrigins:     origins,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating webauthn relying party: %w", err)
	}

	return &passkeyService{
		userRepository: userRepository,
		webAuthn:       webAuthn,
		logger:         logger,
	}, nil
}

// BeginRegistration starts a credential creation ceremony for an existing
// account. The returned options are sent to the browser verbatim; the
// session state is stored on the user row until the Finish step.
func (s *passkeyService) BeginRegistration(ctx context.Context, userID int64) (*protocol.CredentialCreation, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return nil, fmt.Errorf("user search by id failed: %w", err)
	}

	webauthnUser, err := s.loadWebauthnUser(user)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error decoding stored credential")
		return nil, fmt.Errorf("error decoding stored credential: %w", err)
	}

	options := []webauthn.RegistrationOption{
		webauthn.WithResidentKeyRequirement(protocol.ResidentKeyRequirementRequired),
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementRequired,
			UserVerification: protocol.VerificationRequired,
		}),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	}
	if len(webauthnUser.credentials) > 0 {
		options = append(options, webauthn.WithExclusions(webauthn.Credentials(webauthnUser.credentials).CredentialDescriptors()))
	}

	creation, session, err := s.webAuthn.BeginRegistration(webauthnUser, options...)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error beginning registration ceremony")
		return nil, fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}

	if err := s.storeSession(ctx, user.UserID, session); err != nil {
		return nil, err
	}

	return creation, nil
}

// FinishRegistration verifies the authenticator's creation response and
// stores the new credential. On verification failure the stale session state
// stays on the row; the next Begin overwrites it.
func (s *passkeyService) FinishRegistration(ctx context.Context, userID int64, response []byte) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if user.CurrentChallenge == "" {
		return models.User{}, ErrNoCeremonyInProgress
	}

	var session webauthn.SessionData
	if err := json.Unmarshal([]byte(user.CurrentChallenge), &session); err != nil {
		log.Err(err).Int64("id", userID).Msg("error decoding stored ceremony state")
		return models.User{}, ErrNoCeremonyInProgress
	}

	webauthnUser, err := s.loadWebauthnUser(user)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error decoding stored credential")
		return models.User{}, fmt.Errorf("error decoding stored credential: %w", err)
	}

	parsed, err := protocol.ParseCredentialCreationResponseBytes(response)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error parsing credential creation response")
		return models.User{}, fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}

	credential, err := s.webAuthn.CreateCredential(webauthnUser, session, parsed)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("credential creation verification failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}

	user.PasskeyCredentialID = utils.EncodeBytes(credential.ID)
	user.PasskeyPublicKey = utils.EncodeBytes(credential.PublicKey)
	user.CurrentChallenge = ""

	if err := s.userRepository.UpdatePasskey(ctx, user); err != nil {
		log.Err(err).Int64("id", userID).Msg("error storing passkey credential")
		return models.User{}, fmt.Errorf("error storing passkey credential: %w", err)
	}

	return user, nil
}

// BeginLogin starts an assertion ceremony for an account that already has a
// registered passkey.
func (s *passkeyService) BeginLogin(ctx context.Context, login string) (*protocol.CredentialAssertion, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return nil, fmt.Errorf("user search by login failed: %w", err)
	}

	if !user.HasPasskey() {
		return nil, ErrNoPasskeyRegistered
	}

	webauthnUser, err := s.loadWebauthnUser(user)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error decoding stored credential")
		return nil, fmt.Errorf("error decoding stored credential: %w", err)
	}

	assertion, session, err := s.webAuthn.BeginLogin(webauthnUser)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error beginning login ceremony")
		return nil, fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}

	if err := s.storeSession(ctx, user.UserID, session); err != nil {
		return nil, err
	}

	return assertion, nil
}

// FinishLogin verifies the authenticator's assertion response and clears the
// ceremony state. The caller issues the session token afterwards.
func (s *passkeyService) FinishLogin(ctx context.Context, login string, response []byte) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !user.HasPasskey() {
		return models.User{}, ErrNoPasskeyRegistered
	}

	if user.CurrentChallenge == "" {
		return models.User{}, ErrNoCeremonyInProgress
	}

	var session webauthn.SessionData
	if err := json.Unmarshal([]byte(user.CurrentChallenge), &session); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error decoding stored ceremony state")
		return models.User{}, ErrNoCeremonyInProgress
	}

	webauthnUser, err := s.loadWebauthnUser(user)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error decoding stored credential")
		return models.User{}, fmt.Errorf("error decoding stored credential: %w", err)
	}

	parsed, err := protocol.ParseCredentialRequestResponseBytes(response)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error parsing credential request response")
		return models.User{}, fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}

	if _, err := s.webAuthn.ValidateLogin(webauthnUser, session, parsed); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("assertion verification failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}

	user.CurrentChallenge = ""
	if err := s.userRepository.UpdateChallenge(ctx, user.UserID, ""); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("error clearing ceremony state")
		return models.User{}, fmt.Errorf("error clearing ceremony state: %w", err)
	}

	return user, nil
}

// storeSession serializes ceremony session data onto the user row,
// overwriting any ceremony already in flight.
func (s *passkeyService) storeSession(ctx context.Context, userID int64, session *webauthn.SessionData) error {
	log := logger.FromContext(ctx)

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error encoding ceremony state")
		return fmt.Errorf("error encoding ceremony state: %w", err)
	}

	if err := s.userRepository.UpdateChallenge(ctx, userID, string(sessionJSON)); err != nil {
		log.Err(err).Int64("id", userID).Msg("error storing ceremony state")
		return fmt.Errorf("error storing ceremony state: %w", err)
	}

	return nil
}

// webauthnUser adapts a stored account to the webauthn.User interface.
type webauthnUser struct {
	user        models.User
	credentials []webauthn.Credential
}

func (u *webauthnUser) WebAuthnID() []byte {
	return []byte(strconv.FormatInt(u.user.UserID, 10))
}

func (u *webauthnUser) WebAuthnName() string {
	return u.user.Login
}

func (u *webauthnUser) WebAuthnDisplayName() string {
	return u.user.Login
}

func (u *webauthnUser) WebAuthnIcon() string {
	return ""
}

func (u *webauthnUser) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}

// loadWebauthnUser decodes the stored credential of a user, if any, into the
// library's credential type.
func (s *passkeyService) loadWebauthnUser(user models.User) (*webauthnUser, error) {
	if !user.HasPasskey() {
		return &webauthnUser{user: user}, nil
	}

	credentialID, err := utils.DecodeBytes(user.PasskeyCredentialID)
	if err != nil {
		return nil, fmt.Errorf("error decoding credential id: %w", err)
	}

	publicKey, err := utils.DecodeBytes(user.PasskeyPublicKey)
	if err != nil {
		return nil, fmt.Errorf("error decoding credential public key: %w", err)
	}

	return &webauthnUser{
		user: user,
		credentials: []webauthn.Credential{{
			ID:        credentialID,
			PublicKey: publicKey,
		}},
	}, nil
}

var _ webauthn.User = (*webauthnUser)(nil)
