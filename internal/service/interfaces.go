package service

import (
	"context"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/ebolotov/itemvault/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CheckAccess(ctx context.Context, token models.Token) (models.User, error)
}

// PasskeyService runs the two-step WebAuthn ceremonies. Each Begin call
// stores the serialized session state on the user row; the matching Finish
// call consumes it. A user has at most one ceremony in flight.
type PasskeyService interface {
	BeginRegistration(ctx context.Context, userID int64) (*protocol.CredentialCreation, error)
	FinishRegistration(ctx context.Context, userID int64, response []byte) (models.User, error)
	BeginLogin(ctx context.Context, login string) (*protocol.CredentialAssertion, error)
	FinishLogin(ctx context.Context, login string, response []byte) (models.User, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	ListItems(ctx context.Context, userID int64) ([]models.Item, error)
	GetItem(ctx context.Context, userID, itemID int64) (models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
}
