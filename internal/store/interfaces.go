package store

import (
	"context"

	"github.com/ebolotov/itemvault/models"
)

// UserRepository persists user accounts together with their lockout counters
// and passkey material.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateLockout(ctx context.Context, user models.User) error
	UpdatePasskey(ctx context.Context, user models.User) error
	UpdateChallenge(ctx context.Context, userID int64, challenge string) error
}

// ItemRepository persists user-owned items. Every operation is scoped by the
// owner's user ID; an item belonging to another user is indistinguishable
// from a missing one.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItemsByUser(ctx context.Context, userID int64) ([]models.Item, error)
	GetItem(ctx context.Context, userID, itemID int64) (models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
}
