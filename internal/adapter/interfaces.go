// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evgeny Bolotov

// Package adapter provides transport-layer abstractions for communicating with
// the itemvault server.
//
// The primary abstraction is [ServerAdapter], which decouples the terminal
// client from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/ebolotov/itemvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the itemvault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// Passkey ceremonies are deliberately absent: they require a platform
// authenticator reachable only from a browser context, so the terminal client
// authenticates with login and password.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account with the provided credentials. Returns
	// [ErrConflict] (wrapped) if the login is taken and [ErrBadRequest]
	// (wrapped, with the itemized rules in the message) if the password fails
	// the policy.
	Register(ctx context.Context, user models.User) (models.RegisterResponse, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken and returns the login response. Returns
	// [ErrUnauthorized] (wrapped) on bad credentials and [ErrForbidden]
	// (wrapped, with the remaining lock time in the message) when the account
	// is locked.
	Login(ctx context.Context, user models.User) (models.LoginResponse, error)

	// Me fetches the identity behind the stored bearer token. Requires a
	// valid bearer token.
	Me(ctx context.Context) (models.UserResponse, error)

	// CreateItem stores a new item owned by the authenticated user. Requires
	// a valid bearer token.
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)

	// ListItems fetches all items owned by the authenticated user, oldest
	// first. Requires a valid bearer token.
	ListItems(ctx context.Context) ([]models.Item, error)

	// GetItem fetches a single item by id. Returns [ErrNotFound] (wrapped)
	// when the item does not exist or belongs to another user. Requires a
	// valid bearer token.
	GetItem(ctx context.Context, itemID int64) (models.Item, error)

	// UpdateItem changes the name and description of an item identified by
	// item.ID. Returns [ErrNotFound] (wrapped) when the item does not exist.
	// Requires a valid bearer token.
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)

	// DeleteItem removes an item by id. Returns [ErrNotFound] (wrapped) when
	// the item does not exist. Requires a valid bearer token.
	DeleteItem(ctx context.Context, itemID int64) error
}
