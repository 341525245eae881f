package service

import (
	"fmt"

	"github.com/ebolotov/itemvault/internal/config"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/store"
)

type Services struct {
	AuthService    AuthService
	PasskeyService PasskeyService
	ItemService    ItemService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	passkeyService, err := NewPasskeyService(storages.UserRepository, cfg.WebAuthn, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating passkey service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		PasskeyService: passkeyService,
		ItemService:    NewItemService(storages.ItemRepository, logger),
	}, nil
}
