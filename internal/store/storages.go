package store

import "github.com/ebolotov/itemvault/internal/logger"

type Storages struct {
	UserRepository UserRepository
	ItemRepository ItemRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
		ItemRepository: NewItemRepository(db, log),
	}
}
