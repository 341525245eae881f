package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/models"
)

// itemService is the concrete implementation of ItemService. It validates
// inbound data and delegates persistence to the ItemRepository; ownership
// scoping happens at the repository level.
type itemService struct {
	itemRepository store.ItemRepository
	logger         *logger.Logger
}

func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		logger:         logger,
	}
}

// CreateItem stores a new item for its owner. The name is required; the
// description may be empty.
func (s *itemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.UserID == 0 {
		log.Error().Int64("user_id", item.UserID).Msg("invalid item data provided")
		return models.Item{}, ErrInvalidDataProvided
	}

	createdItem, err := s.itemRepository.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Int64("user_id", item.UserID).Msg("item creation ended with error")
		return models.Item{}, fmt.Errorf("item creation ended with error: %w", err)
	}

	return createdItem, nil
}

// ListItems returns all items owned by userID, oldest first.
func (s *itemService) ListItems(ctx context.Context, userID int64) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	items, err := s.itemRepository.GetItemsByUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("item listing ended with error")
		return nil, fmt.Errorf("item listing ended with error: %w", err)
	}

	return items, nil
}

// GetItem returns a single item owned by userID.
func (s *itemService) GetItem(ctx context.Context, userID, itemID int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	item, err := s.itemRepository.GetItem(ctx, userID, itemID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("item lookup ended with error")
		return models.Item{}, fmt.Errorf("item lookup ended with error: %w", err)
	}

	return item, nil
}

// UpdateItem changes the name and description of an item owned by
// item.UserID.
func (s *itemService) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.UserID == 0 || item.ID == 0 {
		log.Error().Int64("user_id", item.UserID).Int64("item_id", item.ID).Msg("invalid item data provided")
		return models.Item{}, ErrInvalidDataProvided
	}

	updatedItem, err := s.itemRepository.UpdateItem(ctx, item)
	if err != nil {
		log.Err(err).Int64("user_id", item.UserID).Int64("item_id", item.ID).Msg("item update ended with error")
		return models.Item{}, fmt.Errorf("item update ended with error: %w", err)
	}

	return updatedItem, nil
}

// DeleteItem removes an item owned by userID.
func (s *itemService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	log := logger.FromContext(ctx)

	if err := s.itemRepository.DeleteItem(ctx, userID, itemID); err != nil {
		log.Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("item deletion ended with error")
		return fmt.Errorf("item deletion ended with error: %w", err)
	}

	return nil
}
