package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/models"
)

// itemRepository is the SQL-backed implementation of [ItemRepository].
// Every query is scoped by user_id so that one user can never observe or
// mutate another user's items.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateItem persists a new item owned by item.UserID and returns it with
// server-assigned fields populated.
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertItemQuery(r.db.placeholder(), item)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error building insert query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if r.db.supportsReturning() {
		query += " RETURNING item_id, created_at"

		row := r.db.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
			log.Err(err).Str("func", "*itemRepository.CreateItem").Int64("user_id", item.UserID).Msg("error creating item")
			return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	} else {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*itemRepository.CreateItem").Int64("user_id", item.UserID).Msg("error creating item")
			return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		itemID, err := res.LastInsertId()
		if err != nil {
			log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error reading inserted item id")
			return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		item.ID = itemID

		// created_at is assigned by the database; read it back so both
		// backends return the same populated record
		selectQuery, selectArgs, err := buildSelectCreatedAtQuery(r.db.placeholder(), item.TableName(), "item_id", itemID)
		if err != nil {
			log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error building created_at query")
			return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := r.db.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&item.CreatedAt); err != nil {
			log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error reading created_at")
			return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return item, nil
}

// GetItemsByUser returns all items owned by userID ordered by creation.
// An empty result is not an error.
func (r *itemRepository) GetItemsByUser(ctx context.Context, userID int64) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemsQuery(r.db.placeholder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItemsByUser").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItemsByUser").Int64("user_id", userID).Msg("error executing select")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.CreatedAt); err != nil {
			log.Err(err).Str("func", "*itemRepository.GetItemsByUser").Msg("error scanning item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItemsByUser").Msg("error iterating item rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// GetItem returns the item identified by itemID if it belongs to userID.
// Returns [ErrItemNotFound] otherwise.
func (r *itemRepository) GetItem(ctx context.Context, userID, itemID int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemQuery(r.db.placeholder(), userID, itemID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItem").Msg("error building select query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.Item
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*itemRepository.GetItem").Int64("user_id", userID).Int64("item_id", itemID).Msg("error scanning item row")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// UpdateItem updates the name and description of an item owned by
// item.UserID and returns the stored row.
func (r *itemRepository) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateItemQuery(r.db.placeholder(), item)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("error building update query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Int64("user_id", item.UserID).Int64("item_id", item.ID).Msg("error executing update")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("error reading affected rows")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Item{}, ErrItemNotFound
	}

	return r.GetItem(ctx, item.UserID, item.ID)
}

// DeleteItem removes the item identified by itemID if it belongs to userID.
// Returns [ErrItemNotFound] when no row was deleted.
func (r *itemRepository) DeleteItem(ctx context.Context, userID, itemID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteItemQuery(r.db.placeholder(), userID, itemID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.DeleteItem").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.DeleteItem").Int64("user_id", userID).Int64("item_id", itemID).Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.DeleteItem").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
