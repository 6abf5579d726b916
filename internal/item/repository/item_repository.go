package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

const selectItem = `
	SELECT itemId, restaurantId, itemName, category, description, price
	FROM Items`

func (r *MySQLItemRepository) Insert(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO Items (itemId, restaurantId, itemName, category, description, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ItemID, item.RestaurantID, item.ItemName, item.Category, item.Description, item.Price,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *MySQLItemRepository) FindByID(ctx context.Context, itemID string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.QueryRowContext(ctx, selectItem+` WHERE itemId = ?`, itemID).Scan(
		&item.ItemID, &item.RestaurantID, &item.ItemName, &item.Category, &item.Description, &item.Price,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError(errors.ResourceItem, "Item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	return r.list(ctx, selectItem+` ORDER BY itemName`)
}

func (r *MySQLItemRepository) FindByName(ctx context.Context, itemName string) ([]domain.Item, error) {
	return r.list(ctx, selectItem+` WHERE itemName = ?`, itemName)
}

func (r *MySQLItemRepository) FindByRestaurantID(ctx context.Context, restaurantID string) ([]domain.Item, error) {
	return r.list(ctx, selectItem+` WHERE restaurantId = ? ORDER BY itemName`, restaurantID)
}

func (r *MySQLItemRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ItemID, &item.RestaurantID, &item.ItemName, &item.Category, &item.Description, &item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLItemRepository) Update(ctx context.Context, item domain.Item) error {
	query := `
		UPDATE Items
		SET itemName = ?, category = ?, description = ?, price = ?
		WHERE itemId = ?
	`

	_, err := r.db.ExecContext(ctx, query, item.ItemName, item.Category, item.Description, item.Price, item.ItemID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

func (r *MySQLItemRepository) Delete(ctx context.Context, itemID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Items WHERE itemId = ?`, itemID)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewResourceNotFoundError(errors.ResourceItem, "Item not found")
	}

	return nil
}
