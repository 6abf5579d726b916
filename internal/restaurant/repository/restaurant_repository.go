package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type MySQLRestaurantRepository struct {
	db *sql.DB
}

func NewMySQLRestaurantRepository(db *sql.DB) *MySQLRestaurantRepository {
	return &MySQLRestaurantRepository{db: db}
}

const selectRestaurant = `
	SELECT restaurantId, restaurantName, type, location, rating
	FROM Restaurants`

func (r *MySQLRestaurantRepository) Insert(ctx context.Context, rest domain.Restaurant) error {
	query := `
		INSERT INTO Restaurants (restaurantId, restaurantName, type, location, rating)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, rest.RestaurantID, rest.RestaurantName, rest.Type, rest.Location, rest.Rating)
	if err != nil {
		return fmt.Errorf("inserting restaurant: %w", err)
	}
	return nil
}

func (r *MySQLRestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.db.QueryRowContext(ctx, selectRestaurant+` WHERE restaurantId = ?`, id).Scan(
		&rest.RestaurantID, &rest.RestaurantName, &rest.Type, &rest.Location, &rest.Rating,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError(errors.ResourceRestaurant, "Restaurant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying restaurant by id: %w", err)
	}

	return &rest, nil
}

func (r *MySQLRestaurantRepository) FindAll(ctx context.Context) ([]domain.Restaurant, error) {
	return r.list(ctx, selectRestaurant+` ORDER BY restaurantName`)
}

func (r *MySQLRestaurantRepository) FindByLocation(ctx context.Context, location string) ([]domain.Restaurant, error) {
	return r.list(ctx, selectRestaurant+` WHERE location = ? ORDER BY restaurantName`, location)
}

func (r *MySQLRestaurantRepository) FindByName(ctx context.Context, name string) ([]domain.Restaurant, error) {
	return r.list(ctx, selectRestaurant+` WHERE restaurantName = ?`, name)
}

func (r *MySQLRestaurantRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.RestaurantID, &rest.RestaurantName, &rest.Type, &rest.Location, &rest.Rating); err != nil {
			return nil, fmt.Errorf("scanning restaurant row: %w", err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating restaurant rows: %w", err)
	}

	return restaurants, nil
}

func (r *MySQLRestaurantRepository) Update(ctx context.Context, rest domain.Restaurant) error {
	query := `
		UPDATE Restaurants
		SET restaurantName = ?, type = ?, location = ?, rating = ?
		WHERE restaurantId = ?
	`

	result, err := r.db.ExecContext(ctx, query, rest.RestaurantName, rest.Type, rest.Location, rest.Rating, rest.RestaurantID)
	if err != nil {
		return fmt.Errorf("updating restaurant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	// MySQL reports 0 when the row exists but nothing changed, so confirm existence before failing.
	if rowsAffected == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM Restaurants WHERE restaurantId = ?`, rest.RestaurantID).Scan(&exists)
		if err == sql.ErrNoRows {
			return errors.NewResourceNotFoundError(errors.ResourceRestaurant, "Restaurant not found")
		}
		if err != nil {
			return fmt.Errorf("checking restaurant: %w", err)
		}
	}

	return nil
}

func (r *MySQLRestaurantRepository) FindItemIDs(ctx context.Context, tx *sql.Tx, restaurantID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT itemId FROM Items WHERE restaurantId = ? FOR UPDATE`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("querying restaurant items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning item id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item ids: %w", err)
	}

	return ids, nil
}

func (r *MySQLRestaurantRepository) DeleteWithItems(ctx context.Context, tx *sql.Tx, restaurantID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM Items WHERE restaurantId = ?`, restaurantID); err != nil {
		return fmt.Errorf("deleting restaurant items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM Restaurants WHERE restaurantId = ?`, restaurantID)
	if err != nil {
		return fmt.Errorf("deleting restaurant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewResourceNotFoundError(errors.ResourceRestaurant, "Restaurant not found")
	}

	return nil
}
