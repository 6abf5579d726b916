package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type MySQLCartRepository struct {
	db *sql.DB
}

func NewMySQLCartRepository(db *sql.DB) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

func cartNotFound(key string) error {
	return errors.NewResourceNotFoundError(errors.ResourceCart, fmt.Sprintf("Cart with ID %s not found", key))
}

func (r *MySQLCartRepository) Insert(ctx context.Context, cart domain.Cart) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO Carts (cartId, username, totalPrice) VALUES (?, ?, ?)`,
		cart.CartID, cart.Username, cart.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("inserting cart: %w", err)
	}
	return nil
}

func (r *MySQLCartRepository) FindByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	return r.find(ctx, r.db, `SELECT cartId, username, totalPrice FROM Carts WHERE cartId = ?`, cartID)
}

func (r *MySQLCartRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, cartID string) (*domain.Cart, error) {
	return r.find(ctx, tx, `SELECT cartId, username, totalPrice FROM Carts WHERE cartId = ? FOR UPDATE`, cartID)
}

func (r *MySQLCartRepository) FindByUsername(ctx context.Context, username string) (*domain.Cart, error) {
	return r.find(ctx, r.db, `SELECT cartId, username, totalPrice FROM Carts WHERE username = ?`, username)
}

// FindByUsernameForUpdate locks the checkout cart of username inside tx.
func (r *MySQLCartRepository) FindByUsernameForUpdate(ctx context.Context, tx *sql.Tx, username string) (*domain.Cart, error) {
	return r.find(ctx, tx, `SELECT cartId, username, totalPrice FROM Carts WHERE username = ? FOR UPDATE`, username)
}

func (r *MySQLCartRepository) find(ctx context.Context, q queryer, query string, key string) (*domain.Cart, error) {
	var cart domain.Cart
	err := q.QueryRowContext(ctx, query, key).Scan(&cart.CartID, &cart.Username, &cart.TotalPrice)
	if err == sql.ErrNoRows {
		return nil, cartNotFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("querying cart: %w", err)
	}

	items, err := r.loadItems(ctx, q, cart.CartID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return &cart, nil
}

func (r *MySQLCartRepository) loadItems(ctx context.Context, q queryer, cartID string) ([]domain.CartItem, error) {
	query := `
		SELECT itemId, itemName, restaurantId, description, price, quantity
		FROM CartItems
		WHERE cartId = ?
		ORDER BY position
	`

	rows, err := q.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var line domain.CartItem
		err := rows.Scan(&line.ItemID, &line.ItemName, &line.RestaurantID, &line.Description, &line.Price, &line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("scanning cart item row: %w", err)
		}
		items = append(items, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLCartRepository) FindAll(ctx context.Context) ([]domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cartId, username, totalPrice FROM Carts ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("querying carts: %w", err)
	}

	var carts []domain.Cart
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.CartID, &cart.Username, &cart.TotalPrice); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning cart row: %w", err)
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating cart rows: %w", err)
	}
	rows.Close()

	for i := range carts {
		items, err := r.loadItems(ctx, r.db, carts[i].CartID)
		if err != nil {
			return nil, err
		}
		carts[i].Items = items
	}

	return carts, nil
}

// Save rewrites the cart total and its lines. The caller holds the row lock.
func (r *MySQLCartRepository) Save(ctx context.Context, tx *sql.Tx, cart domain.Cart) error {
	result, err := tx.ExecContext(ctx, `UPDATE Carts SET totalPrice = ? WHERE cartId = ?`, cart.TotalPrice, cart.CartID)
	if err != nil {
		return fmt.Errorf("updating cart total: %w", err)
	}
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM CartItems WHERE cartId = ?`, cart.CartID); err != nil {
		return fmt.Errorf("clearing cart items: %w", err)
	}

	insert := `
		INSERT INTO CartItems (cartId, itemId, itemName, restaurantId, description, price, quantity, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for pos, line := range cart.Items {
		_, err := tx.ExecContext(ctx, insert,
			cart.CartID, line.ItemID, line.ItemName, line.RestaurantID, line.Description, line.Price, line.Quantity, pos,
		)
		if err != nil {
			return fmt.Errorf("inserting cart item: %w", err)
		}
	}

	return nil
}

func (r *MySQLCartRepository) Delete(ctx context.Context, tx *sql.Tx, cartID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM CartItems WHERE cartId = ?`, cartID); err != nil {
		return fmt.Errorf("deleting cart items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM Carts WHERE cartId = ?`, cartID)
	if err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return cartNotFound(cartID)
	}

	return nil
}
