package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const selectOrder = `
	SELECT orderId, orderDate, email, orderStatus, deliveryStatus, orderDetails,
	       phoneNumber, cost, address, pincode, city, state, orderInstructions,
	       deliveryPartnerAssigned
	FROM Orders`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var details []byte
	err := row.Scan(
		&o.OrderID, &o.OrderDate, &o.Email, &o.OrderStatus, &o.DeliveryStatus, &details,
		&o.PhoneNumber, &o.Cost, &o.Address, &o.Pincode, &o.City, &o.State, &o.OrderInstructions,
		&o.DeliveryPartnerAssigned,
	)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.OrderDetails); err != nil {
			return nil, fmt.Errorf("decoding order details: %w", err)
		}
	}
	return &o, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o domain.Order) error {
	details, err := json.Marshal(o.OrderDetails)
	if err != nil {
		return fmt.Errorf("encoding order details: %w", err)
	}

	query := `
		INSERT INTO Orders (orderId, orderDate, email, orderStatus, deliveryStatus, orderDetails,
		                    phoneNumber, cost, address, pincode, city, state, orderInstructions,
		                    deliveryPartnerAssigned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		o.OrderID, o.OrderDate, o.Email, o.OrderStatus, o.DeliveryStatus, details,
		o.PhoneNumber, o.Cost, o.Address, o.Pincode, o.City, o.State, o.OrderInstructions,
		o.DeliveryPartnerAssigned,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM Orders WHERE orderId = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking order id: %w", err)
	}
	return exists, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE orderId = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	return o, nil
}

func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error) {
	o, err := scanOrder(tx.QueryRowContext(ctx, selectOrder+` WHERE orderId = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("locking order: %w", err)
	}
	return o, nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, selectOrder+` ORDER BY orderDate, orderId`)
}

func (r *MySQLOrderRepository) FindByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return r.list(ctx, selectOrder+` WHERE email = ? ORDER BY orderDate, orderId`, email)
}

func (r *MySQLOrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, orderStatus, deliveryStatus string) error {
	return r.exec(ctx, tx, id, "updating order status",
		`UPDATE Orders SET orderStatus = ?, deliveryStatus = ? WHERE orderId = ?`, orderStatus, deliveryStatus, id)
}

func (r *MySQLOrderRepository) UpdateDeliveryStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	return r.exec(ctx, tx, id, "updating delivery status",
		`UPDATE Orders SET deliveryStatus = ? WHERE orderId = ?`, status, id)
}

func (r *MySQLOrderRepository) SetDeliveryPartnerAssigned(ctx context.Context, tx *sql.Tx, id uint, assigned bool) error {
	return r.exec(ctx, tx, id, "updating delivery partner flag",
		`UPDATE Orders SET deliveryPartnerAssigned = ? WHERE orderId = ?`, assigned, id)
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM Orders WHERE orderId = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewOrderNotFoundError(id)
	}

	return nil
}

// exec runs an update against a row the caller already locked. Zero affected rows only means
// the values did not change, so existence is not re-checked here.
func (r *MySQLOrderRepository) exec(ctx context.Context, tx *sql.Tx, id uint, op, query string, args ...interface{}) error {
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s for order %d: %w", op, id, err)
	}
	return nil
}
