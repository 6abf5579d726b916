package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type MySQLPaymentRepository struct {
	db *sql.DB
}

func NewMySQLPaymentRepository(db *sql.DB) *MySQLPaymentRepository {
	return &MySQLPaymentRepository{db: db}
}

const selectPayment = `
	SELECT transactionId, orderId, paymentDate, email, amount, transactionStatus
	FROM Payments`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.TransactionID, &p.OrderID, &p.PaymentDate, &p.Email, &p.Amount, &p.TransactionStatus)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLPaymentRepository) Insert(ctx context.Context, tx *sql.Tx, p domain.Payment) error {
	query := `
		INSERT INTO Payments (transactionId, orderId, paymentDate, email, amount, transactionStatus)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query, p.TransactionID, p.OrderID, p.PaymentDate, p.Email, p.Amount, p.TransactionStatus)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (r *MySQLPaymentRepository) FindByOrderID(ctx context.Context, orderID uint) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, selectPayment+` WHERE orderId = ? LIMIT 1`, orderID))
	if err == sql.ErrNoRows {
		return nil, errors.NewPaymentNotFoundError(orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying payment by order id: %w", err)
	}
	return p, nil
}

func (r *MySQLPaymentRepository) FindByOrderIDForUpdate(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.Payment, error) {
	p, err := scanPayment(tx.QueryRowContext(ctx, selectPayment+` WHERE orderId = ? LIMIT 1 FOR UPDATE`, orderID))
	if err == sql.ErrNoRows {
		return nil, errors.NewPaymentNotFoundError(orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("locking payment by order id: %w", err)
	}
	return p, nil
}

func (r *MySQLPaymentRepository) FindByTransactionIDForUpdate(ctx context.Context, tx *sql.Tx, transactionID int64) (*domain.Payment, error) {
	p, err := scanPayment(tx.QueryRowContext(ctx, selectPayment+` WHERE transactionId = ? FOR UPDATE`, transactionID))
	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError(errors.ResourcePayment, fmt.Sprintf("The Payment with %d is not exists", transactionID))
	}
	if err != nil {
		return nil, fmt.Errorf("locking payment: %w", err)
	}
	return p, nil
}

func (r *MySQLPaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, selectPayment+` ORDER BY paymentDate`)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		payments = append(payments, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (r *MySQLPaymentRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, transactionID int64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE Payments SET transactionStatus = ? WHERE transactionId = ?`, status, transactionID)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}
	return nil
}

func (r *MySQLPaymentRepository) Delete(ctx context.Context, transactionID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Payments WHERE transactionId = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewResourceNotFoundError(errors.ResourcePayment, fmt.Sprintf("The Payment with %d is not exists", transactionID))
	}

	return nil
}
