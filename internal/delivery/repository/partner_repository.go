package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type MySQLPartnerRepository struct {
	db *sql.DB
}

func NewMySQLPartnerRepository(db *sql.DB) *MySQLPartnerRepository {
	return &MySQLPartnerRepository{db: db}
}

const selectPartner = `
	SELECT deliveryId, name, phoneNumber, assigned, orderId, createdAt
	FROM DeliveryPartners`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPartner(row rowScanner) (*domain.DeliveryPartner, error) {
	var p domain.DeliveryPartner
	var orderID sql.NullInt64
	if err := row.Scan(&p.DeliveryID, &p.Name, &p.PhoneNumber, &p.Assigned, &orderID, &p.CreatedAt); err != nil {
		return nil, err
	}
	if orderID.Valid {
		id := uint(orderID.Int64)
		p.OrderID = &id
	}
	return &p, nil
}

func partnerNotFound(deliveryID string) error {
	return errors.NewResourceNotFoundError(errors.ResourceDeliveryPartner, fmt.Sprintf("Delivery partner with id %s not found", deliveryID))
}

func (r *MySQLPartnerRepository) Insert(ctx context.Context, p domain.DeliveryPartner) error {
	query := `
		INSERT INTO DeliveryPartners (deliveryId, name, phoneNumber, assigned, orderId, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, p.DeliveryID, p.Name, p.PhoneNumber, p.Assigned, nullableOrderID(p.OrderID), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting delivery partner: %w", err)
	}
	return nil
}

func (r *MySQLPartnerRepository) FindByID(ctx context.Context, deliveryID string) (*domain.DeliveryPartner, error) {
	p, err := scanPartner(r.db.QueryRowContext(ctx, selectPartner+` WHERE deliveryId = ?`, deliveryID))
	if err == sql.ErrNoRows {
		return nil, partnerNotFound(deliveryID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying delivery partner: %w", err)
	}
	return p, nil
}

func (r *MySQLPartnerRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, deliveryID string) (*domain.DeliveryPartner, error) {
	p, err := scanPartner(tx.QueryRowContext(ctx, selectPartner+` WHERE deliveryId = ? FOR UPDATE`, deliveryID))
	if err == sql.ErrNoRows {
		return nil, partnerNotFound(deliveryID)
	}
	if err != nil {
		return nil, fmt.Errorf("locking delivery partner: %w", err)
	}
	return p, nil
}

func (r *MySQLPartnerRepository) FindAll(ctx context.Context) ([]domain.DeliveryPartner, error) {
	rows, err := r.db.QueryContext(ctx, selectPartner+` ORDER BY createdAt, deliveryId`)
	if err != nil {
		return nil, fmt.Errorf("querying delivery partners: %w", err)
	}
	defer rows.Close()

	var partners []domain.DeliveryPartner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning delivery partner row: %w", err)
		}
		partners = append(partners, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating delivery partner rows: %w", err)
	}

	return partners, nil
}

// FindFirstUnassignedForUpdate locks the oldest free partner. Concurrent callers skip rows
// already locked by another assignment instead of queueing behind it.
func (r *MySQLPartnerRepository) FindFirstUnassignedForUpdate(ctx context.Context, tx *sql.Tx) (*domain.DeliveryPartner, error) {
	query := selectPartner + `
		WHERE assigned = FALSE
		ORDER BY createdAt, deliveryId
		LIMIT 1
		FOR UPDATE SKIP LOCKED`

	p, err := scanPartner(tx.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError(errors.ResourceDeliveryPartner, domain.MsgNoDeliveryPartners)
	}
	if err != nil {
		return nil, fmt.Errorf("locking unassigned delivery partner: %w", err)
	}
	return p, nil
}

func (r *MySQLPartnerRepository) FindByOrderIDForUpdate(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.DeliveryPartner, error) {
	p, err := scanPartner(tx.QueryRowContext(ctx, selectPartner+` WHERE orderId = ? FOR UPDATE`, orderID))
	if err == sql.ErrNoRows {
		return nil, errors.NewOrderIDNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("locking delivery partner by order: %w", err)
	}
	return p, nil
}

func (r *MySQLPartnerRepository) Update(ctx context.Context, tx *sql.Tx, p domain.DeliveryPartner) error {
	query := `UPDATE DeliveryPartners SET assigned = ?, orderId = ? WHERE deliveryId = ?`

	result, err := tx.ExecContext(ctx, query, p.Assigned, nullableOrderID(p.OrderID), p.DeliveryID)
	if err != nil {
		return fmt.Errorf("updating delivery partner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	// MySQL reports zero affected rows when the values are unchanged; the row was locked
	// by the caller, so only a missing id is an error here.
	if rowsAffected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM DeliveryPartners WHERE deliveryId = ?)`, p.DeliveryID).Scan(&exists); err != nil {
			return fmt.Errorf("checking delivery partner: %w", err)
		}
		if !exists {
			return partnerNotFound(p.DeliveryID)
		}
	}

	return nil
}

func nullableOrderID(id *uint) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
