package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type PartnerRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, deliveryID string) (*domain.DeliveryPartner, error)
	FindFirstUnassignedForUpdate(ctx context.Context, tx *sql.Tx) (*domain.DeliveryPartner, error)
	FindByOrderIDForUpdate(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.DeliveryPartner, error)
	Update(ctx context.Context, tx *sql.Tx, p domain.DeliveryPartner) error
}

// OrderStore is the slice of order persistence that delivery assignment needs.
type OrderStore interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.Order, error)
	SetDeliveryPartnerAssigned(ctx context.Context, tx *sql.Tx, orderID uint, assigned bool) error
	UpdateDeliveryStatus(ctx context.Context, tx *sql.Tx, orderID uint, status string) error
}

// AssignmentService keeps a partner and the order it carries consistent. Every method changes
// both rows inside one transaction.
type AssignmentService struct {
	db        TransactionManager
	partners  PartnerRepository
	orders    OrderStore
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewAssignmentService(
	db TransactionManager,
	partners PartnerRepository,
	orders OrderStore,
	logger *zap.Logger,
	txTimeout time.Duration,
) *AssignmentService {
	return &AssignmentService{
		db:        db,
		partners:  partners,
		orders:    orders,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// Assign hands the order to the first free partner. Locks the order, then the partner.
func (s *AssignmentService) Assign(ctx context.Context, orderID uint) (string, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return "", err
	}
	defer tx.Rollback()

	order, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return "", err
	}

	if order.IsDelivered() {
		s.logger.Info("order already delivered", zap.Uint("orderId", orderID))
		return domain.MsgOrderAlreadyDelivered, nil
	}

	if order.DeliveryPartnerAssigned {
		s.logger.Warn("order already assigned", zap.Uint("orderId", orderID))
		return domain.MsgOrderAlreadyAssigned, nil
	}

	partner, err := s.partners.FindFirstUnassignedForUpdate(txCtx, tx)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			s.logger.Warn("no free delivery partner", zap.Uint("orderId", orderID))
			return domain.MsgNoDeliveryPartners, nil
		}
		return "", err
	}

	partner.Assign(orderID)
	if err := s.partners.Update(txCtx, tx, *partner); err != nil {
		return "", err
	}

	if err := s.orders.SetDeliveryPartnerAssigned(txCtx, tx, orderID, true); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return "", err
	}

	s.logger.Info("order assigned",
		zap.Uint("orderId", orderID),
		zap.String("deliveryId", partner.DeliveryID),
		zap.String("partner", partner.Name),
	)
	return fmt.Sprintf("Order is assigned to %s", partner.DeliveryID), nil
}

// CompleteDelivery marks the partner's order delivered and frees the partner. Locks the
// partner, then the order. The delivered order is returned only when the status changed.
func (s *AssignmentService) CompleteDelivery(ctx context.Context, deliveryID string) (string, *domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return "", nil, err
	}
	defer tx.Rollback()

	partner, err := s.partners.FindByIDForUpdate(txCtx, tx, deliveryID)
	if err != nil {
		return "", nil, err
	}

	if !partner.HasOrder() {
		s.logger.Info("no orders assigned", zap.String("deliveryId", deliveryID))
		return domain.MsgNoOrdersAssigned, nil, nil
	}

	order, err := s.orders.FindByIDForUpdate(txCtx, tx, *partner.OrderID)
	if err != nil {
		return "", nil, err
	}

	if order.IsDelivered() {
		s.logger.Error("order already delivered", zap.String("deliveryId", deliveryID), zap.Uint("orderId", order.OrderID))
		return "", nil, apperrors.NewAlreadyDeliveredError(domain.MsgItemAlreadyDelivered)
	}

	if !order.IsPaid() {
		s.logger.Info("payment pending", zap.String("deliveryId", deliveryID), zap.Uint("orderId", order.OrderID))
		return domain.MsgPaymentPending, nil, nil
	}

	if err := s.orders.UpdateDeliveryStatus(txCtx, tx, order.OrderID, domain.DeliveryStatusDelivered); err != nil {
		return "", nil, err
	}

	partner.Release()
	if err := s.partners.Update(txCtx, tx, *partner); err != nil {
		return "", nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("deliveryId", deliveryID), zap.Error(err))
		return "", nil, err
	}

	order.DeliveryStatus = domain.DeliveryStatusDelivered
	s.logger.Info("order delivered", zap.String("deliveryId", deliveryID), zap.Uint("orderId", order.OrderID))
	return domain.MsgStatusUpdated, order, nil
}

// ReleaseOrder detaches the partner carrying orderID inside the caller's transaction. The caller
// must already hold the order row lock.
func (s *AssignmentService) ReleaseOrder(ctx context.Context, tx *sql.Tx, orderID uint) error {
	partner, err := s.partners.FindByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if err := s.orders.SetDeliveryPartnerAssigned(ctx, tx, orderID, false); err != nil {
		return err
	}

	partner.Release()
	if err := s.partners.Update(ctx, tx, *partner); err != nil {
		return err
	}

	s.logger.Info("order released from partner", zap.Uint("orderId", orderID), zap.String("deliveryId", partner.DeliveryID))
	return nil
}

func (s *AssignmentService) RemoveOrder(ctx context.Context, orderID uint) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if _, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return apperrors.NewOrderIDNotFoundError()
		}
		return err
	}

	if err := s.ReleaseOrder(txCtx, tx, orderID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return err
	}

	return nil
}
