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

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, o domain.Order) error
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, orderStatus, deliveryStatus string) error
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

type PaymentLedger interface {
	Initiate(ctx context.Context, tx *sql.Tx, order domain.Order) (*domain.Payment, error)
	LockForOrder(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.Payment, error)
	ChangeStatus(ctx context.Context, tx *sql.Tx, transactionID int64, status string) error
}

type CartStore interface {
	FindByUsernameForUpdate(ctx context.Context, tx *sql.Tx, username string) (*domain.Cart, error)
	Delete(ctx context.Context, tx *sql.Tx, cartID string) error
}

// DeliveryReleaser detaches the delivery partner of an order inside the caller's transaction.
type DeliveryReleaser interface {
	ReleaseOrder(ctx context.Context, tx *sql.Tx, orderID uint) error
}

// LifecycleService applies each order transition together with its payment, cart and delivery
// side effects in a single transaction. The order row is always locked first.
type LifecycleService struct {
	db        TransactionManager
	orders    OrderRepository
	payments  PaymentLedger
	carts     CartStore
	delivery  DeliveryReleaser
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewLifecycleService(
	db TransactionManager,
	orders OrderRepository,
	payments PaymentLedger,
	carts CartStore,
	delivery DeliveryReleaser,
	logger *zap.Logger,
	txTimeout time.Duration,
) *LifecycleService {
	return &LifecycleService{
		db:        db,
		orders:    orders,
		payments:  payments,
		carts:     carts,
		delivery:  delivery,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *LifecycleService) begin(ctx context.Context) (context.Context, context.CancelFunc, *sql.Tx, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		cancel()
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, nil, err
	}
	return txCtx, cancel, tx, nil
}

// Create persists the order and its payment record atomically.
func (s *LifecycleService) Create(ctx context.Context, order domain.Order) (*domain.Payment, error) {
	txCtx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	if err := s.orders.Insert(txCtx, tx, order); err != nil {
		s.logger.Error("failed to insert order", zap.Uint("orderId", order.OrderID), zap.Error(err))
		return nil, err
	}

	payment, err := s.payments.Initiate(txCtx, tx, order)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", order.OrderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created", zap.Uint("orderId", order.OrderID), zap.Int64("transactionId", payment.TransactionID))
	return payment, nil
}

// MarkSuccessful confirms payment of a pending order and consumes the owner's cart when the
// owner confirms it. A cart already consumed by an earlier order of the same checkout is skipped.
func (s *LifecycleService) MarkSuccessful(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
	txCtx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	order, err := s.lockTransition(txCtx, tx, user, orderID)
	if err != nil {
		return nil, err
	}

	order.OrderStatus = domain.OrderStatusSuccessful
	if err := s.orders.UpdateStatus(txCtx, tx, orderID, order.OrderStatus, order.DeliveryStatus); err != nil {
		return nil, err
	}

	if err := s.propagatePaymentStatus(txCtx, tx, orderID, order.OrderStatus); err != nil {
		return nil, err
	}

	cartID, err := s.consumeCart(txCtx, tx, user, order)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order marked successful", zap.Uint("orderId", orderID), zap.String("cartId", cartID))
	return order, nil
}

// consumeCart deletes the cart of the confirming user and returns its id, or "" when nothing was deleted.
func (s *LifecycleService) consumeCart(ctx context.Context, tx *sql.Tx, user domain.CurrentUser, order *domain.Order) (string, error) {
	if order.Email != user.Email {
		s.logger.Info("order confirmed on behalf of owner, cart kept",
			zap.Uint("orderId", order.OrderID),
			zap.String("username", user.Username),
		)
		return "", nil
	}

	cart, err := s.carts.FindByUsernameForUpdate(ctx, tx, user.Username)
	if _, ok := apperrors.IsNotFoundError(err); ok {
		s.logger.Warn("cart of order owner already consumed", zap.Uint("orderId", order.OrderID), zap.String("username", user.Username))
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if err := s.carts.Delete(ctx, tx, cart.CartID); err != nil {
		return "", err
	}
	return cart.CartID, nil
}

// MarkPaymentFailed moves a pending order to Payment failed and cancels its delivery.
func (s *LifecycleService) MarkPaymentFailed(ctx context.Context, orderID uint) (*domain.Order, error) {
	txCtx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	order, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPending() {
		return nil, apperrors.NewConflictError(transitionRejected(order))
	}

	order.OrderStatus = domain.OrderStatusPaymentFailed
	order.DeliveryStatus = domain.DeliveryStatusCancelled
	if err := s.orders.UpdateStatus(txCtx, tx, orderID, order.OrderStatus, order.DeliveryStatus); err != nil {
		return nil, err
	}

	if err := s.propagatePaymentStatus(txCtx, tx, orderID, order.OrderStatus); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order payment failed", zap.Uint("orderId", orderID))
	return order, nil
}

// Cancel deletes the order after releasing its delivery partner. A delivered order is kept and
// the returned order is nil.
func (s *LifecycleService) Cancel(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
	txCtx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	order, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanBeManagedBy(user) {
		return nil, apperrors.NewForbiddenError(domain.MsgUserMismatch)
	}

	if order.IsDelivered() {
		s.logger.Info("cancel skipped, order delivered", zap.Uint("orderId", orderID))
		return nil, nil
	}

	if order.DeliveryPartnerAssigned {
		if err := s.delivery.ReleaseOrder(txCtx, tx, orderID); err != nil {
			return nil, err
		}
		order.DeliveryPartnerAssigned = false
	}

	if err := s.orders.Delete(txCtx, tx, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order cancelled", zap.Uint("orderId", orderID))
	return order, nil
}

func (s *LifecycleService) lockTransition(ctx context.Context, tx *sql.Tx, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
	order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanBeManagedBy(user) {
		return nil, apperrors.NewForbiddenError(domain.MsgUserMismatch)
	}
	if !order.IsPending() {
		return nil, apperrors.NewConflictError(transitionRejected(order))
	}
	return order, nil
}

func (s *LifecycleService) propagatePaymentStatus(ctx context.Context, tx *sql.Tx, orderID uint, status string) error {
	payment, err := s.payments.LockForOrder(ctx, tx, orderID)
	if err != nil {
		return err
	}
	return s.payments.ChangeStatus(ctx, tx, payment.TransactionID, status)
}

func transitionRejected(order *domain.Order) string {
	return fmt.Sprintf("Order %d is already %s", order.OrderID, order.OrderStatus)
}
