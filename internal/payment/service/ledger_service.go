package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/mysql"
)

const (
	minTransactionID = 1000000
	// transaction ids are drawn from [minTransactionID, minTransactionID+transactionIDSpan)
	transactionIDSpan = 900000000

	maxInsertAttempts = 3

	MsgPaymentDeleted = "Payment is deleted Successfully"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type PaymentRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, p domain.Payment) error
	FindByOrderID(ctx context.Context, orderID uint) (*domain.Payment, error)
	FindByOrderIDForUpdate(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.Payment, error)
	FindByTransactionIDForUpdate(ctx context.Context, tx *sql.Tx, transactionID int64) (*domain.Payment, error)
	FindAll(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, transactionID int64, status string) error
	Delete(ctx context.Context, transactionID int64) error
}

// Confirmer delivers the payment confirmation to the customer.
type Confirmer interface {
	OrderPlaced(ctx context.Context, order domain.Order, payment domain.Payment)
}

// LedgerService records one payment per order and keeps its status in step with the order.
type LedgerService struct {
	db        TransactionManager
	repo      PaymentRepository
	confirmer Confirmer
	logger    *zap.Logger
	txTimeout time.Duration

	nextTransactionID func() int64
}

func NewLedgerService(
	db TransactionManager,
	repo PaymentRepository,
	confirmer Confirmer,
	logger *zap.Logger,
	txTimeout time.Duration,
) *LedgerService {
	return &LedgerService{
		db:        db,
		repo:      repo,
		confirmer: confirmer,
		logger:    logger,
		txTimeout: txTimeout,
		nextTransactionID: func() int64 {
			return int64(rand.Intn(transactionIDSpan) + minTransactionID)
		},
	}
}

// Initiate records the payment of order inside the caller's transaction.
func (s *LedgerService) Initiate(ctx context.Context, tx *sql.Tx, order domain.Order) (*domain.Payment, error) {
	payment := domain.Payment{
		OrderID:           order.OrderID,
		PaymentDate:       time.Now().UTC(),
		Email:             order.Email,
		Amount:            order.Cost,
		TransactionStatus: order.OrderStatus,
	}

	var err error
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		payment.TransactionID = s.nextTransactionID()
		err = s.repo.Insert(ctx, tx, payment)
		if err == nil {
			s.logger.Info("payment initiated",
				zap.Uint("orderId", order.OrderID),
				zap.Int64("transactionId", payment.TransactionID),
				zap.String("amount", payment.Amount.String()),
			)
			return &payment, nil
		}
		if !mysql.IsDuplicateEntry(err) {
			break
		}
	}

	s.logger.Error("payment failed", zap.Uint("orderId", order.OrderID), zap.Error(err))
	return nil, apperrors.NewInternalError(fmt.Sprintf("Payment Failed of RS %s", order.Cost.String()), err)
}

func (s *LedgerService) SendConfirmation(ctx context.Context, order domain.Order, payment domain.Payment) {
	if s.confirmer == nil {
		return
	}
	s.confirmer.OrderPlaced(ctx, order, payment)
}

func (s *LedgerService) LockForOrder(ctx context.Context, tx *sql.Tx, orderID uint) (*domain.Payment, error) {
	return s.repo.FindByOrderIDForUpdate(ctx, tx, orderID)
}

func (s *LedgerService) ChangeStatus(ctx context.Context, tx *sql.Tx, transactionID int64, status string) error {
	if err := s.repo.UpdateStatus(ctx, tx, transactionID, status); err != nil {
		return err
	}
	s.logger.Info("payment status changed", zap.Int64("transactionId", transactionID), zap.String("status", status))
	return nil
}

func (s *LedgerService) GetByOrderID(ctx context.Context, orderID uint) (*domain.Payment, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

func (s *LedgerService) GetAll(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *LedgerService) PaymentSuccess(ctx context.Context, transactionID int64) (*domain.Payment, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	payment, err := s.repo.FindByTransactionIDForUpdate(txCtx, tx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(txCtx, tx, transactionID, domain.PaymentStatusDone); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int64("transactionId", transactionID), zap.Error(err))
		return nil, err
	}

	payment.TransactionStatus = domain.PaymentStatusDone
	s.logger.Info("payment done", zap.Int64("transactionId", transactionID))
	return payment, nil
}

func (s *LedgerService) Delete(ctx context.Context, transactionID int64) (string, error) {
	if err := s.repo.Delete(ctx, transactionID); err != nil {
		return "", err
	}
	s.logger.Info("payment deleted", zap.Int64("transactionId", transactionID))
	return MsgPaymentDeleted, nil
}
