package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodorder/internal/commons"
	"foodorder/internal/domain"
	"foodorder/internal/dto"
	apperrors "foodorder/internal/errors"
)

type PaymentLedger interface {
	GetByOrderID(ctx context.Context, orderID uint) (*domain.Payment, error)
	GetAll(ctx context.Context) ([]domain.Payment, error)
	PaymentSuccess(ctx context.Context, transactionID int64) (*domain.Payment, error)
	Delete(ctx context.Context, transactionID int64) (string, error)
}

type PaymentController struct {
	ledger PaymentLedger
	logger *zap.Logger
}

func NewPaymentController(ledger PaymentLedger, logger *zap.Logger) *PaymentController {
	return &PaymentController{
		ledger: ledger,
		logger: logger,
	}
}

func (c *PaymentController) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := strconv.ParseUint(chi.URLParam(r, "orderId"), 10, 32)
	if err != nil {
		logger.Warn("invalid orderId in path", zap.Error(err))
		commons.WriteValidationError(w, traceID, "invalid orderId", logger, apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	payment, err := c.ledger.GetByOrderID(r.Context(), uint(orderID))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewPaymentResponse(*payment), logger)
}

func (c *PaymentController) GetAll(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	payments, err := c.ledger.GetAll(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewPaymentResponses(payments), logger)
}

func (c *PaymentController) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	transactionID, ok := c.parseTransactionID(w, r, traceID, logger)
	if !ok {
		return
	}

	payment, err := c.ledger.PaymentSuccess(r.Context(), transactionID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewPaymentResponse(*payment), logger)
}

func (c *PaymentController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	transactionID, ok := c.parseTransactionID(w, r, traceID, logger)
	if !ok {
		return
	}

	msg, err := c.ledger.Delete(r.Context(), transactionID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *PaymentController) parseTransactionID(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("invalid transaction id in path", zap.String("id", chi.URLParam(r, "id")))
		commons.WriteValidationError(w, traceID, "invalid id", logger, apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}
