package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodorder/internal/auth"
	"foodorder/internal/commons"
	"foodorder/internal/domain"
	"foodorder/internal/dto"
	apperrors "foodorder/internal/errors"
)

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, draft domain.OrderDraft, cartID string, user domain.CurrentUser) (string, error)
	MarkSuccessful(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID uint, user domain.CurrentUser) (string, error)
	OrderPaymentFailed(ctx context.Context, orderID uint) error
	GetOrder(ctx context.Context, orderID uint) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := c.currentUser(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.PlaceOrderRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if validationErr := validatePlaceOrderRequest(req); validationErr != nil {
		commons.WriteError(w, traceID, validationErr, logger)
		return
	}

	msg, err := c.useCase.PlaceOrder(r.Context(), req.ToDraft(), chi.URLParam(r, "cartId"), user)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *OrderController) MarkSuccessful(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := c.currentUser(w, r, traceID, logger)
	if !ok {
		return
	}

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	order, err := c.useCase.MarkSuccessful(r.Context(), user, orderID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderResponse(*order), logger)
}

func (c *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := c.currentUser(w, r, traceID, logger)
	if !ok {
		return
	}

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	msg, err := c.useCase.CancelOrder(r.Context(), orderID, user)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *OrderController) PaymentFailed(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	if err := c.useCase.OrderPaymentFailed(r.Context(), orderID); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	order, err := c.useCase.GetOrder(r.Context(), orderID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderResponse(*order), logger)
}

func (c *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.useCase.GetAllOrders(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderResponses(orders), logger)
}

func (c *OrderController) GetOrdersByEmail(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.useCase.GetOrdersByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderResponses(orders), logger)
}

func (c *OrderController) currentUser(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (domain.CurrentUser, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError(auth.MsgUnauthorizedAccess), logger)
		return domain.CurrentUser{}, false
	}
	return user, true
}

func parseOrderID(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (uint, bool) {
	orderID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || orderID == 0 {
		logger.Warn("invalid order id in path", zap.String("id", chi.URLParam(r, "id")))
		commons.WriteValidationError(w, traceID, "invalid id", logger, apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(orderID), true
}

func validatePlaceOrderRequest(req dto.PlaceOrderRequest) error {
	var details []apperrors.ValidationDetail

	required := []struct {
		field string
		value string
	}{
		{"phoneNumber", req.PhoneNumber},
		{"address", req.Address},
		{"pincode", req.Pincode},
		{"city", req.City},
		{"state", req.State},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
