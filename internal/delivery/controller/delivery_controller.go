package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodorder/internal/commons"
	"foodorder/internal/domain"
	"foodorder/internal/dto"
	apperrors "foodorder/internal/errors"
)

type DeliveryUseCase interface {
	CreatePartner(ctx context.Context, name, phoneNumber string) (*domain.DeliveryPartner, error)
	AssignToOrder(ctx context.Context, orderID uint) (string, error)
	UpdateStatus(ctx context.Context, deliveryID string) (string, error)
	RemoveOrder(ctx context.Context, orderID uint) error
	ViewPendingOrders(ctx context.Context) ([]domain.Order, error)
	GetAllPartners(ctx context.Context) ([]domain.DeliveryPartner, error)
}

type DeliveryController struct {
	useCase DeliveryUseCase
	logger  *zap.Logger
}

func NewDeliveryController(useCase DeliveryUseCase, logger *zap.Logger) *DeliveryController {
	return &DeliveryController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *DeliveryController) CreatePartner(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreatePartnerRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phoneNumber", Message: "phoneNumber is required"})
	}
	if len(details) > 0 {
		commons.WriteValidationError(w, traceID, "validation failed", logger, details...)
		return
	}

	partner, err := c.useCase.CreatePartner(r.Context(), req.Name, req.PhoneNumber)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewPartnerResponse(*partner), logger)
}

func (c *DeliveryController) AssignDriver(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	msg, err := c.useCase.AssignToOrder(r.Context(), orderID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *DeliveryController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	msg, err := c.useCase.UpdateStatus(r.Context(), chi.URLParam(r, "driverId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *DeliveryController) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	if err := c.useCase.RemoveOrder(r.Context(), orderID); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *DeliveryController) ViewPendingOrders(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.useCase.ViewPendingOrders(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderResponses(orders), logger)
}

func (c *DeliveryController) GetAllPartners(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	partners, err := c.useCase.GetAllPartners(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	out := make([]dto.PartnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, dto.NewPartnerResponse(p))
	}
	commons.WriteJSON(w, http.StatusOK, out, logger)
}

func parseOrderID(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (uint, bool) {
	orderID, err := strconv.ParseUint(chi.URLParam(r, "orderId"), 10, 32)
	if err != nil || orderID == 0 {
		logger.Warn("invalid orderId in path", zap.String("orderId", chi.URLParam(r, "orderId")))
		commons.WriteValidationError(w, traceID, "invalid orderId", logger, apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return uint(orderID), true
}
