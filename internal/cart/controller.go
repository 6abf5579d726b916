package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodorder/internal/auth"
	"foodorder/internal/commons"
	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleAddCart(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError(auth.MsgUnauthorizedAccess), logger)
		return
	}

	cart, err := c.service.AddCart(r.Context(), user)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, toDTO(*cart), logger)
}

func (c *Controller) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	carts, err := c.service.GetAll(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(carts), logger)
}

func (c *Controller) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	cart, err := c.service.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*cart), logger)
}

func (c *Controller) HandleDeleteCart(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError(auth.MsgUnauthorizedAccess), logger)
		return
	}

	msg, err := c.service.DeleteByID(r.Context(), user, chi.URLParam(r, "cartId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *Controller) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	c.handleLineMutation(w, r, c.service.AddItem)
}

func (c *Controller) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	c.handleLineMutation(w, r, c.service.DeleteItem)
}

func (c *Controller) HandleDecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	c.handleLineMutation(w, r, c.service.DecreaseQuantity)
}

func (c *Controller) HandleIncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	c.handleLineMutation(w, r, c.service.IncreaseQuantity)
}

type lineMutation func(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error)

func (c *Controller) handleLineMutation(w http.ResponseWriter, r *http.Request, op lineMutation) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError(auth.MsgUnauthorizedAccess), logger)
		return
	}

	var req CartItemRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if err := validateCartItemRequest(req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	cart, err := op(r.Context(), user, req.CartID, req.ItemID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*cart), logger)
}

func validateCartItemRequest(req CartItemRequest) error {
	var details []apperrors.ValidationDetail

	if req.CartID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "cartId", Message: "cartId is required"})
	}
	if req.ItemID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "itemId", Message: "itemId is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
