package item

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodorder/internal/commons"
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

func (c *Controller) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req CreateItemRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	item, err := c.service.AddItem(r.Context(), req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, toDTO(*item), logger)
}

func (c *Controller) HandleViewAll(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	items, err := c.service.ViewAll(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(items), logger)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req UpdateItemRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if req.Price != nil && req.Price.IsNegative() {
		commons.WriteValidationError(w, traceID, "validation failed", logger, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
		return
	}

	item, err := c.service.Update(r.Context(), chi.URLParam(r, "itemId"), req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*item), logger)
}

func (c *Controller) HandleViewByID(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	item, err := c.service.ViewByID(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*item), logger)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	item, err := c.service.Delete(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*item), logger)
}

func (c *Controller) HandleViewByName(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	items, err := c.service.ViewByName(r.Context(), chi.URLParam(r, "itemName"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(items), logger)
}

func (c *Controller) HandleViewByRestaurantID(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	items, err := c.service.ViewByRestaurantID(r.Context(), chi.URLParam(r, "restaurantId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(items), logger)
}

func (c *Controller) validateCreateRequest(req CreateItemRequest) error {
	var details []apperrors.ValidationDetail

	required := map[string]string{
		"restaurantId": req.RestaurantID,
		"itemName":     req.ItemName,
		"category":     req.Category,
		"description":  req.Description,
	}
	for _, field := range []string{"restaurantId", "itemName", "category", "description"} {
		if strings.TrimSpace(required[field]) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   field,
				Message: field + " is required",
			})
		}
	}

	if !req.Price.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be greater than zero",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
