package restaurant

import (
	"net/http"
	"strconv"
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

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req CreateRestaurantRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if err := validateCreateRequest(req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	rest, err := c.service.Create(r.Context(), req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, toDTO(*rest), logger)
}

func (c *Controller) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	rest, err := c.service.GetByID(r.Context(), chi.URLParam(r, "restaurantId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*rest), logger)
}

func (c *Controller) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	rs, err := c.service.GetAll(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(rs), logger)
}

func (c *Controller) HandleGetByLocation(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	rs, err := c.service.GetByLocation(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(rs), logger)
}

func (c *Controller) HandleGetByName(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	rs, err := c.service.GetByName(r.Context(), chi.URLParam(r, "restaurantName"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTOs(rs), logger)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req UpdateRestaurantRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	rest, err := c.service.Update(r.Context(), chi.URLParam(r, "restaurantId"), req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*rest), logger)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	rest, err := c.service.DeleteByID(r.Context(), chi.URLParam(r, "restaurantId"))
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*rest), logger)
}

func (c *Controller) HandleGiveRating(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	rating, err := strconv.ParseFloat(chi.URLParam(r, "rating"), 64)
	if err != nil {
		commons.WriteValidationError(w, traceID, "invalid rating", logger, apperrors.ValidationDetail{
			Field:   "rating",
			Message: "rating must be a number",
		})
		return
	}

	rest, err := c.service.GiveRating(r.Context(), chi.URLParam(r, "restaurantId"), rating)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toDTO(*rest), logger)
}

func validateCreateRequest(req CreateRestaurantRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.RestaurantName) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "restaurantName", Message: "restaurantName is required"})
	}
	if strings.TrimSpace(req.Type) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "type", Message: "type is required"})
	}
	if strings.TrimSpace(req.Location) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "location", Message: "location is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
