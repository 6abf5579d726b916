package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

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

func (c *Controller) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req SignUpRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if err := validateSignUp(req); err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	msg, err := c.service.SignUp(r.Context(), req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteMessage(w, traceID, msg, logger)
}

func (c *Controller) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req SignInRequest
	if !commons.DecodeJSON(w, r, traceID, &req, logger) {
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		commons.WriteError(w, traceID, apperrors.NewUnauthorizedError(msgInvalidCredentials), logger)
		return
	}

	token, err := c.service.SignIn(r.Context(), req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, token, logger)
}

func validateSignUp(req SignUpRequest) error {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Username) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
	}
	if len(req.Password) < 6 {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password must have at least 6 characters"})
	}
	if !strings.Contains(req.Email, "@") {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is not valid"})
	}
	if !domain.IsValidRole(req.Role) {
		details = append(details, apperrors.ValidationDetail{Field: "role", Message: "role must be ADMIN, USER or DRIVER"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
