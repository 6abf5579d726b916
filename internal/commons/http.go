package commons

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodorder/internal/dto"
	apperrors "foodorder/internal/errors"
)

// TraceID reuses the request id assigned by the router middleware, or mints a new one.
func TraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.New().String()
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteMessage(w http.ResponseWriter, traceID string, message string, logger *zap.Logger) {
	WriteJSON(w, http.StatusOK, dto.MessageResponse{
		TraceID:   traceID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, logger)
}

func WriteValidationError(w http.ResponseWriter, traceID string, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	WriteJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}, logger)
}

// WriteError maps application errors to HTTP responses. Unknown errors are logged and hidden.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, traceID, ve.Message, logger, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", nfe.Message, nfe.Resource, logger)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error(), "", logger)
		return
	}

	if _, ok := apperrors.IsAlreadyDeliveredError(err); ok {
		writeErrorResponse(w, traceID, http.StatusConflict, "ALREADY_DELIVERED", err.Error(), "", logger)
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		writeErrorResponse(w, traceID, http.StatusConflict, "DEADLOCK", err.Error(), "", logger)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), "", logger)
		return
	}

	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		writeErrorResponse(w, traceID, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), "", logger)
		return
	}

	var internal *apperrors.InternalError
	if errors.As(err, &internal) {
		logger.Error("internal error", zap.Error(err))
		writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", internal.Message, "", logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", "", logger)
}

func writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message, resource string, logger *zap.Logger) {
	WriteJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		Resource:  resource,
		Timestamp: time.Now().UTC(),
	}, logger)
}

// DecodeJSON decodes the request body into dst and answers 400 itself when the body is not valid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, traceID string, dst interface{}, logger *zap.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		WriteValidationError(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}
