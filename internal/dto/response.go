package dto

import (
	"time"

	apperrors "foodorder/internal/errors"
)

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Resource  string    `json:"resource,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

// MessageResponse wraps the plain outcome strings of the order and delivery workflows.
type MessageResponse struct {
	TraceID   string    `json:"traceId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
