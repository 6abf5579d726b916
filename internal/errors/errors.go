package errors

import (
	stderrors "errors"
	"fmt"
)

// Resources carried by NotFoundError so callers can tell which lookup failed.
const (
	ResourceOrder              = "order"
	ResourcePayment            = "payment"
	ResourceDeliveryAssignment = "delivery_assignment"
	ResourceDeliveryPartner    = "delivery_partner"
	ResourceCart               = "cart"
	ResourceItem               = "item"
	ResourceRestaurant         = "restaurant"
	ResourceUser               = "user"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message  string
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func NewResourceNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{Message: message, Resource: resource}
}

func NewOrderNotFoundError(orderID uint) *NotFoundError {
	return NewResourceNotFoundError(ResourceOrder, fmt.Sprintf("Order with id %d is not found", orderID))
}

// NewPaymentNotFoundError is keyed by order id; the message wording is part of the public API.
func NewPaymentNotFoundError(orderID uint) *NotFoundError {
	return NewResourceNotFoundError(ResourcePayment, fmt.Sprintf("Payment not found with transactionId %d", orderID))
}

func NewOrderIDNotFoundError() *NotFoundError {
	return NewResourceNotFoundError(ResourceDeliveryAssignment, "Order id is not present")
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if stderrors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	var ue *UnauthorizedError
	if stderrors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// DeadlockError is returned once the deadlock retry budget is spent.
type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	var de *DeadlockError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AlreadyDeliveredError signals a delivery status update for an order that was already delivered.
type AlreadyDeliveredError struct {
	Message string
}

func (e *AlreadyDeliveredError) Error() string {
	return e.Message
}

func NewAlreadyDeliveredError(message string) *AlreadyDeliveredError {
	return &AlreadyDeliveredError{Message: message}
}

func IsAlreadyDeliveredError(err error) (*AlreadyDeliveredError, bool) {
	var ade *AlreadyDeliveredError
	if stderrors.As(err, &ade) {
		return ade, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
