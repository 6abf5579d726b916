package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
)

type mockDeliveryUseCase struct {
	DeliveryUseCase
	CreatePartnerFunc func(ctx context.Context, name, phoneNumber string) (*domain.DeliveryPartner, error)
	AssignToOrderFunc func(ctx context.Context, orderID uint) (string, error)
	UpdateStatusFunc  func(ctx context.Context, deliveryID string) (string, error)
	RemoveOrderFunc   func(ctx context.Context, orderID uint) error
}

func (m *mockDeliveryUseCase) CreatePartner(ctx context.Context, name, phoneNumber string) (*domain.DeliveryPartner, error) {
	return m.CreatePartnerFunc(ctx, name, phoneNumber)
}

func (m *mockDeliveryUseCase) AssignToOrder(ctx context.Context, orderID uint) (string, error) {
	return m.AssignToOrderFunc(ctx, orderID)
}

func (m *mockDeliveryUseCase) UpdateStatus(ctx context.Context, deliveryID string) (string, error) {
	return m.UpdateStatusFunc(ctx, deliveryID)
}

func (m *mockDeliveryUseCase) RemoveOrder(ctx context.Context, orderID uint) error {
	return m.RemoveOrderFunc(ctx, orderID)
}

func newTestRouter(uc DeliveryUseCase) http.Handler {
	c := NewDeliveryController(uc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/delivery/createDriver", c.CreatePartner)
	r.Put("/delivery/assignDriver/{orderId}", c.AssignDriver)
	r.Get("/delivery/updateStatus/{driverId}", c.UpdateStatus)
	r.Delete("/delivery/removeOrder/{orderId}", c.RemoveOrder)
	return r
}

func TestCreatePartner_ValidationError(t *testing.T) {
	router := newTestRouter(&mockDeliveryUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/delivery/createDriver", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phoneNumber")
}

func TestCreatePartner_Created(t *testing.T) {
	uc := &mockDeliveryUseCase{
		CreatePartnerFunc: func(ctx context.Context, name, phoneNumber string) (*domain.DeliveryPartner, error) {
			return &domain.DeliveryPartner{DeliveryID: "d1", Name: name, PhoneNumber: phoneNumber}, nil
		},
	}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/delivery/createDriver", strings.NewReader(`{"name":"Sam","phoneNumber":"9999999999"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deliveryId":"d1"`)
	assert.Contains(t, rec.Body.String(), `"assigned":false`)
}

func TestAssignDriver_SoftOutcomeIsOK(t *testing.T) {
	uc := &mockDeliveryUseCase{
		AssignToOrderFunc: func(ctx context.Context, orderID uint) (string, error) {
			assert.Equal(t, uint(1234), orderID)
			return domain.MsgNoDeliveryPartners, nil
		},
	}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/delivery/assignDriver/1234", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.MsgNoDeliveryPartners)
}

func TestAssignDriver_InvalidOrderID(t *testing.T) {
	router := newTestRouter(&mockDeliveryUseCase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/delivery/assignDriver/x1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_AlreadyDeliveredIsConflict(t *testing.T) {
	uc := &mockDeliveryUseCase{
		UpdateStatusFunc: func(ctx context.Context, deliveryID string) (string, error) {
			return "", apperrors.NewAlreadyDeliveredError(domain.MsgItemAlreadyDelivered)
		},
	}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/delivery/updateStatus/d1", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.MsgItemAlreadyDelivered)
}

func TestRemoveOrder_NotFound(t *testing.T) {
	uc := &mockDeliveryUseCase{
		RemoveOrderFunc: func(ctx context.Context, orderID uint) error {
			return apperrors.NewOrderIDNotFoundError()
		},
	}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/delivery/removeOrder/1234", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order id is not present")
}
