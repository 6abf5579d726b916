package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/metrics"
	"foodorder/internal/infrastructure/mysql"
)

type AssignmentService interface {
	Assign(ctx context.Context, orderID uint) (string, error)
	CompleteDelivery(ctx context.Context, deliveryID string) (string, *domain.Order, error)
	RemoveOrder(ctx context.Context, orderID uint) error
}

type PartnerRepository interface {
	Insert(ctx context.Context, p domain.DeliveryPartner) error
	FindAll(ctx context.Context) ([]domain.DeliveryPartner, error)
}

type OrderLister interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type DeliveryNotifier interface {
	OrderDelivered(ctx context.Context, order domain.Order)
}

type DeliveryUseCase struct {
	assignments      AssignmentService
	partners         PartnerRepository
	orders           OrderLister
	notifier         DeliveryNotifier
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewDeliveryUseCase(
	assignments AssignmentService,
	partners PartnerRepository,
	orders OrderLister,
	notifier DeliveryNotifier,
	logger *zap.Logger,
	maxRetryAttempts int,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		assignments:      assignments,
		partners:         partners,
		orders:           orders,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *DeliveryUseCase) CreatePartner(ctx context.Context, name, phoneNumber string) (*domain.DeliveryPartner, error) {
	partner := domain.DeliveryPartner{
		DeliveryID:  uuid.New().String(),
		Name:        name,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.partners.Insert(ctx, partner); err != nil {
		return nil, err
	}

	uc.logger.Info("delivery partner added", zap.String("deliveryId", partner.DeliveryID))
	return &partner, nil
}

func (uc *DeliveryUseCase) AssignToOrder(ctx context.Context, orderID uint) (string, error) {
	uc.logger.Info("assign started", zap.Uint("orderId", orderID))

	msg, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "delivery.assign", func(ctx context.Context) (string, error) {
		return uc.assignments.Assign(ctx, orderID)
	})
	if err != nil {
		return "", err
	}

	metrics.DeliveryAssignments.WithLabelValues(assignmentOutcome(msg)).Inc()
	return msg, nil
}

func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, deliveryID string) (string, error) {
	uc.logger.Info("delivery status update started", zap.String("deliveryId", deliveryID))

	result, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "delivery.updateStatus", func(ctx context.Context) (completion, error) {
		msg, order, err := uc.assignments.CompleteDelivery(ctx, deliveryID)
		return completion{msg: msg, order: order}, err
	})
	if err != nil {
		return "", err
	}

	if result.order != nil {
		metrics.DeliveriesCompleted.Inc()
		if uc.notifier != nil {
			uc.notifier.OrderDelivered(ctx, *result.order)
		}
	}
	return result.msg, nil
}

type completion struct {
	msg   string
	order *domain.Order
}

func (uc *DeliveryUseCase) RemoveOrder(ctx context.Context, orderID uint) error {
	_, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "delivery.removeOrder", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.assignments.RemoveOrder(ctx, orderID)
	})
	return err
}

// ViewPendingOrders lists every order that has not been delivered yet.
func (uc *DeliveryUseCase) ViewPendingOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, "No orders found")
	}

	pending := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !o.IsDelivered() {
			pending = append(pending, o)
		}
	}
	return pending, nil
}

func (uc *DeliveryUseCase) GetAllPartners(ctx context.Context) ([]domain.DeliveryPartner, error) {
	partners, err := uc.partners.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if partners == nil {
		partners = []domain.DeliveryPartner{}
	}
	return partners, nil
}

func assignmentOutcome(msg string) string {
	switch {
	case strings.HasPrefix(msg, "Order is assigned to"):
		return "assigned"
	case msg == domain.MsgNoDeliveryPartners:
		return "no_partner"
	case msg == domain.MsgOrderAlreadyAssigned:
		return "already_assigned"
	case msg == domain.MsgOrderAlreadyDelivered:
		return "already_delivered"
	}
	return "other"
}
