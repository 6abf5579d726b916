package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/metrics"
	"foodorder/internal/infrastructure/mysql"
)

const maxIDCollisions = 3

var nowUTC = func() time.Time { return time.Now().UTC() }

type LifecycleService interface {
	Create(ctx context.Context, order domain.Order) (*domain.Payment, error)
	MarkSuccessful(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error)
	MarkPaymentFailed(ctx context.Context, orderID uint) (*domain.Order, error)
	Cancel(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error)
}

type OrderRepository interface {
	OrderIDChecker
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type CartReader interface {
	GetByID(ctx context.Context, cartID string) (*domain.Cart, error)
}

type ItemCatalog interface {
	ViewByID(ctx context.Context, itemID string) (*domain.Item, error)
}

type RestaurantDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
}

type PaymentConfirmer interface {
	SendConfirmation(ctx context.Context, order domain.Order, payment domain.Payment)
}

type CancellationNotifier interface {
	OrderCancelled(ctx context.Context, order domain.Order, to string)
}

type OrderUseCase struct {
	lifecycle        LifecycleService
	orders           OrderRepository
	ids              *IDGenerator
	carts            CartReader
	items            ItemCatalog
	restaurants      RestaurantDirectory
	confirmer        PaymentConfirmer
	notifier         CancellationNotifier
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewOrderUseCase(
	lifecycle LifecycleService,
	orders OrderRepository,
	ids *IDGenerator,
	carts CartReader,
	items ItemCatalog,
	restaurants RestaurantDirectory,
	confirmer PaymentConfirmer,
	notifier CancellationNotifier,
	logger *zap.Logger,
	maxRetryAttempts int,
) *OrderUseCase {
	return &OrderUseCase{
		lifecycle:        lifecycle,
		orders:           orders,
		ids:              ids,
		carts:            carts,
		items:            items,
		restaurants:      restaurants,
		confirmer:        confirmer,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// PlaceOrder checks out cartID for user. Ownership mismatch and an empty cart are answered with
// a message instead of an error, and nothing is written.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, draft domain.OrderDraft, cartID string, user domain.CurrentUser) (string, error) {
	uc.logger.Info("place order started", zap.String("cartId", cartID), zap.String("username", user.Username))

	orderID, err := uc.ids.Next(ctx)
	if err != nil {
		return "", err
	}

	cart, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return "", err
	}

	if !cart.OwnedBy(user.Username) {
		uc.logger.Warn("cart owner mismatch", zap.String("cartId", cartID), zap.String("username", user.Username))
		return domain.MsgUserMismatch, nil
	}

	if cart.IsEmpty() {
		uc.logger.Info("cart is empty", zap.String("cartId", cartID))
		return domain.MsgCartEmpty, nil
	}

	details, err := uc.snapshot(ctx, cart.Items)
	if err != nil {
		return "", err
	}

	order := domain.Order{
		OrderID:                 orderID,
		OrderDate:               nowUTC(),
		Email:                   user.Email,
		OrderStatus:             domain.OrderStatusPending,
		DeliveryStatus:          domain.DeliveryStatusOnTheWay,
		OrderDetails:            details,
		PhoneNumber:             draft.PhoneNumber,
		Cost:                    cart.TotalPrice,
		Address:                 draft.Address,
		Pincode:                 draft.Pincode,
		City:                    draft.City,
		State:                   draft.State,
		OrderInstructions:       draft.OrderInstructions,
		DeliveryPartnerAssigned: false,
	}

	payment, err := uc.create(ctx, &order)
	if err != nil {
		return "", err
	}

	if order.OrderID == 0 {
		uc.logger.Error("order not placed", zap.String("cartId", cartID))
		return "", apperrors.NewInternalError("not placed the order", nil)
	}

	metrics.OrdersPlaced.Inc()
	uc.logger.Info("order placed",
		zap.Uint("orderId", order.OrderID),
		zap.String("cost", order.Cost.String()),
		zap.Int("lines", len(details)),
	)

	if uc.confirmer != nil {
		uc.confirmer.SendConfirmation(ctx, order, *payment)
	}

	return fmt.Sprintf("Order cost: %s,Order Id: %d", order.Cost.String(), order.OrderID), nil
}

// create persists the order, drawing a fresh id when another request inserted the same one first.
func (uc *OrderUseCase) create(ctx context.Context, order *domain.Order) (*domain.Payment, error) {
	for collision := 0; ; collision++ {
		payment, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "order.create", func(ctx context.Context) (*domain.Payment, error) {
			return uc.lifecycle.Create(ctx, *order)
		})
		if err == nil {
			return payment, nil
		}

		var paymentFailure *apperrors.InternalError
		if errors.As(err, &paymentFailure) || !mysql.IsDuplicateEntry(err) || collision >= maxIDCollisions {
			return nil, err
		}

		uc.logger.Warn("order id collision, drawing a new id", zap.Uint("orderId", order.OrderID))
		id, idErr := uc.ids.Next(ctx)
		if idErr != nil {
			return nil, idErr
		}
		order.OrderID = id
	}
}

func (uc *OrderUseCase) snapshot(ctx context.Context, lines []domain.CartItem) ([]string, error) {
	details := make([]string, 0, len(lines))
	for _, line := range lines {
		item, err := uc.items.ViewByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}

		restaurant, err := uc.restaurants.GetByID(ctx, item.RestaurantID)
		if err != nil {
			return nil, err
		}

		details = append(details, fmt.Sprintf("%s,Restaurant: %s,Item Price: %v", item.ItemName, restaurant.RestaurantName, item.Price))
	}
	return details, nil
}

func (uc *OrderUseCase) MarkSuccessful(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
	uc.logger.Info("mark successful started", zap.Uint("orderId", orderID), zap.String("username", user.Username))

	order, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "order.markSuccessful", func(ctx context.Context) (*domain.Order, error) {
		return uc.lifecycle.MarkSuccessful(ctx, user, orderID)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(domain.OrderStatusSuccessful).Inc()
	return order, nil
}

func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID uint, user domain.CurrentUser) (string, error) {
	uc.logger.Info("cancel order started", zap.Uint("orderId", orderID), zap.String("username", user.Username))

	order, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "order.cancel", func(ctx context.Context) (*domain.Order, error) {
		return uc.lifecycle.Cancel(ctx, user, orderID)
	})
	if err != nil {
		return "", err
	}

	if order == nil {
		return domain.MsgOrderAlreadyDelivered, nil
	}

	metrics.OrderTransitions.WithLabelValues("cancelled").Inc()
	if uc.notifier != nil {
		uc.notifier.OrderCancelled(ctx, *order, user.Email)
	}

	return domain.MsgOrderDeleted, nil
}

func (uc *OrderUseCase) OrderPaymentFailed(ctx context.Context, orderID uint) error {
	uc.logger.Info("payment failed started", zap.Uint("orderId", orderID))

	_, err := mysql.RetryOnDeadlock(ctx, uc.maxRetryAttempts, uc.logger, "order.paymentFailed", func(ctx context.Context) (*domain.Order, error) {
		return uc.lifecycle.MarkPaymentFailed(ctx, orderID)
	})
	if err != nil {
		return err
	}

	metrics.OrderTransitions.WithLabelValues(domain.OrderStatusPaymentFailed).Inc()
	return nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID uint) (*domain.Order, error) {
	return uc.orders.FindByID(ctx, orderID)
}

func (uc *OrderUseCase) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, "No orders found")
	}
	return orders, nil
}

func (uc *OrderUseCase) GetOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	orders, err := uc.orders.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, fmt.Sprintf("No order found with email: %s", email))
	}
	return orders, nil
}
