package usecase

import (
	"context"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
)

type mockLifecycle struct {
	CreateFunc            func(ctx context.Context, order domain.Order) (*domain.Payment, error)
	MarkSuccessfulFunc    func(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error)
	MarkPaymentFailedFunc func(ctx context.Context, orderID uint) (*domain.Order, error)
	CancelFunc            func(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error)
}

func (m *mockLifecycle) Create(ctx context.Context, order domain.Order) (*domain.Payment, error) {
	return m.CreateFunc(ctx, order)
}

func (m *mockLifecycle) MarkSuccessful(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
	return m.MarkSuccessfulFunc(ctx, user, orderID)
}

func (m *mockLifecycle) MarkPaymentFailed(ctx context.Context, orderID uint) (*domain.Order, error) {
	return m.MarkPaymentFailedFunc(ctx, orderID)
}

func (m *mockLifecycle) Cancel(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
	return m.CancelFunc(ctx, user, orderID)
}

type mockOrderRepository struct {
	mockIDChecker
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Order, error)
	FindAllFunc     func(ctx context.Context) ([]domain.Order, error)
	FindByEmailFunc func(ctx context.Context, email string) ([]domain.Order, error)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockOrderRepository) FindByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return m.FindByEmailFunc(ctx, email)
}

type mockCartReader struct {
	GetByIDFunc func(ctx context.Context, cartID string) (*domain.Cart, error)
}

func (m *mockCartReader) GetByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	return m.GetByIDFunc(ctx, cartID)
}

type mockItemCatalog struct {
	ViewByIDFunc func(ctx context.Context, itemID string) (*domain.Item, error)
}

func (m *mockItemCatalog) ViewByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return m.ViewByIDFunc(ctx, itemID)
}

type mockRestaurantDirectory struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.Restaurant, error)
}

func (m *mockRestaurantDirectory) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockConfirmer struct {
	SendConfirmationFunc func(ctx context.Context, order domain.Order, payment domain.Payment)
}

func (m *mockConfirmer) SendConfirmation(ctx context.Context, order domain.Order, payment domain.Payment) {
	m.SendConfirmationFunc(ctx, order, payment)
}

type mockCancellationNotifier struct {
	OrderCancelledFunc func(ctx context.Context, order domain.Order, to string)
}

func (m *mockCancellationNotifier) OrderCancelled(ctx context.Context, order domain.Order, to string) {
	m.OrderCancelledFunc(ctx, order, to)
}

var customer = domain.CurrentUser{Username: "ravi", Email: "ravi@example.com", Role: domain.RoleUser}

var draft = domain.OrderDraft{
	PhoneNumber: "9999999999",
	Address:     "MG Road",
	Pincode:     "500001",
	City:        "Hyderabad",
	State:       "Telangana",
}

func biryaniCart() *domain.Cart {
	cart := &domain.Cart{
		CartID:   "c1",
		Username: customer.Username,
		Items: []domain.CartItem{
			{ItemID: "i1", ItemName: "Biryani", RestaurantID: "r1", Price: decimal.NewFromInt(200), Quantity: 2},
		},
	}
	cart.Recalculate()
	return cart
}

func catalog() (*mockItemCatalog, *mockRestaurantDirectory) {
	items := &mockItemCatalog{
		ViewByIDFunc: func(ctx context.Context, itemID string) (*domain.Item, error) {
			return &domain.Item{ItemID: itemID, ItemName: "Biryani", RestaurantID: "r1", Price: decimal.NewFromInt(200)}, nil
		},
	}
	restaurants := &mockRestaurantDirectory{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return &domain.Restaurant{RestaurantID: id, RestaurantName: "Paradise"}, nil
		},
	}
	return items, restaurants
}

type fixture struct {
	lifecycle *mockLifecycle
	orders    *mockOrderRepository
	ids       *IDGenerator
	carts     *mockCartReader
	confirmer *mockConfirmer
	notifier  *mockCancellationNotifier
}

func newFixture() *fixture {
	orders := &mockOrderRepository{mockIDChecker: *freeIDs()}
	ids := NewIDGenerator(orders, true, 5)
	ids.intn = sequence(234, 345, 456)

	return &fixture{
		lifecycle: &mockLifecycle{},
		orders:    orders,
		ids:       ids,
		carts: &mockCartReader{
			GetByIDFunc: func(ctx context.Context, cartID string) (*domain.Cart, error) {
				return biryaniCart(), nil
			},
		},
		confirmer: &mockConfirmer{
			SendConfirmationFunc: func(ctx context.Context, order domain.Order, payment domain.Payment) {},
		},
		notifier: &mockCancellationNotifier{
			OrderCancelledFunc: func(ctx context.Context, order domain.Order, to string) {},
		},
	}
}

func (f *fixture) useCase() *OrderUseCase {
	items, restaurants := catalog()
	return NewOrderUseCase(f.lifecycle, f.orders, f.ids, f.carts, items, restaurants, f.confirmer, f.notifier, zap.NewNop(), 3)
}

func TestPlaceOrder_CreatesPendingOrderWithSnapshot(t *testing.T) {
	f := newFixture()

	var created domain.Order
	f.lifecycle.CreateFunc = func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
		created = order
		return &domain.Payment{TransactionID: 1000001, OrderID: order.OrderID, Amount: order.Cost, TransactionStatus: order.OrderStatus}, nil
	}
	confirmed := false
	f.confirmer.SendConfirmationFunc = func(ctx context.Context, order domain.Order, payment domain.Payment) {
		confirmed = true
		assert.Equal(t, order.OrderID, payment.OrderID)
	}

	msg, err := f.useCase().PlaceOrder(context.Background(), draft, "c1", customer)
	require.NoError(t, err)

	assert.Equal(t, "Order cost: 400,Order Id: 1234", msg)
	assert.Equal(t, uint(1234), created.OrderID)
	assert.Equal(t, domain.OrderStatusPending, created.OrderStatus)
	assert.Equal(t, domain.DeliveryStatusOnTheWay, created.DeliveryStatus)
	assert.Equal(t, customer.Email, created.Email)
	assert.Equal(t, []string{"Biryani,Restaurant: Paradise,Item Price: 200"}, created.OrderDetails)
	assert.False(t, created.DeliveryPartnerAssigned)
	assert.Equal(t, "MG Road", created.Address)
	assert.True(t, confirmed)
}

func TestPlaceOrder_OtherUsersCart(t *testing.T) {
	f := newFixture()
	f.carts.GetByIDFunc = func(ctx context.Context, cartID string) (*domain.Cart, error) {
		c := biryaniCart()
		c.Username = "someone-else"
		return c, nil
	}
	f.lifecycle.CreateFunc = func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
		t.Fatal("order must not be created")
		return nil, nil
	}

	msg, err := f.useCase().PlaceOrder(context.Background(), draft, "c1", customer)
	require.NoError(t, err)
	assert.Equal(t, domain.MsgUserMismatch, msg)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture()
	f.carts.GetByIDFunc = func(ctx context.Context, cartID string) (*domain.Cart, error) {
		return &domain.Cart{CartID: cartID, Username: customer.Username}, nil
	}
	f.lifecycle.CreateFunc = func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
		t.Fatal("order must not be created")
		return nil, nil
	}

	msg, err := f.useCase().PlaceOrder(context.Background(), draft, "c1", customer)
	require.NoError(t, err)
	assert.Equal(t, domain.MsgCartEmpty, msg)
}

func TestPlaceOrder_UnknownCart(t *testing.T) {
	f := newFixture()
	f.carts.GetByIDFunc = func(ctx context.Context, cartID string) (*domain.Cart, error) {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceCart, "Cart with ID "+cartID+" not found")
	}

	_, err := f.useCase().PlaceOrder(context.Background(), draft, "missing", customer)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestPlaceOrder_DuplicateIDDrawsAnother(t *testing.T) {
	f := newFixture()

	var attempts []uint
	f.lifecycle.CreateFunc = func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
		attempts = append(attempts, order.OrderID)
		if len(attempts) == 1 {
			return nil, fmt.Errorf("inserting order: %w", &gomysql.MySQLError{Number: 1062})
		}
		return &domain.Payment{TransactionID: 1000001, OrderID: order.OrderID}, nil
	}

	msg, err := f.useCase().PlaceOrder(context.Background(), draft, "c1", customer)
	require.NoError(t, err)

	assert.Equal(t, []uint{1234, 1345}, attempts)
	assert.Equal(t, "Order cost: 400,Order Id: 1345", msg)
}

func TestPlaceOrder_PaymentFailureIsNotRetried(t *testing.T) {
	f := newFixture()

	calls := 0
	f.lifecycle.CreateFunc = func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
		calls++
		return nil, apperrors.NewInternalError("Payment Failed of RS 400", &gomysql.MySQLError{Number: 1062})
	}

	_, err := f.useCase().PlaceOrder(context.Background(), draft, "c1", customer)

	var internal *apperrors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "Payment Failed of RS 400", internal.Message)
	assert.Equal(t, 1, calls)
}

func TestPlaceOrder_DeadlockIsRetried(t *testing.T) {
	f := newFixture()

	calls := 0
	f.lifecycle.CreateFunc = func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
		calls++
		if calls == 1 {
			return nil, &gomysql.MySQLError{Number: 1213}
		}
		return &domain.Payment{TransactionID: 1000001, OrderID: order.OrderID}, nil
	}

	_, err := f.useCase().PlaceOrder(context.Background(), draft, "c1", customer)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMarkSuccessful_ReturnsUpdatedOrder(t *testing.T) {
	f := newFixture()
	f.lifecycle.MarkSuccessfulFunc = func(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
		return &domain.Order{OrderID: orderID, OrderStatus: domain.OrderStatusSuccessful}, nil
	}

	order, err := f.useCase().MarkSuccessful(context.Background(), customer, 1234)
	require.NoError(t, err)
	assert.True(t, order.IsPaid())
}

func TestCancelOrder_NotifiesCaller(t *testing.T) {
	f := newFixture()
	f.lifecycle.CancelFunc = func(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
		return &domain.Order{OrderID: orderID, Email: user.Email}, nil
	}
	var notified string
	f.notifier.OrderCancelledFunc = func(ctx context.Context, order domain.Order, to string) {
		notified = to
	}

	msg, err := f.useCase().CancelOrder(context.Background(), 1234, customer)
	require.NoError(t, err)

	assert.Equal(t, domain.MsgOrderDeleted, msg)
	assert.Equal(t, customer.Email, notified)
}

func TestCancelOrder_DeliveredOrder(t *testing.T) {
	f := newFixture()
	f.lifecycle.CancelFunc = func(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
		return nil, nil
	}
	f.notifier.OrderCancelledFunc = func(ctx context.Context, order domain.Order, to string) {
		t.Fatal("delivered order must not be announced as cancelled")
	}

	msg, err := f.useCase().CancelOrder(context.Background(), 1234, customer)
	require.NoError(t, err)
	assert.Equal(t, domain.MsgOrderAlreadyDelivered, msg)
}

func TestOrderPaymentFailed_PropagatesConflict(t *testing.T) {
	f := newFixture()
	f.lifecycle.MarkPaymentFailedFunc = func(ctx context.Context, orderID uint) (*domain.Order, error) {
		return nil, apperrors.NewConflictError("Order 1234 is already Successful")
	}

	err := f.useCase().OrderPaymentFailed(context.Background(), 1234)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestGetAllOrders_EmptyIsNotFound(t *testing.T) {
	f := newFixture()
	f.orders.FindAllFunc = func(ctx context.Context) ([]domain.Order, error) {
		return nil, nil
	}

	_, err := f.useCase().GetAllOrders(context.Background())

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "No orders found", nfe.Message)
}

func TestGetOrdersByEmail_EmptyIsNotFound(t *testing.T) {
	f := newFixture()
	f.orders.FindByEmailFunc = func(ctx context.Context, email string) ([]domain.Order, error) {
		return []domain.Order{}, nil
	}

	_, err := f.useCase().GetOrdersByEmail(context.Background(), "ghost@example.com")

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "No order found with email: ghost@example.com", nfe.Message)
}

// orderBook is an in-memory order store driving the whole checkout flow.
type orderBook struct {
	orders   map[uint]domain.Order
	payments map[uint]domain.Payment
	carts    map[string]*domain.Cart
}

func (b *orderBook) lifecycle() *mockLifecycle {
	return &mockLifecycle{
		CreateFunc: func(ctx context.Context, order domain.Order) (*domain.Payment, error) {
			b.orders[order.OrderID] = order
			p := domain.Payment{TransactionID: 1000001, OrderID: order.OrderID, Amount: order.Cost, TransactionStatus: order.OrderStatus}
			b.payments[order.OrderID] = p
			return &p, nil
		},
		MarkSuccessfulFunc: func(ctx context.Context, user domain.CurrentUser, orderID uint) (*domain.Order, error) {
			o, ok := b.orders[orderID]
			if !ok {
				return nil, apperrors.NewOrderNotFoundError(orderID)
			}
			if !o.CanBeManagedBy(user) {
				return nil, apperrors.NewForbiddenError(domain.MsgUserMismatch)
			}
			o.OrderStatus = domain.OrderStatusSuccessful
			b.orders[orderID] = o
			p := b.payments[orderID]
			p.TransactionStatus = o.OrderStatus
			b.payments[orderID] = p
			for id, c := range b.carts {
				if c.Username == user.Username {
					delete(b.carts, id)
				}
			}
			return &o, nil
		},
	}
}

func TestCheckoutFlow_PlaceThenConfirm(t *testing.T) {
	book := &orderBook{
		orders:   map[uint]domain.Order{},
		payments: map[uint]domain.Payment{},
		carts:    map[string]*domain.Cart{"c1": biryaniCart()},
	}

	f := newFixture()
	f.lifecycle = book.lifecycle()
	f.carts.GetByIDFunc = func(ctx context.Context, cartID string) (*domain.Cart, error) {
		c, ok := book.carts[cartID]
		if !ok {
			return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceCart, "Cart with ID "+cartID+" not found")
		}
		return c, nil
	}
	f.orders.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
		o, ok := book.orders[id]
		if !ok {
			return nil, apperrors.NewOrderNotFoundError(id)
		}
		return &o, nil
	}
	uc := f.useCase()
	ctx := context.Background()

	msg, err := uc.PlaceOrder(ctx, draft, "c1", customer)
	require.NoError(t, err)
	assert.Equal(t, "Order cost: 400,Order Id: 1234", msg)

	payment := book.payments[1234]
	assert.True(t, decimal.NewFromInt(400).Equal(payment.Amount))
	assert.Equal(t, domain.OrderStatusPending, payment.TransactionStatus)

	order, err := uc.MarkSuccessful(ctx, customer, 1234)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSuccessful, order.OrderStatus)
	assert.Equal(t, domain.OrderStatusSuccessful, book.payments[1234].TransactionStatus)
	assert.Empty(t, book.carts)

	stored, err := uc.GetOrder(ctx, 1234)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusOnTheWay, stored.DeliveryStatus)

	_, err = uc.PlaceOrder(ctx, draft, "c1", customer)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
