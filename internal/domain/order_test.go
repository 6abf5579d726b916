package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	orderDate := time.Now()

	order := Order{
		OrderID:        1234,
		OrderDate:      orderDate,
		Email:          "john@example.com",
		OrderStatus:    OrderStatusPending,
		DeliveryStatus: DeliveryStatusOnTheWay,
		OrderDetails:   []string{"Biryani,Restaurant: Paradise,Item Price: 200"},
		PhoneNumber:    "9876543210",
		Cost:           decimal.NewFromInt(400),
		Address:        "12 MG Road",
		Pincode:        "560001",
		City:           "Bengaluru",
		State:          "Karnataka",
	}

	assert.Equal(t, uint(1234), order.OrderID)
	assert.Equal(t, orderDate, order.OrderDate)
	assert.Equal(t, "john@example.com", order.Email)
	assert.True(t, order.IsPending())
	assert.False(t, order.IsDelivered())
	assert.False(t, order.IsPaid())
	assert.False(t, order.DeliveryPartnerAssigned)
	assert.True(t, decimal.NewFromInt(400).Equal(order.Cost))
	assert.Len(t, order.OrderDetails, 1)
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "pending", OrderStatusPending)
	assert.Equal(t, "Successful", OrderStatusSuccessful)
	assert.Equal(t, "Payment failed", OrderStatusPaymentFailed)
	assert.Equal(t, "Delivery guy is on the way", DeliveryStatusOnTheWay)
	assert.Equal(t, "Delivered", DeliveryStatusDelivered)
	assert.Equal(t, "Order Cancelled", DeliveryStatusCancelled)
}

func TestOrder_CanBeManagedBy(t *testing.T) {
	order := Order{Email: "john@example.com"}

	assert.True(t, order.CanBeManagedBy(CurrentUser{Username: "john", Email: "john@example.com", Role: RoleUser}))
	assert.False(t, order.CanBeManagedBy(CurrentUser{Username: "jane", Email: "jane@example.com", Role: RoleUser}))
	assert.True(t, order.CanBeManagedBy(CurrentUser{Username: "root", Email: "root@example.com", Role: RoleAdmin}))
}

func TestOrder_IsDeliveredAndPaid(t *testing.T) {
	order := Order{OrderStatus: OrderStatusSuccessful, DeliveryStatus: DeliveryStatusDelivered}

	assert.True(t, order.IsPaid())
	assert.True(t, order.IsDelivered())
	assert.False(t, order.IsPending())
}
