package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID                 uint
	OrderDate               time.Time
	Email                   string
	OrderStatus             string
	DeliveryStatus          string
	OrderDetails            []string
	PhoneNumber             string
	Cost                    decimal.Decimal
	Address                 string
	Pincode                 string
	City                    string
	State                   string
	OrderInstructions       string
	DeliveryPartnerAssigned bool
}

const (
	OrderStatusPending       = "pending"
	OrderStatusSuccessful    = "Successful"
	OrderStatusPaymentFailed = "Payment failed"
)

const (
	DeliveryStatusOnTheWay  = "Delivery guy is on the way"
	DeliveryStatusDelivered = "Delivered"
	DeliveryStatusCancelled = "Order Cancelled"
)

// OrderDraft carries the customer supplied part of a new order.
type OrderDraft struct {
	PhoneNumber       string
	Address           string
	Pincode           string
	City              string
	State             string
	OrderInstructions string
}

func (o Order) IsPending() bool {
	return o.OrderStatus == OrderStatusPending
}

func (o Order) IsDelivered() bool {
	return o.DeliveryStatus == DeliveryStatusDelivered
}

func (o Order) IsPaid() bool {
	return o.OrderStatus == OrderStatusSuccessful
}

// CanBeManagedBy reports whether user may act on the order: admins always, customers only on their own orders.
func (o Order) CanBeManagedBy(user CurrentUser) bool {
	if user.Role == RoleAdmin {
		return true
	}
	return o.Email == user.Email
}
