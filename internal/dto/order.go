package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/domain"
)

type PlaceOrderRequest struct {
	PhoneNumber       string `json:"phoneNumber"`
	Address           string `json:"address"`
	Pincode           string `json:"pincode"`
	City              string `json:"city"`
	State             string `json:"state"`
	OrderInstructions string `json:"orderInstructions"`
}

func (r PlaceOrderRequest) ToDraft() domain.OrderDraft {
	return domain.OrderDraft{
		PhoneNumber:       r.PhoneNumber,
		Address:           r.Address,
		Pincode:           r.Pincode,
		City:              r.City,
		State:             r.State,
		OrderInstructions: r.OrderInstructions,
	}
}

type OrderResponse struct {
	OrderID                 uint            `json:"orderId"`
	OrderDate               time.Time       `json:"orderDate"`
	Email                   string          `json:"email"`
	OrderStatus             string          `json:"orderStatus"`
	DeliveryStatus          string          `json:"deliveryStatus"`
	OrderDetails            []string        `json:"orderDetails"`
	PhoneNumber             string          `json:"phoneNumber"`
	Cost                    decimal.Decimal `json:"cost"`
	Address                 string          `json:"address"`
	Pincode                 string          `json:"pincode"`
	City                    string          `json:"city"`
	State                   string          `json:"state"`
	OrderInstructions       string          `json:"orderInstructions,omitempty"`
	DeliveryPartnerAssigned bool            `json:"deliveryPartnerAssigned"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	details := o.OrderDetails
	if details == nil {
		details = []string{}
	}
	return OrderResponse{
		OrderID:                 o.OrderID,
		OrderDate:               o.OrderDate,
		Email:                   o.Email,
		OrderStatus:             o.OrderStatus,
		DeliveryStatus:          o.DeliveryStatus,
		OrderDetails:            details,
		PhoneNumber:             o.PhoneNumber,
		Cost:                    o.Cost,
		Address:                 o.Address,
		Pincode:                 o.Pincode,
		City:                    o.City,
		State:                   o.State,
		OrderInstructions:       o.OrderInstructions,
		DeliveryPartnerAssigned: o.DeliveryPartnerAssigned,
	}
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
