package dto

import (
	"time"

	"foodorder/internal/domain"
)

type CreatePartnerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type PartnerResponse struct {
	DeliveryID  string    `json:"deliveryId"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Assigned    bool      `json:"assigned"`
	OrderID     *uint     `json:"orderId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewPartnerResponse(p domain.DeliveryPartner) PartnerResponse {
	return PartnerResponse{
		DeliveryID:  p.DeliveryID,
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Assigned:    p.Assigned,
		OrderID:     p.OrderID,
		CreatedAt:   p.CreatedAt,
	}
}
