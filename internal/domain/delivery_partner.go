package domain

import "time"

type DeliveryPartner struct {
	DeliveryID  string
	Name        string
	PhoneNumber string
	Assigned    bool
	OrderID     *uint
	CreatedAt   time.Time
}

func (p DeliveryPartner) HasOrder() bool {
	return p.OrderID != nil
}

func (p *DeliveryPartner) Assign(orderID uint) {
	id := orderID
	p.OrderID = &id
	p.Assigned = true
}

func (p *DeliveryPartner) Release() {
	p.OrderID = nil
	p.Assigned = false
}
