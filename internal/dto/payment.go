package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/domain"
)

type PaymentResponse struct {
	TransactionID     int64           `json:"transactionId"`
	OrderID           uint            `json:"orderId"`
	PaymentDate       time.Time       `json:"paymentDate"`
	Email             string          `json:"email"`
	Amount            decimal.Decimal `json:"amount"`
	TransactionStatus string          `json:"transactionStatus"`
}

func NewPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		TransactionID:     p.TransactionID,
		OrderID:           p.OrderID,
		PaymentDate:       p.PaymentDate,
		Email:             p.Email,
		Amount:            p.Amount,
		TransactionStatus: p.TransactionStatus,
	}
}

func NewPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}
