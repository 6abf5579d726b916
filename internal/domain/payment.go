package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	TransactionID     int64
	OrderID           uint
	PaymentDate       time.Time
	Email             string
	Amount            decimal.Decimal
	TransactionStatus string
}

const PaymentStatusDone = "Payment Done"
