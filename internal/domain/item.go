package domain

import "github.com/shopspring/decimal"

type Item struct {
	ItemID       string
	RestaurantID string
	ItemName     string
	Category     string
	Description  string
	Price        decimal.Decimal
}
