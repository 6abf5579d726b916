package cart

import (
	"github.com/shopspring/decimal"

	"foodorder/internal/domain"
)

type CartItemRequest struct {
	ItemID string `json:"itemId"`
	CartID string `json:"cartId"`
}

type CartItemDTO struct {
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	RestaurantID string          `json:"restaurantId"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

type CartDTO struct {
	CartID     string          `json:"cartId"`
	Username   string          `json:"username"`
	Items      []CartItemDTO   `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func toDTO(c domain.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, CartItemDTO{
			ItemID:       line.ItemID,
			ItemName:     line.ItemName,
			RestaurantID: line.RestaurantID,
			Description:  line.Description,
			Price:        line.Price,
			Quantity:     line.Quantity,
		})
	}
	return CartDTO{
		CartID:     c.CartID,
		Username:   c.Username,
		Items:      items,
		TotalPrice: c.TotalPrice,
	}
}

func toDTOs(carts []domain.Cart) []CartDTO {
	out := make([]CartDTO, 0, len(carts))
	for _, c := range carts {
		out = append(out, toDTO(c))
	}
	return out
}
