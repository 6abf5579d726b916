package item

import (
	"github.com/shopspring/decimal"

	"foodorder/internal/domain"
)

type CreateItemRequest struct {
	RestaurantID string          `json:"restaurantId"`
	ItemName     string          `json:"itemName"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

type UpdateItemRequest struct {
	ItemName    *string          `json:"itemName"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

type ItemDTO struct {
	ItemID       string          `json:"itemId"`
	RestaurantID string          `json:"restaurantId"`
	ItemName     string          `json:"itemName"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

func toDTO(i domain.Item) ItemDTO {
	return ItemDTO{
		ItemID:       i.ItemID,
		RestaurantID: i.RestaurantID,
		ItemName:     i.ItemName,
		Category:     i.Category,
		Description:  i.Description,
		Price:        i.Price,
	}
}

func toDTOs(items []domain.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, i := range items {
		out = append(out, toDTO(i))
	}
	return out
}
