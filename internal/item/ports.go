package item

import (
	"context"

	"foodorder/internal/domain"
)

type Service interface {
	AddItem(ctx context.Context, req CreateItemRequest) (*domain.Item, error)
	ViewAll(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.Item, error)
	ViewByID(ctx context.Context, itemID string) (*domain.Item, error)
	Delete(ctx context.Context, itemID string) (*domain.Item, error)
	ViewByName(ctx context.Context, itemName string) ([]domain.Item, error)
	ViewByRestaurantID(ctx context.Context, restaurantID string) ([]domain.Item, error)
}

type Repository interface {
	Insert(ctx context.Context, item domain.Item) error
	FindByID(ctx context.Context, itemID string) (*domain.Item, error)
	FindAll(ctx context.Context) ([]domain.Item, error)
	FindByName(ctx context.Context, itemName string) ([]domain.Item, error)
	FindByRestaurantID(ctx context.Context, restaurantID string) ([]domain.Item, error)
	Update(ctx context.Context, item domain.Item) error
	Delete(ctx context.Context, itemID string) error
}

// RestaurantFinder confirms the owning restaurant of a new item.
type RestaurantFinder interface {
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
