package restaurant

import (
	"context"
	"database/sql"

	"foodorder/internal/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateRestaurantRequest) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	GetAll(ctx context.Context) ([]domain.Restaurant, error)
	GetByLocation(ctx context.Context, location string) ([]domain.Restaurant, error)
	GetByName(ctx context.Context, name string) ([]domain.Restaurant, error)
	Update(ctx context.Context, id string, req UpdateRestaurantRequest) (*domain.Restaurant, error)
	DeleteByID(ctx context.Context, id string) (*domain.Restaurant, error)
	GiveRating(ctx context.Context, id string, rating float64) (*domain.Restaurant, error)
}

type Repository interface {
	Insert(ctx context.Context, r domain.Restaurant) error
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	FindAll(ctx context.Context) ([]domain.Restaurant, error)
	FindByLocation(ctx context.Context, location string) ([]domain.Restaurant, error)
	FindByName(ctx context.Context, name string) ([]domain.Restaurant, error)
	Update(ctx context.Context, r domain.Restaurant) error
	FindItemIDs(ctx context.Context, tx *sql.Tx, restaurantID string) ([]string, error)
	DeleteWithItems(ctx context.Context, tx *sql.Tx, restaurantID string) error
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Cache is satisfied by *redis.Cache.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
