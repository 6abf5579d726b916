package cart

import (
	"context"
	"database/sql"

	"foodorder/internal/domain"
)

type Service interface {
	AddCart(ctx context.Context, user domain.CurrentUser) (*domain.Cart, error)
	GetByUsername(ctx context.Context, username string) (*domain.Cart, error)
	GetByID(ctx context.Context, cartID string) (*domain.Cart, error)
	GetAll(ctx context.Context) ([]domain.Cart, error)
	DeleteByID(ctx context.Context, user domain.CurrentUser, cartID string) (string, error)
	AddItem(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error)
	DeleteItem(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error)
	DecreaseQuantity(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error)
	IncreaseQuantity(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error)
}

type Repository interface {
	Insert(ctx context.Context, cart domain.Cart) error
	FindByID(ctx context.Context, cartID string) (*domain.Cart, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, cartID string) (*domain.Cart, error)
	FindByUsername(ctx context.Context, username string) (*domain.Cart, error)
	FindAll(ctx context.Context) ([]domain.Cart, error)
	Save(ctx context.Context, tx *sql.Tx, cart domain.Cart) error
	Delete(ctx context.Context, tx *sql.Tx, cartID string) error
}

// ItemFinder resolves catalog entries added to a cart.
type ItemFinder interface {
	ViewByID(ctx context.Context, itemID string) (*domain.Item, error)
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
