package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/mysql"
)

const (
	msgCartExists      = "Cart already exists"
	msgNoCartsFound    = "No carts found"
	msgCartDeleted     = "Deleted Successfully"
	msgCartNotYourCart = "cart belongs to another user"
)

type cartService struct {
	db        TransactionManager
	repo      Repository
	items     ItemFinder
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewService(db TransactionManager, repo Repository, items ItemFinder, logger *zap.Logger, txTimeout time.Duration) Service {
	return &cartService{
		db:        db,
		repo:      repo,
		items:     items,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *cartService) AddCart(ctx context.Context, user domain.CurrentUser) (*domain.Cart, error) {
	if _, err := s.repo.FindByUsername(ctx, user.Username); err == nil {
		return nil, apperrors.NewConflictError(msgCartExists)
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	cart := domain.Cart{
		CartID:   uuid.New().String(),
		Username: user.Username,
		Items:    []domain.CartItem{},
	}

	if err := s.repo.Insert(ctx, cart); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return nil, apperrors.NewConflictError(msgCartExists)
		}
		return nil, err
	}

	s.logger.Info("cart created", zap.String("cartId", cart.CartID), zap.String("username", user.Username))
	return &cart, nil
}

func (s *cartService) GetByUsername(ctx context.Context, username string) (*domain.Cart, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *cartService) GetByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.repo.FindByID(ctx, cartID)
}

func (s *cartService) GetAll(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		s.logger.Warn("no carts found")
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceCart, msgNoCartsFound)
	}
	return carts, nil
}

func (s *cartService) DeleteByID(ctx context.Context, user domain.CurrentUser, cartID string) (string, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return "", err
	}
	defer tx.Rollback()

	cart, err := s.repo.FindByIDForUpdate(txCtx, tx, cartID)
	if err != nil {
		return "", err
	}

	if !canModify(*cart, user) {
		return "", apperrors.NewForbiddenError(msgCartNotYourCart)
	}

	if err := s.repo.Delete(txCtx, tx, cartID); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("cartId", cartID), zap.Error(err))
		return "", err
	}

	s.logger.Info("cart deleted", zap.String("cartId", cartID))
	return msgCartDeleted, nil
}

func (s *cartService) AddItem(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error) {
	item, err := s.items.ViewByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, user, cartID, func(c *domain.Cart) {
		c.AddItem(*item)
	})
}

func (s *cartService) DeleteItem(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, user, cartID, func(c *domain.Cart) {
		c.RemoveItem(itemID)
	})
}

func (s *cartService) DecreaseQuantity(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, user, cartID, func(c *domain.Cart) {
		c.DecreaseQuantity(itemID)
	})
}

func (s *cartService) IncreaseQuantity(ctx context.Context, user domain.CurrentUser, cartID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, user, cartID, func(c *domain.Cart) {
		c.IncreaseQuantity(itemID)
	})
}

// mutate applies fn to the locked cart and saves it with a recomputed total.
func (s *cartService) mutate(ctx context.Context, user domain.CurrentUser, cartID string, fn func(c *domain.Cart)) (*domain.Cart, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	cart, err := s.repo.FindByIDForUpdate(txCtx, tx, cartID)
	if err != nil {
		return nil, err
	}

	if !canModify(*cart, user) {
		s.logger.Warn("cart modification by another user", zap.String("cartId", cartID), zap.String("username", user.Username))
		return nil, apperrors.NewForbiddenError(msgCartNotYourCart)
	}

	fn(cart)
	cart.Recalculate()

	if err := s.repo.Save(txCtx, tx, *cart); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("cartId", cartID), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("cart updated", zap.String("cartId", cartID), zap.String("totalPrice", cart.TotalPrice.String()))
	return cart, nil
}

func canModify(cart domain.Cart, user domain.CurrentUser) bool {
	return user.Role == domain.RoleAdmin || cart.OwnedBy(user.Username)
}
