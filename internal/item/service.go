package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/redis"
)

const (
	msgNoItemsFound   = "No Items found"
	msgItemNotFound   = "Item not found"
	msgNoItemsPresent = "No Items present"
)

type itemService struct {
	repo        Repository
	restaurants RestaurantFinder
	cache       Cache
	logger      *zap.Logger
}

func NewService(repo Repository, restaurants RestaurantFinder, cache Cache, logger *zap.Logger) Service {
	return &itemService{
		repo:        repo,
		restaurants: restaurants,
		cache:       cache,
		logger:      logger,
	}
}

func (s *itemService) AddItem(ctx context.Context, req CreateItemRequest) (*domain.Item, error) {
	if _, err := s.restaurants.GetByID(ctx, req.RestaurantID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			s.logger.Warn("adding item failed, unknown restaurant", zap.String("restaurantId", req.RestaurantID))
			return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceRestaurant,
				fmt.Sprintf("The restaurant with %s id is not found", req.RestaurantID))
		}
		return nil, err
	}

	item := domain.Item{
		ItemID:       uuid.New().String(),
		RestaurantID: req.RestaurantID,
		ItemName:     req.ItemName,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item added", zap.String("itemId", item.ItemID), zap.String("restaurantId", item.RestaurantID))
	return &item, nil
}

func (s *itemService) ViewAll(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceItem, msgNoItemsFound)
	}
	return items, nil
}

func (s *itemService) Update(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	if err := s.repo.Update(ctx, *item); err != nil {
		return nil, err
	}
	s.evict(ctx, itemID)

	s.logger.Info("item updated", zap.String("itemId", itemID))
	return item, nil
}

// ViewByID reads through the cache; carts resolve every added item here.
func (s *itemService) ViewByID(ctx context.Context, itemID string) (*domain.Item, error) {
	key := redis.Key("item", itemID)

	var cached domain.Item
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, item); err != nil {
		s.logger.Warn("failed to cache item", zap.String("itemId", itemID), zap.Error(err))
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return nil, err
	}
	s.evict(ctx, itemID)

	s.logger.Info("item deleted", zap.String("itemId", itemID))
	return item, nil
}

func (s *itemService) ViewByName(ctx context.Context, itemName string) ([]domain.Item, error) {
	items, err := s.repo.FindByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceItem, msgItemNotFound)
	}
	return items, nil
}

func (s *itemService) ViewByRestaurantID(ctx context.Context, restaurantID string) ([]domain.Item, error) {
	items, err := s.repo.FindByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		s.logger.Warn("no items for restaurant", zap.String("restaurantId", restaurantID))
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceItem, msgNoItemsPresent)
	}
	return items, nil
}

func (s *itemService) evict(ctx context.Context, itemID string) {
	if err := s.cache.Delete(ctx, redis.Key("item", itemID)); err != nil {
		s.logger.Warn("failed to evict item", zap.String("itemId", itemID), zap.Error(err))
	}
}
