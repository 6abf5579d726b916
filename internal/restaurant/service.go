package restaurant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/redis"
)

const msgRestaurantsNotFound = "Restaurants not found"

type restaurantService struct {
	db        TransactionManager
	repo      Repository
	cache     Cache
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewService(db TransactionManager, repo Repository, cache Cache, logger *zap.Logger, txTimeout time.Duration) Service {
	return &restaurantService{
		db:        db,
		repo:      repo,
		cache:     cache,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *restaurantService) Create(ctx context.Context, req CreateRestaurantRequest) (*domain.Restaurant, error) {
	r := domain.Restaurant{
		RestaurantID:   uuid.New().String(),
		RestaurantName: req.RestaurantName,
		Type:           req.Type,
		Location:       req.Location,
	}

	if err := s.repo.Insert(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("restaurant created", zap.String("restaurantId", r.RestaurantID), zap.String("name", r.RestaurantName))
	return &r, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	key := redis.Key("restaurant", id)

	var cached domain.Restaurant
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, r); err != nil {
		s.logger.Warn("failed to cache restaurant", zap.String("restaurantId", id), zap.Error(err))
	}
	return r, nil
}

func (s *restaurantService) GetAll(ctx context.Context) ([]domain.Restaurant, error) {
	rs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []domain.Restaurant{}
	}
	return rs, nil
}

func (s *restaurantService) GetByLocation(ctx context.Context, location string) ([]domain.Restaurant, error) {
	rs, err := s.repo.FindByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		s.logger.Warn("no restaurants for location", zap.String("location", location))
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceRestaurant, msgRestaurantsNotFound)
	}
	return rs, nil
}

func (s *restaurantService) GetByName(ctx context.Context, name string) ([]domain.Restaurant, error) {
	rs, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		s.logger.Warn("no restaurants with name", zap.String("name", name))
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceRestaurant, msgRestaurantsNotFound)
	}
	return rs, nil
}

func (s *restaurantService) Update(ctx context.Context, id string, req UpdateRestaurantRequest) (*domain.Restaurant, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RestaurantName != nil {
		r.RestaurantName = *req.RestaurantName
	}
	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Location != nil {
		r.Location = *req.Location
	}

	if err := s.repo.Update(ctx, *r); err != nil {
		return nil, err
	}
	s.evict(ctx, redis.Key("restaurant", id))

	s.logger.Info("restaurant updated", zap.String("restaurantId", id))
	return r, nil
}

func (s *restaurantService) GiveRating(ctx context.Context, id string, rating float64) (*domain.Restaurant, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		msg := fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
		return nil, apperrors.NewValidationError(msg, apperrors.ValidationDetail{Field: "rating", Message: msg})
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Rating = rating
	if err := s.repo.Update(ctx, *r); err != nil {
		return nil, err
	}
	s.evict(ctx, redis.Key("restaurant", id))

	s.logger.Info("restaurant rated", zap.String("restaurantId", id), zap.Float64("rating", rating))
	return r, nil
}

// DeleteByID removes the restaurant and its menu in one transaction.
func (s *restaurantService) DeleteByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	itemIDs, err := s.repo.FindItemIDs(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteWithItems(txCtx, tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("restaurantId", id), zap.Error(err))
		return nil, err
	}

	keys := []string{redis.Key("restaurant", id)}
	for _, itemID := range itemIDs {
		keys = append(keys, redis.Key("item", itemID))
	}
	s.evict(ctx, keys...)

	s.logger.Info("restaurant deleted", zap.String("restaurantId", id), zap.Int("itemCount", len(itemIDs)))
	return r, nil
}

func (s *restaurantService) evict(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to evict cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
