package restaurant

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/testutil"
)

type mockRepository struct {
	InsertFunc          func(ctx context.Context, r domain.Restaurant) error
	FindByIDFunc        func(ctx context.Context, id string) (*domain.Restaurant, error)
	FindAllFunc         func(ctx context.Context) ([]domain.Restaurant, error)
	FindByLocationFunc  func(ctx context.Context, location string) ([]domain.Restaurant, error)
	FindByNameFunc      func(ctx context.Context, name string) ([]domain.Restaurant, error)
	UpdateFunc          func(ctx context.Context, r domain.Restaurant) error
	FindItemIDsFunc     func(ctx context.Context, tx *sql.Tx, restaurantID string) ([]string, error)
	DeleteWithItemsFunc func(ctx context.Context, tx *sql.Tx, restaurantID string) error
}

func (m *mockRepository) Insert(ctx context.Context, r domain.Restaurant) error {
	return m.InsertFunc(ctx, r)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.Restaurant, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) FindByLocation(ctx context.Context, location string) ([]domain.Restaurant, error) {
	return m.FindByLocationFunc(ctx, location)
}

func (m *mockRepository) FindByName(ctx context.Context, name string) ([]domain.Restaurant, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *mockRepository) Update(ctx context.Context, r domain.Restaurant) error {
	return m.UpdateFunc(ctx, r)
}

func (m *mockRepository) FindItemIDs(ctx context.Context, tx *sql.Tx, restaurantID string) ([]string, error) {
	return m.FindItemIDsFunc(ctx, tx, restaurantID)
}

func (m *mockRepository) DeleteWithItems(ctx context.Context, tx *sql.Tx, restaurantID string) error {
	return m.DeleteWithItemsFunc(ctx, tx, restaurantID)
}

type mockCache struct {
	entries map[string]domain.Restaurant
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]domain.Restaurant{}}
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) bool {
	r, ok := m.entries[key]
	if !ok {
		return false
	}
	*(dest.(*domain.Restaurant)) = r
	return true
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}) error {
	m.entries[key] = *(value.(*domain.Restaurant))
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.deleted = append(m.deleted, keys...)
	return nil
}

func newTestService(db TransactionManager, repo Repository, cache Cache) Service {
	return NewService(db, repo, cache, zap.NewNop(), 5*time.Second)
}

func TestGetByID_ReadThroughCache(t *testing.T) {
	calls := 0
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			calls++
			return &domain.Restaurant{RestaurantID: id, RestaurantName: "Paradise"}, nil
		},
	}
	cache := newMockCache()
	svc := newTestService(nil, repo, cache)

	first, err := svc.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	second, err := svc.GetByID(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.RestaurantName, second.RestaurantName)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceRestaurant, "Restaurant not found")
		},
	}
	svc := newTestService(nil, repo, newMockCache())

	_, err := svc.GetByID(context.Background(), "missing")

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Restaurant not found", nfe.Message)
}

func TestGetByLocation_EmptyIsNotFound(t *testing.T) {
	repo := &mockRepository{
		FindByLocationFunc: func(ctx context.Context, location string) ([]domain.Restaurant, error) {
			return nil, nil
		},
	}
	svc := newTestService(nil, repo, newMockCache())

	_, err := svc.GetByLocation(context.Background(), "Pune")

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Restaurants not found", nfe.Message)
}

func TestGetByName_EmptyIsNotFound(t *testing.T) {
	repo := &mockRepository{
		FindByNameFunc: func(ctx context.Context, name string) ([]domain.Restaurant, error) {
			return []domain.Restaurant{}, nil
		},
	}
	svc := newTestService(nil, repo, newMockCache())

	_, err := svc.GetByName(context.Background(), "Nowhere")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdate_PartialFieldsAndEviction(t *testing.T) {
	var saved domain.Restaurant
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return &domain.Restaurant{RestaurantID: id, RestaurantName: "Old", Type: "veg", Location: "Pune"}, nil
		},
		UpdateFunc: func(ctx context.Context, r domain.Restaurant) error {
			saved = r
			return nil
		},
	}
	cache := newMockCache()
	cache.entries["restaurant:r1"] = domain.Restaurant{RestaurantID: "r1", RestaurantName: "Old"}
	svc := newTestService(nil, repo, cache)

	name := "New"
	got, err := svc.Update(context.Background(), "r1", UpdateRestaurantRequest{RestaurantName: &name})
	require.NoError(t, err)

	assert.Equal(t, "New", got.RestaurantName)
	assert.Equal(t, "veg", saved.Type)
	assert.Equal(t, "Pune", saved.Location)
	assert.NotContains(t, cache.entries, "restaurant:r1")
}

func TestGiveRating_OutOfRange(t *testing.T) {
	svc := newTestService(nil, &mockRepository{}, newMockCache())

	for _, rating := range []float64{-1, 5.5} {
		_, err := svc.GiveRating(context.Background(), "r1", rating)
		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok, "rating %v", rating)
	}
}

func TestGiveRating_Success(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return &domain.Restaurant{RestaurantID: id}, nil
		},
		UpdateFunc: func(ctx context.Context, r domain.Restaurant) error {
			return nil
		},
	}
	svc := newTestService(nil, repo, newMockCache())

	got, err := svc.GiveRating(context.Background(), "r1", 4.5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Rating)
}

func TestDeleteByID_CascadesAndEvictsItems(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	deleted := false
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return &domain.Restaurant{RestaurantID: id}, nil
		},
		FindItemIDsFunc: func(ctx context.Context, tx *sql.Tx, restaurantID string) ([]string, error) {
			return []string{"i1", "i2"}, nil
		},
		DeleteWithItemsFunc: func(ctx context.Context, tx *sql.Tx, restaurantID string) error {
			deleted = true
			return nil
		},
	}
	cache := newMockCache()
	svc := newTestService(db, repo, cache)

	_, err := svc.DeleteByID(context.Background(), "r1")
	require.NoError(t, err)

	assert.True(t, deleted)
	assert.ElementsMatch(t, []string{"restaurant:r1", "item:i1", "item:i2"}, cache.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByID_RollbackOnFailure(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return &domain.Restaurant{RestaurantID: id}, nil
		},
		FindItemIDsFunc: func(ctx context.Context, tx *sql.Tx, restaurantID string) ([]string, error) {
			return nil, nil
		},
		DeleteWithItemsFunc: func(ctx context.Context, tx *sql.Tx, restaurantID string) error {
			return errors.New("boom")
		},
	}
	cache := newMockCache()
	svc := newTestService(db, repo, cache)

	_, err := svc.DeleteByID(context.Background(), "r1")
	assert.Error(t, err)
	assert.Empty(t, cache.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_AssignsID(t *testing.T) {
	var inserted domain.Restaurant
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, r domain.Restaurant) error {
			inserted = r
			return nil
		},
	}
	svc := newTestService(nil, repo, newMockCache())

	got, err := svc.Create(context.Background(), CreateRestaurantRequest{RestaurantName: "Paradise", Type: "biryani", Location: "Hyderabad"})
	require.NoError(t, err)

	assert.NotEmpty(t, got.RestaurantID)
	assert.Equal(t, got.RestaurantID, inserted.RestaurantID)
	assert.Zero(t, got.Rating)
}
