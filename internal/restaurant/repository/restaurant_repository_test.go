package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/testutil"
)

// Unit Tests

func TestNewMySQLRestaurantRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLRestaurantRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestRepository_FindByID_NoRows(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT restaurantId").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	repo := NewMySQLRestaurantRepository(db)
	_, err := repo.FindByID(context.Background(), "missing")

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ResourceRestaurant, nfe.Resource)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteWithItems_RemovesItemsFirst(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM Items").WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM Restaurants").WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewMySQLRestaurantRepository(db)
	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, repo.DeleteWithItems(context.Background(), tx, "r1"))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_MissingRow(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("UPDATE Restaurants").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM Restaurants").WithArgs("r1").WillReturnError(sql.ErrNoRows)

	repo := NewMySQLRestaurantRepository(db)
	err := repo.Update(context.Background(), domain.Restaurant{RestaurantID: "r1"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Integration Tests

func TestRepository_InsertAndFindByLocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRestaurantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, domain.Restaurant{RestaurantID: "r1", RestaurantName: "Paradise", Type: "biryani", Location: "Hyderabad"}))
	require.NoError(t, repo.Insert(ctx, domain.Restaurant{RestaurantID: "r2", RestaurantName: "Vaishali", Type: "south indian", Location: "Pune"}))

	found, err := repo.FindByLocation(ctx, "Pune")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Vaishali", found[0].RestaurantName)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_DeleteWithItems_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRestaurantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, domain.Restaurant{RestaurantID: "r1", RestaurantName: "Paradise"}))
	_, err := db.Exec(`INSERT INTO Items (itemId, restaurantId, itemName, category, description, price) VALUES ('i1', 'r1', 'Biryani', 'main', 'spicy', 200.00)`)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	ids, err := repo.FindItemIDs(ctx, tx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, ids)

	require.NoError(t, repo.DeleteWithItems(ctx, tx, "r1"))
	require.NoError(t, tx.Commit())

	_, err = repo.FindByID(ctx, "r1")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
