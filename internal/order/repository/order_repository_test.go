package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
	"foodorder/internal/testutil"
)

var orderColumns = []string{
	"orderId", "orderDate", "email", "orderStatus", "deliveryStatus", "orderDetails",
	"phoneNumber", "cost", "address", "pincode", "city", "state", "orderInstructions",
	"deliveryPartnerAssigned",
}

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestOrderRepository_FindByID_DecodesDetails(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT orderId").WithArgs(1234).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(
			1234, now, "ravi@example.com", domain.OrderStatusPending, domain.DeliveryStatusOnTheWay,
			[]byte(`["Biryani,Restaurant: Paradise,Item Price: 200"]`),
			"9999999999", "400.00", "MG Road", "500001", "Hyderabad", "Telangana", "", false,
		))

	repo := NewMySQLOrderRepository(db)
	order, err := repo.FindByID(context.Background(), 1234)
	require.NoError(t, err)

	assert.Equal(t, uint(1234), order.OrderID)
	assert.Equal(t, []string{"Biryani,Restaurant: Paradise,Item Price: 200"}, order.OrderDetails)
	assert.True(t, decimal.NewFromInt(400).Equal(order.Cost))
	assert.True(t, order.IsPending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindByID_RepeatedReadsAreEqual(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	now := time.Now().UTC()
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(orderColumns).AddRow(
			1234, now, "ravi@example.com", domain.OrderStatusSuccessful, domain.DeliveryStatusOnTheWay,
			[]byte(`["Biryani,Restaurant: Paradise,Item Price: 200","Haleem,Restaurant: Pista House,Item Price: 150"]`),
			"9999999999", "550.00", "MG Road", "500001", "Hyderabad", "Telangana", "ring twice", true,
		)
	}
	mock.ExpectQuery("SELECT orderId").WithArgs(1234).WillReturnRows(row())
	mock.ExpectQuery("SELECT orderId").WithArgs(1234).WillReturnRows(row())

	repo := NewMySQLOrderRepository(db)
	first, err := repo.FindByID(context.Background(), 1234)
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), 1234)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT orderId").WithArgs(42).WillReturnError(sql.ErrNoRows)

	repo := NewMySQLOrderRepository(db)
	_, err := repo.FindByID(context.Background(), 42)

	nfe, ok := errors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Order with id 42 is not found", nfe.Message)
}

func TestOrderRepository_ExistsByID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(1234).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewMySQLOrderRepository(db)
	exists, err := repo.ExistsByID(context.Background(), 1234)
	require.NoError(t, err)

	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Delete_NoRowsIsNotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM Orders").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewMySQLOrderRepository(db)
	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.Delete(context.Background(), tx, 7)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Integration Tests

func TestOrderRepository_Lifecycle_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	order := domain.Order{
		OrderID:        1234,
		OrderDate:      time.Now().UTC().Truncate(time.Second),
		Email:          "ravi@example.com",
		OrderStatus:    domain.OrderStatusPending,
		DeliveryStatus: domain.DeliveryStatusOnTheWay,
		OrderDetails:   []string{"Biryani,Restaurant: Paradise,Item Price: 200"},
		PhoneNumber:    "9999999999",
		Cost:           decimal.NewFromInt(400),
		Address:        "MG Road",
		Pincode:        "500001",
		City:           "Hyderabad",
		State:          "Telangana",
	}

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, tx, order))
	require.NoError(t, tx.Commit())

	exists, err := repo.ExistsByID(ctx, 1234)
	require.NoError(t, err)
	assert.True(t, exists)

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	locked, err := repo.FindByIDForUpdate(ctx, tx, 1234)
	require.NoError(t, err)
	assert.Equal(t, order.OrderDetails, locked.OrderDetails)
	require.NoError(t, repo.UpdateStatus(ctx, tx, 1234, domain.OrderStatusSuccessful, domain.DeliveryStatusOnTheWay))
	require.NoError(t, repo.SetDeliveryPartnerAssigned(ctx, tx, 1234, true))
	require.NoError(t, tx.Commit())

	byEmail, err := repo.FindByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, domain.OrderStatusSuccessful, byEmail[0].OrderStatus)
	assert.True(t, byEmail[0].DeliveryPartnerAssigned)

	first, err := repo.FindByID(ctx, 1234)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, 1234)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, tx, 1234))
	require.NoError(t, tx.Commit())

	_, err = repo.FindByID(ctx, 1234)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
