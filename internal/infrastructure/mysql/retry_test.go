package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "foodorder/internal/errors"
)

func createDeadlockError() error {
	return &mysql.MySQLError{Number: 1213}
}

func TestIsDeadlock(t *testing.T) {
	assert.True(t, IsDeadlock(createDeadlockError()))
	assert.True(t, IsDeadlock(&mysql.MySQLError{Number: 1205}))
	assert.True(t, IsDeadlock(fmt.Errorf("updating order: %w", createDeadlockError())))
	assert.False(t, IsDeadlock(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDeadlock(errors.New("other")))
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, IsDuplicateEntry(fmt.Errorf("inserting order: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, IsDuplicateEntry(createDeadlockError()))
}

func TestRetryOnDeadlock_SucceedsAfterRetry(t *testing.T) {
	calls := 0

	result, err := RetryOnDeadlock(context.Background(), 3, zap.NewNop(), "test", func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", createDeadlockError()
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestRetryOnDeadlock_NonDeadlockReturnsImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	_, err := RetryOnDeadlock(context.Background(), 3, zap.NewNop(), "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRetryOnDeadlock_MaxRetriesExceeded(t *testing.T) {
	calls := 0

	_, err := RetryOnDeadlock(context.Background(), 3, zap.NewNop(), "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, createDeadlockError()
	})

	assert.Equal(t, 3, calls)
	_, ok := apperrors.IsDeadlockError(err)
	assert.True(t, ok)
}

func TestRetryOnDeadlock_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := RetryOnDeadlock(ctx, 3, zap.NewNop(), "test", func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, createDeadlockError()
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
