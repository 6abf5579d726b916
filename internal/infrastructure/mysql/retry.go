package mysql

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/metrics"
)

const (
	errDeadlock        = 1213
	errLockWaitTimeout = 1205
	errDuplicateEntry  = 1062
)

// Backoff base per attempt; attempts past the table reuse the last entry.
var backoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

func IsDeadlock(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDeadlock || mysqlErr.Number == errLockWaitTimeout
	}
	return false
}

func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDuplicateEntry
	}
	return false
}

// RetryOnDeadlock runs fn until it succeeds, fails with a non-deadlock error, or maxAttempts deadlocks happened.
func RetryOnDeadlock[T any](ctx context.Context, maxAttempts int, logger *zap.Logger, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if !IsDeadlock(err) {
			return zero, err
		}

		metrics.DeadlockRetries.WithLabelValues(op).Inc()
		if attempt == maxAttempts {
			break
		}

		base := backoffs[min(attempt-1, len(backoffs)-1)]
		// ±20% jitter
		wait := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
		logger.Warn("deadlock detected, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Duration("backoff", wait),
		)

		if err := ctx.Err(); err != nil {
			return zero, err
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}

	return zero, apperrors.NewDeadlockError("max retries exceeded")
}
