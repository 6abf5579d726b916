package usecase

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	apperrors "foodorder/internal/errors"
)

const (
	legacyMinID = 1000
	legacyMaxID = 9999
	wideMinID   = 1000
	wideMaxID   = 999999999
)

type OrderIDChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// IDGenerator draws random order ids and skips ids already in use. In legacy mode ids stay in
// 1000-9999 and never contain the digit 0.
type IDGenerator struct {
	orders      OrderIDChecker
	legacy      bool
	maxAttempts int
	intn        func(n int) int
}

func NewIDGenerator(orders OrderIDChecker, legacy bool, maxAttempts int) *IDGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &IDGenerator{
		orders:      orders,
		legacy:      legacy,
		maxAttempts: maxAttempts,
		intn:        rand.Intn,
	}
}

func (g *IDGenerator) Next(ctx context.Context) (uint, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		id := g.candidate()

		taken, err := g.orders.ExistsByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if !taken {
			return id, nil
		}
	}
	return 0, apperrors.NewConflictError("could not allocate a free order id")
}

func (g *IDGenerator) candidate() uint {
	if !g.legacy {
		return uint(g.intn(wideMaxID-wideMinID+1) + wideMinID)
	}
	for {
		id := g.intn(legacyMaxID-legacyMinID+1) + legacyMinID
		if !strings.ContainsRune(strconv.Itoa(id), '0') {
			return uint(id)
		}
	}
}
