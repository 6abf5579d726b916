package item

import (
	"database/sql"

	"go.uber.org/zap"

	"foodorder/internal/item/repository"
)

type Module struct {
	Controller *Controller
	Service    Service
}

func NewModule(db *sql.DB, restaurants RestaurantFinder, cache Cache, logger *zap.Logger) *Module {
	repo := repository.NewMySQLItemRepository(db)
	svc := NewService(repo, restaurants, cache, logger)
	return &Module{
		Controller: NewController(svc, logger),
		Service:    svc,
	}
}
