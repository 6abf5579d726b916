package restaurant

import (
	"database/sql"

	"go.uber.org/zap"

	"foodorder/internal/config"
	"foodorder/internal/restaurant/repository"
)

type Module struct {
	Controller *Controller
	Service    Service
}

func NewModule(db *sql.DB, cache Cache, cfg *config.Config, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRestaurantRepository(db)
	svc := NewService(db, repo, cache, logger, cfg.Order.TxTimeout)
	return &Module{
		Controller: NewController(svc, logger),
		Service:    svc,
	}
}
