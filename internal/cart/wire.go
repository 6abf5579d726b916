package cart

import (
	"database/sql"

	"go.uber.org/zap"

	"foodorder/internal/cart/repository"
	"foodorder/internal/config"
)

type Module struct {
	Controller *Controller
	Service    Service
	Repository *repository.MySQLCartRepository
}

func NewModule(db *sql.DB, items ItemFinder, cfg *config.Config, logger *zap.Logger) *Module {
	repo := repository.NewMySQLCartRepository(db)
	svc := NewService(db, repo, items, logger, cfg.Order.TxTimeout)
	return &Module{
		Controller: NewController(svc, logger),
		Service:    svc,
		Repository: repo,
	}
}
