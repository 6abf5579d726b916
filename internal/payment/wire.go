package payment

import (
	"database/sql"

	"go.uber.org/zap"

	"foodorder/internal/config"
	"foodorder/internal/payment/controller"
	"foodorder/internal/payment/repository"
	"foodorder/internal/payment/service"
)

type Module struct {
	Controller *controller.PaymentController
	Ledger     *service.LedgerService
}

func NewModule(db *sql.DB, confirmer service.Confirmer, cfg *config.Config, logger *zap.Logger) *Module {
	repo := repository.NewMySQLPaymentRepository(db)
	ledger := service.NewLedgerService(db, repo, confirmer, logger, cfg.Order.TxTimeout)
	return &Module{
		Controller: controller.NewPaymentController(ledger, logger),
		Ledger:     ledger,
	}
}
