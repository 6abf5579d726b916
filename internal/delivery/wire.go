package delivery

import (
	"database/sql"

	"go.uber.org/zap"

	"foodorder/internal/config"
	"foodorder/internal/delivery/controller"
	"foodorder/internal/delivery/repository"
	"foodorder/internal/delivery/service"
	"foodorder/internal/delivery/usecase"
)

// OrderStore is satisfied by the order repository.
type OrderStore interface {
	service.OrderStore
	usecase.OrderLister
}

type Module struct {
	Controller  *controller.DeliveryController
	Assignments *service.AssignmentService
}

func NewModule(db *sql.DB, orders OrderStore, notifier usecase.DeliveryNotifier, cfg *config.Config, logger *zap.Logger) *Module {
	partnerRepo := repository.NewMySQLPartnerRepository(db)

	assignments := service.NewAssignmentService(
		db,
		partnerRepo,
		orders,
		logger,
		cfg.Order.TxTimeout,
	)

	uc := usecase.NewDeliveryUseCase(
		assignments,
		partnerRepo,
		orders,
		notifier,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return &Module{
		Controller:  controller.NewDeliveryController(uc, logger),
		Assignments: assignments,
	}
}
