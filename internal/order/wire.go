package order

import (
	"database/sql"

	"go.uber.org/zap"

	"foodorder/internal/config"
	"foodorder/internal/order/controller"
	orderrepo "foodorder/internal/order/repository"
	"foodorder/internal/order/service"
	"foodorder/internal/order/usecase"
)

// Payments is satisfied by the payment ledger.
type Payments interface {
	service.PaymentLedger
	usecase.PaymentConfirmer
}

type Dependencies struct {
	Orders      *orderrepo.MySQLOrderRepository
	Payments    Payments
	Carts       usecase.CartReader
	CartStore   service.CartStore
	Items       usecase.ItemCatalog
	Restaurants usecase.RestaurantDirectory
	Delivery    service.DeliveryReleaser
	Notifier    usecase.CancellationNotifier
}

type Module struct {
	Controller *controller.OrderController
	UseCase    *usecase.OrderUseCase
}

func NewModule(db *sql.DB, deps Dependencies, cfg *config.Config, logger *zap.Logger) *Module {
	lifecycle := service.NewLifecycleService(
		db,
		deps.Orders,
		deps.Payments,
		deps.CartStore,
		deps.Delivery,
		logger,
		cfg.Order.TxTimeout,
	)

	ids := usecase.NewIDGenerator(deps.Orders, cfg.Order.LegacyIDFormat, cfg.Order.MaxIDAttempts)

	uc := usecase.NewOrderUseCase(
		lifecycle,
		deps.Orders,
		ids,
		deps.Carts,
		deps.Items,
		deps.Restaurants,
		deps.Payments,
		deps.Notifier,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return &Module{
		Controller: controller.NewOrderController(uc, logger),
		UseCase:    uc,
	}
}
