package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"foodorder/internal/auth"
	"foodorder/internal/cart"
	"foodorder/internal/commons"
	"foodorder/internal/delivery"
	"foodorder/internal/domain"
	"foodorder/internal/infrastructure/metrics"
	"foodorder/internal/item"
	"foodorder/internal/order"
	"foodorder/internal/payment"
	"foodorder/internal/restaurant"
)

type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type Modules struct {
	Auth       *auth.Module
	Restaurant *restaurant.Module
	Item       *item.Module
	Cart       *cart.Module
	Payment    *payment.Module
	Delivery   *delivery.Module
	Order      *order.Module
}

func NewRouter(m Modules, health HealthChecker, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", healthHandler(health, logger))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signUp", m.Auth.Controller.HandleSignUp)
		r.Post("/signIn", m.Auth.Controller.HandleSignIn)
	})

	r.Group(func(r chi.Router) {
		r.Use(m.Auth.Authenticate)

		anyone := auth.RequireRole(logger)
		customer := auth.RequireRole(logger, domain.RoleUser, domain.RoleAdmin)
		admin := auth.RequireRole(logger, domain.RoleAdmin)
		dispatcher := auth.RequireRole(logger, domain.RoleAdmin, domain.RoleDriver)

		r.Route("/restaurant", func(r chi.Router) {
			rc := m.Restaurant.Controller
			r.With(admin).Post("/createRestaurant", rc.HandleCreate)
			r.With(anyone).Get("/getById/{restaurantId}", rc.HandleGetByID)
			r.With(customer).Get("/getByLocation/location/{location}", rc.HandleGetByLocation)
			r.With(customer).Get("/getByRestaurantName/name/{restaurantName}", rc.HandleGetByName)
			r.With(admin).Put("/updateRestaurantById/{restaurantId}", rc.HandleUpdate)
			r.With(anyone).Get("/getAllRestaurants", rc.HandleGetAll)
			r.With(admin).Delete("/deleteRestaurantById/{restaurantId}", rc.HandleDelete)
			r.With(customer).Put("/giveRating/{restaurantId}/{rating}", rc.HandleGiveRating)
		})

		r.Route("/item", func(r chi.Router) {
			ic := m.Item.Controller
			r.With(admin).Post("/addItem", ic.HandleAddItem)
			r.With(customer).Get("/viewAllitems", ic.HandleViewAll)
			r.With(admin).Put("/updateItem/{itemId}", ic.HandleUpdate)
			r.With(anyone).Get("/viewItemById/{itemId}", ic.HandleViewByID)
			r.With(admin).Delete("/deleteItemById/{itemId}", ic.HandleDelete)
			r.With(anyone).Get("/viewItemByName/{itemName}", ic.HandleViewByName)
			r.With(customer).Get("/getItemsByRestaurantId/{restaurantId}", ic.HandleViewByRestaurantID)
		})

		r.Route("/cart", func(r chi.Router) {
			cc := m.Cart.Controller
			r.With(customer).Post("/addCart", cc.HandleAddCart)
			r.With(admin).Get("/getallcarts", cc.HandleGetAll)
			r.With(customer).Post("/addingitemtocart", cc.HandleAddItem)
			r.With(customer).Put("/deleteItem", cc.HandleDeleteItem)
			r.With(customer).Put("/decreaseQuant", cc.HandleDecreaseQuantity)
			r.With(customer).Put("/increaseQuant", cc.HandleIncreaseQuantity)
			r.With(customer).Delete("/deleteCart/{cartId}", cc.HandleDeleteCart)
			r.With(admin).Get("/{username}", cc.HandleGetByUsername)
		})

		r.Route("/order", func(r chi.Router) {
			oc := m.Order.Controller
			r.With(customer).Post("/makeOrder/{cartId}", oc.PlaceOrder)
			r.With(customer).Delete("/cancelOrder/{id}", oc.CancelOrder)
			r.With(customer).Put("/updateAnOrderSuccess/{id}", oc.MarkSuccessful)
			r.With(anyone).Get("/viewOrderById/{id}", oc.GetOrder)
			r.With(customer).Get("/viewOrderByName/{email}", oc.GetOrdersByEmail)
			r.With(admin).Get("/viewAllOrders", oc.GetAllOrders)
			r.With(anyone).Put("/updateFailedPayment/{id}", oc.PaymentFailed)
		})

		r.Route("/payment", func(r chi.Router) {
			pc := m.Payment.Controller
			r.With(customer).Get("/getByTransactionId/{orderId}", pc.GetByOrderID)
			r.With(admin).Get("/getAllPayment", pc.GetAll)
			r.With(anyone).Put("/updatePaymentFailed/{id}", m.Order.Controller.PaymentFailed)
			r.With(anyone).Put("/updatePaymentSuccess/{id}", pc.PaymentSuccess)
			r.With(admin).Delete("/deletePayment/{id}", pc.Delete)
		})

		r.Route("/delivery", func(r chi.Router) {
			dc := m.Delivery.Controller
			r.With(admin).Post("/createDriver", dc.CreatePartner)
			r.With(dispatcher).Get("/updateStatus/{driverId}", dc.UpdateStatus)
			r.With(admin).Put("/assignDriver/{orderId}", dc.AssignDriver)
			r.With(admin).Get("/viewAllPendingOrders", dc.ViewPendingOrders)
			r.With(admin).Delete("/removeOrder/{orderId}", dc.RemoveOrder)
			r.With(admin).Get("/drivers", dc.GetAllPartners)
		})
	})

	return r
}

func healthHandler(health HealthChecker, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := health.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
			return
		}
		commons.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
