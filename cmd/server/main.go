package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"foodorder/internal/auth"
	"foodorder/internal/cart"
	"foodorder/internal/commons"
	"foodorder/internal/delivery"
	"foodorder/internal/infrastructure/logger"
	"foodorder/internal/infrastructure/mysql"
	"foodorder/internal/infrastructure/rabbitmq"
	"foodorder/internal/infrastructure/redis"
	"foodorder/internal/item"
	"foodorder/internal/notification"
	"foodorder/internal/order"
	orderrepo "foodorder/internal/order/repository"
	"foodorder/internal/payment"
	"foodorder/internal/restaurant"
	"foodorder/internal/server"
)

func main() {
	cfg, err := commons.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	decimal.MarshalJSONWithoutQuotes = true

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	cache := redis.NewCache(nil, cfg.Redis.TTL, zapLogger)
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("connecting to redis", zap.Error(err))
		}
		defer client.Close()
		cache = redis.NewCache(client, cfg.Redis.TTL, zapLogger)
		zapLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher notification.EventPublisher
	if cfg.AMQP.Enabled {
		p, err := rabbitmq.Dial(cfg.AMQP, zapLogger)
		if err != nil {
			zapLogger.Fatal("connecting to rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
		zapLogger.Info("rabbitmq connected", zap.String("exchange", cfg.AMQP.Exchange))
	}

	var mailer notification.Mailer
	if cfg.Mail.Enabled {
		mailer = notification.NewSMTPMailer(cfg.Mail)
	}

	notifier := notification.NewNotifier(mailer, publisher, zapLogger)

	restaurantModule := restaurant.NewModule(db, cache, cfg, zapLogger)
	itemModule := item.NewModule(db, restaurantModule.Service, cache, zapLogger)
	cartModule := cart.NewModule(db, itemModule.Service, cfg, zapLogger)
	paymentModule := payment.NewModule(db, notifier, cfg, zapLogger)

	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	deliveryModule := delivery.NewModule(db, orderRepo, notifier, cfg, zapLogger)
	orderModule := order.NewModule(db, order.Dependencies{
		Orders:      orderRepo,
		Payments:    paymentModule.Ledger,
		Carts:       cartModule.Service,
		CartStore:   cartModule.Repository,
		Items:       itemModule.Service,
		Restaurants: restaurantModule.Service,
		Delivery:    deliveryModule.Assignments,
		Notifier:    notifier,
	}, cfg, zapLogger)

	authModule := auth.NewModule(db, notifier, cfg, zapLogger)

	router := server.NewRouter(server.Modules{
		Auth:       authModule,
		Restaurant: restaurantModule,
		Item:       itemModule,
		Cart:       cartModule,
		Payment:    paymentModule,
		Delivery:   deliveryModule,
		Order:      orderModule,
	}, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	notifier.Wait()
	zapLogger.Info("server stopped gracefully")
}
