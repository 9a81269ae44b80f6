package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/accounts"
	"github.com/Sanushoffl/thelivostore/internal/analytics"
	"github.com/Sanushoffl/thelivostore/internal/api"
	"github.com/Sanushoffl/thelivostore/internal/auth"
	"github.com/Sanushoffl/thelivostore/internal/cart"
	"github.com/Sanushoffl/thelivostore/internal/circuitbreaker"
	"github.com/Sanushoffl/thelivostore/internal/config"
	"github.com/Sanushoffl/thelivostore/internal/events"
	"github.com/Sanushoffl/thelivostore/internal/gateway"
	"github.com/Sanushoffl/thelivostore/internal/images"
	"github.com/Sanushoffl/thelivostore/internal/orders"
	"github.com/Sanushoffl/thelivostore/internal/products"
	"github.com/Sanushoffl/thelivostore/internal/reviews"
	"github.com/Sanushoffl/thelivostore/internal/store"
	"github.com/Sanushoffl/thelivostore/internal/subcategories"
	"github.com/Sanushoffl/thelivostore/internal/websocket"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db.Disconnect(shutdownCtx)
	}()

	indexCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	err = db.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to create indexes")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	stripeBreaker := circuitbreaker.New(circuitbreaker.Config{Name: "stripe"}, logger)
	razorpayBreaker := circuitbreaker.New(circuitbreaker.Config{Name: "razorpay"}, logger)
	cardGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, cfg.Currency, orders.DeliveryCharge, stripeBreaker, logger)
	upiGateway := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, razorpayBreaker, logger)

	var uploader images.Uploader
	if cfg.ImageStoreURL != "" {
		uploader = images.NewClient(cfg.ImageStoreURL, cfg.ImageStoreKey, logger)
	} else {
		logger.Warn("IMAGE_STORE_URL not set, image uploads disabled")
	}

	var publisher events.Publisher
	if cfg.KafkaBrokers != "" {
		producer, err := events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Kafka producer")
		}
		defer producer.Close()
		publisher = producer
		logger.WithField("brokers", cfg.KafkaBrokers).Info("Order event publishing enabled")
	}

	hub := websocket.NewHub(func(token string) bool {
		claims, err := tokens.Parse(token)
		return err == nil && claims.Scope == auth.ScopeAdmin
	}, logger)
	go hub.Run()

	accountService := accounts.NewService(db, tokens, uploader, cfg.AdminEmail, cfg.AdminPassword, logger)
	cartService := cart.NewService(db, logger)
	orderService := orders.NewService(db, db, cardGateway, upiGateway, publisher, cfg.Currency, logger)
	analyticsService := analytics.NewService(db)
	productService := products.NewService(db, uploader, logger)
	reviewService := reviews.NewService(db, db, logger)
	subCategoryService := subcategories.NewService(db, logger)

	orderHandler := orders.NewHandler(orderService, analyticsService, logger)
	orderHandler.SetLiveFeed(hub)

	router := api.NewRouter(api.Handlers{
		Accounts:      accounts.NewHandler(accountService, logger),
		Cart:          cart.NewHandler(cartService, logger),
		Orders:        orderHandler,
		Products:      products.NewHandler(productService, logger),
		Reviews:       reviews.NewHandler(reviewService, logger),
		SubCategories: subcategories.NewHandler(subCategoryService, logger),
		LiveFeed:      hub.HandleWebSocket,
	}, tokens, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Server exited")
}
