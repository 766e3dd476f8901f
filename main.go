// File: labbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"

	"labbook/config"
	"labbook/cron"
	"labbook/database"
	"labbook/database/repository"
	"labbook/handlers"
	"labbook/middleware"
	"labbook/routes"
	"labbook/services/booking"
	"labbook/services/catalog"
	"labbook/services/patient"
	"labbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	catalogRepo := repository.NewMongoCatalogRepo()
	locationRepo := repository.NewMongoLocationRepo()
	patientRepo := repository.NewMongoPatientRepo()
	orderRepo := repository.NewMongoOrderRepo()

	ctx, cancelIndexes := context.WithTimeout(context.Background(), 10*time.Second)
	if err := patientRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure patient indexes: %v", err)
	}
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure order indexes: %v", err)
	}
	cancelIndexes()

	// services.
	catalogService := &catalog.DefaultCatalogService{Repo: catalogRepo}
	locationDirectory := &catalog.DefaultLocationDirectory{Repo: locationRepo}
	patientService := &patient.DefaultPatientService{Repo: patientRepo, Logger: logger}

	sessionStore := booking.NewRedisSessionStore(utils.GetSessionCacheClient())
	sessionService := &booking.DefaultBookingSessionService{
		Store:            sessionStore,
		Catalog:          catalogService,
		Locations:        locationDirectory,
		Patients:         patientService,
		MerchantID:       config.AppConfig.MerchantID,
		PlatformFeeCents: config.AppConfig.PlatformFeeCents,
		Logger:           logger,
	}

	orderNumbers, err := booking.NewSnowflakeOrderNumbers(config.AppConfig.OrderPrefix, config.AppConfig.OrderNodeID)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize order number generator: %v", err)
	}

	reconcileClient := cron.NewReconcileClient()
	defer reconcileClient.Close()

	confirmationService := &booking.DefaultConfirmationService{
		Store:        sessionStore,
		Payments:     booking.NewStripePaymentHandler(logger),
		Orders:       orderRepo,
		OrderNumbers: orderNumbers,
		Reconciler:   reconcileClient,
		Currency:     "brl",
		Logger:       logger,
	}

	cron.InitReconcileWorker(orderRepo, logger)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(sessionService, confirmationService, orderRepo, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, locationDirectory, logger)
	patientHandler := handlers.NewPatientHandler(patientService, logger)
	orderHandler := handlers.NewOrderHandler(orderRepo, logger)

	handlerBundle := &routes.HandlerBundle{
		Booking: bookingHandler,
		Catalog: catalogHandler,
		Patient: patientHandler,
		Order:   orderHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetSessionCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
