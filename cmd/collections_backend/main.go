package main

//go:generate swag init -g cmd/collections_backend/main.go -o cmd/docs -d ../../

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/collections_app/internal/core/ports/services"
	coreservices "github.com/SscSPs/collections_app/internal/core/services"
	"github.com/SscSPs/collections_app/internal/handlers"
	"github.com/SscSPs/collections_app/internal/platform/config"
	"github.com/SscSPs/collections_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/collections_app/pkg/database"
	"github.com/SscSPs/collections_app/pkg/rabbitmq"
	"github.com/gin-gonic/gin"
)

// @title Collections Backend API
// @version 1.0
// @description Back-office API for collection agencies, clients, consumers and accounts, with CSV reconciliation imports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher := newEventPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	serviceContainer := coreservices.NewServiceContainer(pgsql.NewRepositoryProvider(dbPool), publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := handlers.NewRouter(cfg, serviceContainer, dbPool, logger)
	if err != nil {
		logger.Error("Failed to set up routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newEventPublisher connects to RabbitMQ when configured. Import events are best-effort,
// so a broker that cannot be reached at startup only disables publishing.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) services.EventPublisher {
	if cfg.AMQPURL == "" {
		return rabbitmq.NoopPublisher{}
	}
	producer, err := rabbitmq.NewEventProducer(cfg.AMQPURL, cfg.EventsExchange)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, import events will not be published", slog.String("error", err.Error()))
		return rabbitmq.NoopPublisher{}
	}
	logger.Info("RabbitMQ event producer ready", slog.String("exchange", cfg.EventsExchange))
	return producer
}
