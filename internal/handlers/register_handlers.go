package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/collections_app/cmd/docs"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/middleware"
	"github.com/SscSPs/collections_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the Gin engine with global middleware and every route registered.
// db may be nil, in which case /health does not check the database.
func NewRouter(cfg *config.Config, services *portssvc.ServiceContainer, db Pinger, logger *slog.Logger) (*gin.Engine, error) {
	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	if err := RegisterRoutes(r, cfg, services, db); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db Pinger,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	health := &healthHandler{db: db}
	r.GET("/health", health.getHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := setupAPIRoutes(r, cfg, services); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIRoutes configures the resource routes behind the optional auth middleware
func setupAPIRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	api := r.Group("/", middleware.AuthMiddleware(cfg.AuthEnabled, cfg.JWTSecret))

	uploadLimiter, err := middleware.NewIPLimiter(cfg.UploadRateLimit)
	if err != nil {
		return err
	}

	registerCollectionAgencyRoutes(api, services.CollectionAgency)
	registerClientRoutes(api, services.Client)
	registerConsumerRoutes(api, services.Consumer)
	registerAccountRoutes(api,
		newAccountHandler(services.Account, services.Import, cfg.MaxUploadBytes),
		middleware.RateLimit(uploadLimiter),
	)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
