package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"distribution-service/internal/analytics"
	"distribution-service/internal/handler"
	"distribution-service/internal/insight"
	mid "distribution-service/internal/middleware"
	"distribution-service/internal/posting"
	"distribution-service/internal/seed"
	"distribution-service/internal/store"
	"distribution-service/pkg/config"
	"distribution-service/pkg/database"
	"distribution-service/pkg/jwtutil"
	"distribution-service/pkg/logger"
	"distribution-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting "+appConfig.ServiceName, appConfig.LogConfig()...)

	// Initialize JWT utility
	if appConfig.JWT.Enabled {
		jwtutil.Initialize(&appConfig.JWT)
		log.Info("JWT verification enabled for /api")
	}

	// Initialize Prometheus metrics
	metrics := prometheus.NewMetrics(appConfig.Metrics.Prefix, promclient.DefaultRegisterer)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Domain services
	st := store.New(db, metrics)
	postingService := posting.NewService(st, metrics)
	aggregator := analytics.NewAggregator(st, metrics)
	generator, err := insight.New(appConfig.AI)
	if err != nil {
		log.Fatal("Failed to initialize insight generator", zap.Error(err))
	}

	// Seed demo data on an empty database
	if appConfig.Seed.DemoData {
		ctx := logger.WithContext(context.Background(), log)
		if err := seed.DemoData(ctx, st, postingService); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	h := handler.New(appConfig.ServiceName, st, postingService, aggregator, generator, metrics)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: appConfig.Server.CORSAllowOrigins,
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware(metrics))

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	// Health check endpoint
	e.GET("/health", h.Health)

	// Business API routes, behind JWT auth when enabled
	api := e.Group("/api")
	if appConfig.JWT.Enabled {
		api.Use(mid.AuthMiddleware(metrics))
	}
	h.RegisterRoutes(api)

	// Start server
	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Error during shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server stopped gracefully")
}
