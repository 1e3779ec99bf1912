package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/handlers"
	"catalog-api/internal/logging"
	"catalog-api/internal/repository"
	"catalog-api/internal/routes"
	"catalog-api/internal/services"
)

func main() {
	// STEP 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		// no configured logger yet
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"port":        cfg.Port,
	}).Info("Configuration loaded")

	// STEP 2: Initialize Database Connection Pool
	dbPool, err := database.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		if err := database.EnsureSchema(context.Background(), dbPool); err != nil {
			logger.WithError(err).Fatal("Failed to apply database schema")
		}
		logger.Info("Database schema is up to date")
	}

	// STEP 3: Initialize Application Layers (Dependency Injection)
	tx := database.NewTransactor(dbPool)

	categoryRepo := repository.NewCategoryRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)

	categoryService := services.NewCategoryService(tx, categoryRepo, productRepo, logger)
	productService := services.NewProductService(tx, productRepo, categoryRepo, logger)

	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)

	// STEP 4: Setup Router and Routes
	router := routes.NewRouter(cfg, logger, categoryHandler, productHandler)

	// STEP 5: Create HTTP Server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// STEP 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return
	}

	logger.Info("Server exited gracefully")
}
