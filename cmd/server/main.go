package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/hero-service/internal/api"
	"github.com/dom/hero-service/internal/config"
	"github.com/dom/hero-service/internal/logger"
	"github.com/dom/hero-service/internal/repository/postgres"
	"github.com/dom/hero-service/internal/service"
	"github.com/dom/hero-service/internal/source"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database; the database container may still be booting.
	db, err := postgres.NewConnectionWithRetry(cfg.DatabaseURL, 30, time.Second, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Select the hero source once at startup: a configured token means the
	// official provider, otherwise the open static dataset.
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	var heroSource source.Source
	if cfg.UseOfficialSource() {
		heroSource = source.NewOfficialSource(cfg.SuperheroAPIURL, cfg.SuperheroAPIToken, httpClient, zapLogger)
	} else {
		heroSource = source.NewDatasetSource(cfg.SuperheroDatasetURL, cfg.DatasetCacheTTL, httpClient, zapLogger)
	}
	zapLogger.Info("hero source selected", zap.String("source", heroSource.Name()))

	// Initialize services
	services := service.NewServices(repos, heroSource, zapLogger)

	// Initialize router
	router := api.NewRouter(services, zapLogger)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
