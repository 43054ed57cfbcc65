package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/leadlift/leadlift-web/internal/backend"
	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/monitoring"
	"github.com/leadlift/leadlift-web/internal/notifications"
	"github.com/leadlift/leadlift-web/internal/scheduler"
	"github.com/leadlift/leadlift-web/internal/storage"
	"github.com/leadlift/leadlift-web/internal/web"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Infof("Starting Leadlift web (backend %s, guard mode %s)", cfg.BackendURL, cfg.GuardMode)

	api := backend.NewClient(cfg.BackendURL, cfg.SessionCookie, cfg.RequestTimeout)

	var notifier notifications.Notifier
	if cfg.AlertsEnabled() {
		notifier = notifications.NewService(cfg)
	}

	archive, err := newArchive(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize metrics archive: %v", err)
	}

	monitoringService := monitoring.NewService(cfg, api, notifier, archive)

	schedulerService := scheduler.NewService(cfg, monitoringService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: web.NewServer(cfg, api, monitoringService).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func newArchive(cfg *config.Config) (storage.Archive, error) {
	switch {
	case cfg.StorageAccount != "":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		return storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
	case cfg.ArchiveDir != "":
		return storage.NewFileStorage(cfg.ArchiveDir)
	default:
		return nil, nil
	}
}
