package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/videotube/internal/api"
	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/logging"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/repository/postgres"
	"github.com/dom/videotube/internal/service"
	"github.com/dom/videotube/internal/storage"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.Uploads.TempDir, 0o755); err != nil {
		return err
	}

	// Initialize database
	gormLevel := logger.Warn
	if cfg.Environment == "production" {
		gormLevel = logger.Error
	}
	db, err := postgres.NewConnection(cfg.DatabaseURL, gormLevel)
	if err != nil {
		return err
	}
	log.Info("database connected")

	store, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	repos := postgres.NewRepositories(db)
	m := metrics.New()
	services := service.NewServices(repos, store, m, cfg)

	router, err := api.NewRouter(services, m, cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
	return nil
}
