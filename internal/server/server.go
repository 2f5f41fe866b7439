// Package server owns the process lifecycle: config, connections,
// listen, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luminabooks/lumina/config"
	"github.com/luminabooks/lumina/internal/kernel"
	"github.com/luminabooks/lumina/pkg/cache"
	"github.com/luminabooks/lumina/pkg/database"
	"github.com/luminabooks/lumina/pkg/logger"
)

// Run boots the API and blocks until SIGINT/SIGTERM, then drains
// in-flight requests before closing the store connections. Redis being
// down is a warning, not a boot failure — the catalog serves uncached.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Close(context.Background()) //nolint:errcheck

	if err := database.EnsureIndexes(ctx); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", "error", err.Error())
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.Build().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
