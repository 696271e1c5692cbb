// Package app assembles threadcall's components and runs the scenarios the
// CLI exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/threadcall/internal/config"
	"github.com/sevigo/threadcall/internal/metrics"
	"github.com/sevigo/threadcall/internal/server"
)

// App holds the main application components.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.LoopMetrics
	server  *server.Server
}

// NewApp creates an App. srv may be nil when no metrics address is configured.
func NewApp(cfg *config.Config, logger *slog.Logger, m *metrics.LoopMetrics, srv *server.Server) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		server:  srv,
	}
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config { return a.cfg }

// Metrics returns the observer attached to every thread the app creates.
func (a *App) Metrics() *metrics.LoopMetrics { return a.metrics }

// Start starts the metrics server, if one is configured.
func (a *App) Start() error {
	if a.server == nil {
		return nil
	}
	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start metrics server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the metrics server.
func (a *App) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	if err := a.server.Stop(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("error during metrics server shutdown", "error", err)
		return fmt.Errorf("failed to stop metrics server: %w", err)
	}
	return nil
}
