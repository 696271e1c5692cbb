// Package wire assembles the application's object graph with google/wire.
package wire

import (
	"io"
	"log/slog"

	"github.com/sevigo/threadcall/internal/config"
	"github.com/sevigo/threadcall/internal/logger"
	"github.com/sevigo/threadcall/internal/metrics"
	"github.com/sevigo/threadcall/internal/server"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "threadcall"

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg logger.Config) (io.Writer, func(), error) {
	return logger.OpenOutput(cfg)
}

func provideSlogLogger(cfg logger.Config, writer io.Writer) *slog.Logger {
	l := logger.NewLogger(cfg, writer)
	slog.SetDefault(l)
	return l
}

func provideMetrics() *metrics.LoopMetrics {
	return metrics.NewLoopMetrics(MetricsNamespace)
}

// provideServer returns nil when no metrics address is configured.
func provideServer(cfg *config.Config, m *metrics.LoopMetrics, l *slog.Logger) *server.Server {
	if cfg.MetricsAddr == "" {
		return nil
	}
	return server.NewServer(cfg.MetricsAddr, m.Handler(), l)
}
