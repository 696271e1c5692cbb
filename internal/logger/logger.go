// Package logger builds the slog loggers used throughout threadcall.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sevigo/threadcall/internal/core"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	File   string `mapstructure:"file"`
}

// DefaultLogFile is used when Output is "file" and no File is configured.
const DefaultLogFile = "threadcall.log"

// NewLogger initializes a new slog logger based on the provided configuration.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog.Level.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ForThread returns a child logger that tags every record with the thread it
// belongs to.
func ForThread(l *slog.Logger, name string, id core.ThreadID) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("thread", name, "thread_id", uint64(id))
}

// Discard returns a logger that drops everything. Tests use it to keep their
// output quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenOutput opens the destination named by cfg.Output: "stdout", "file"
// (cfg.File, or DefaultLogFile) or, for anything else, stderr. The returned
// func closes the log file when one was opened.
func OpenOutput(cfg Config) (io.Writer, func(), error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, func() {}, nil
	case "file":
		path := cfg.File
		if path == "" {
			path = DefaultLogFile
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	default:
		return os.Stderr, func() {}, nil
	}
}
