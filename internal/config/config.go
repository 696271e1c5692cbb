// Package config loads threadcall's settings with viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/threadcall/internal/logger"
)

// EnvPrefix is prepended to every environment variable, e.g. TC_THREADS.
const EnvPrefix = "TC"

// Config holds the application's configuration values.
type Config struct {
	Logging         logger.Config
	Threads         int
	TasksPerThread  int
	TaskDuration    time.Duration
	ShutdownTimeout time.Duration
	MetricsAddr     string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stderr")
	v.SetDefault("LOG_FILE", logger.DefaultLogFile)
	v.SetDefault("THREADS", 10)
	v.SetDefault("TASKS_PER_THREAD", 10)
	v.SetDefault("TASK_DURATION", 100*time.Millisecond)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("METRICS_ADDR", "")
}

// LoadConfig reads configuration from environment variables and an optional
// .env file, applies defaults, and validates the result.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case explicit:
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		case !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist):
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := &Config{
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
		Threads:         v.GetInt("THREADS"),
		TasksPerThread:  v.GetInt("TASKS_PER_THREAD"),
		TaskDuration:    v.GetDuration("TASK_DURATION"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		MetricsAddr:     v.GetString("METRICS_ADDR"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Threads <= 0 {
		return fmt.Errorf("THREADS must be positive, got %d", c.Threads)
	}
	if c.TasksPerThread < 0 {
		return fmt.Errorf("TASKS_PER_THREAD must not be negative, got %d", c.TasksPerThread)
	}
	if c.TaskDuration < 0 {
		return fmt.Errorf("TASK_DURATION must not be negative, got %s", c.TaskDuration)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
