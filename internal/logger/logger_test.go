package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/threadcall/internal/core"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		debug     bool
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "Text Logger Info Level",
			config: Config{
				Level:  "info",
				Format: "text",
				Output: "stdout",
			},
			checkFunc: func(t *testing.T, output string) {
				assert.Contains(t, output, "level=INFO")
				assert.Contains(t, output, `msg="test message"`)
			},
		},
		{
			name: "JSON Logger Debug Level",
			config: Config{
				Level:  "debug",
				Format: "json",
				Output: "stdout",
			},
			debug: true,
			checkFunc: func(t *testing.T, output string) {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(output), &entry), output)
				assert.Equal(t, "DEBUG", entry["level"])
				assert.Equal(t, "test message", entry["msg"])
			},
		},
		{
			name: "Debug suppressed at warn level",
			config: Config{
				Level:  "warn",
				Format: "text",
			},
			debug: true,
			checkFunc: func(t *testing.T, output string) {
				assert.Empty(t, output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(tt.config, &buf)

			if tt.debug {
				l.Debug("test message")
			} else {
				l.Info("test message")
			}

			tt.checkFunc(t, buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestForThread(t *testing.T) {
	var buf bytes.Buffer
	l := ForThread(NewLogger(Config{Level: "info"}, &buf), "worker_1", core.ThreadID(7))
	l.Info("hello")

	assert.Contains(t, buf.String(), "thread=worker_1")
	assert.Contains(t, buf.String(), "thread_id=7")
}

func TestOpenOutput(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want *os.File
	}{
		{name: "stdout", cfg: Config{Output: "stdout"}, want: os.Stdout},
		{name: "stderr", cfg: Config{Output: "stderr"}, want: os.Stderr},
		{name: "unknown falls back to stderr", cfg: Config{Output: "nowhere"}, want: os.Stderr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, closeFn, err := OpenOutput(tt.cfg)
			require.NoError(t, err)
			defer closeFn()
			assert.Same(t, tt.want, w)
		})
	}
}

func TestOpenOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	w, closeFn, err := OpenOutput(Config{Output: "file", File: path})
	require.NoError(t, err)

	NewLogger(Config{Level: "info", Format: "text"}, w).Info("to file")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestOpenOutput_FileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.log")
	_, _, err := OpenOutput(Config{Output: "file", File: path})
	assert.Error(t, err)
}
