// Package logging provides structured logging for viewsync.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/viewsync/internal/config"
)

// Config holds logging configuration.
type Config struct {
	// Enabled determines whether logging is active.
	Enabled bool
	// Level is the minimum log level to record.
	Level string
	// MaxFiles is the maximum number of log files kept in the log directory.
	MaxFiles int
	// Dir overrides the log directory. Empty means LogDir().
	Dir string
	// PID is the process ID.
	PID int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Level:    "info",
		MaxFiles: 10,
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig creates a logging Config from the global configuration.
// The debug flag forces the debug level.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", "info")
	cfg.MaxFiles = config.GetInt("logging_max_files", 10)
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	}
	return cfg
}

// LogDir returns {state_dir}/logs, creating it if needed.
func LogDir() (string, error) {
	logDir := filepath.Join(config.Get("state_dir", os.TempDir()), "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return "", err
	}
	return logDir, nil
}
