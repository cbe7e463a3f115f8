// Package config provides configuration management for the editing tools.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// Default values
	DefaultLogLevel     = "info"
	DefaultDataDir      = ".proedit"
	DefaultUndoDepth    = 100
	DefaultAutosaveKeep = 20

	// Environment variable names
	EnvLogLevel     = "PROEDIT_LOG_LEVEL"
	EnvDataDir      = "PROEDIT_DATA_DIR"
	EnvUndoDepth    = "PROEDIT_UNDO_DEPTH"
	EnvAutosaveKeep = "PROEDIT_AUTOSAVE_KEEP"

	// Library filename
	DBFilename = "library.db"
)

// Config defines the application configuration interface
type Config interface {
	LogLevel() string
	DataDir() string
	DBPath() string
	UndoDepth() int
	AutosaveKeep() int
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	logLevel     string
	dataDir      string
	undoDepth    int
	autosaveKeep int
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		logLevel:     DefaultLogLevel,
		dataDir:      defaultDataDir(),
		undoDepth:    DefaultUndoDepth,
		autosaveKeep: DefaultAutosaveKeep,
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if ud := os.Getenv(EnvUndoDepth); ud != "" {
		depth, err := strconv.Atoi(ud)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvUndoDepth, err)
		}
		if depth < 1 {
			return nil, fmt.Errorf("invalid %s: depth must be at least 1", EnvUndoDepth)
		}
		cfg.undoDepth = depth
	}

	if ak := os.Getenv(EnvAutosaveKeep); ak != "" {
		keep, err := strconv.Atoi(ak)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAutosaveKeep, err)
		}
		if keep < 0 {
			return nil, fmt.Errorf("invalid %s: keep count must not be negative", EnvAutosaveKeep)
		}
		cfg.autosaveKeep = keep
	}

	return cfg, nil
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite library file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// UndoDepth returns the maximum number of undoable edits to retain
func (c *EnvConfig) UndoDepth() int {
	return c.undoDepth
}

// AutosaveKeep returns how many autosave snapshots to keep per project
func (c *EnvConfig) AutosaveKeep() int {
	return c.autosaveKeep
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
