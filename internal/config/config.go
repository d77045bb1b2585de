// Package config resolves runtime settings from defaults and the
// environment. Command line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"imgtransform/internal/logger"
	"imgtransform/internal/session"
)

const (
	EnvEngine    = "IMGTRANSFORM_ENGINE"
	EnvLogLevel  = "IMGTRANSFORM_LOG_LEVEL"
	EnvLogFormat = "IMGTRANSFORM_LOG_FORMAT"
	EnvHistory   = "IMGTRANSFORM_HISTORY"
	EnvWorkers   = "IMGTRANSFORM_WORKERS"
	EnvDir       = "IMGTRANSFORM_DIR"
)

type Config struct {
	Engine      string
	LogLevel    string
	LogFormat   string
	HistorySize int
	Workers     int
	StartDir    string
}

func Default() Config {
	return Config{
		Engine:      "native",
		LogLevel:    "info",
		LogFormat:   string(logger.FormatConsole),
		HistorySize: session.DefaultHistorySize,
		Workers:     runtime.NumCPU(),
	}
}

// FromEnv starts from Default and applies environment overrides.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("DEBUG"); ok && v == "1" {
		cfg.LogLevel = "debug"
	}
	if v, ok := lookup(EnvEngine); ok && v != "" {
		cfg.Engine = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvDir); ok {
		cfg.StartDir = v
	}

	var err error
	if cfg.HistorySize, err = intFrom(lookup, EnvHistory, cfg.HistorySize); err != nil {
		return cfg, err
	}
	if cfg.Workers, err = intFrom(lookup, EnvWorkers, cfg.Workers); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func intFrom(lookup func(string) (string, bool), key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return n, nil
}

func (c Config) Validate() error {
	if c.Engine == "" {
		return fmt.Errorf("engine must not be empty")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history size must not be negative, got %d", c.HistorySize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// NewLogger builds the zerolog backed logger described by the config.
func (c Config) NewLogger() (logger.Logger, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(level, format), nil
}
