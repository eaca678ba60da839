/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/primed/errors"
)

// Environment variables read by Load
const (
	EnvCyclePolicy = "PRIMED_CYCLE_POLICY"
	EnvMaxDepth    = "PRIMED_MAX_DEPTH"
	EnvLogLevel    = "PRIMED_LOG_LEVEL"
	EnvSchema      = "PRIMED_SCHEMA"
)

// Config holds engine settings read from the environment
type Config struct {
	// CyclePolicy is "strict" or "lenient". Empty means strict.
	CyclePolicy string
	// MaxDepth bounds nesting; 0 disables the limit.
	MaxDepth int
	// LogLevel is a zap level name, or "none"/"off" to discard logs.
	LogLevel string
	// SchemaPath names a YAML schema file to load at startup.
	SchemaPath string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		CyclePolicy: "strict",
		LogLevel:    "none",
	}
}

// Load reads the given dotenv files, in order, and then the process
// environment. Later files override earlier ones and the environment overrides
// all files. Missing files are errors; pass no files to read the environment only.
// The process environment itself is never modified.
func Load(files ...string) (Config, error) {
	values := make(map[string]string)
	for _, file := range files {
		env, err := godotenv.Read(file)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range env {
			values[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	cfg := Default()
	if v, ok := lookup(EnvCyclePolicy); ok {
		cfg.CyclePolicy = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMaxDepth); ok && strings.TrimSpace(v) != "" {
		depth, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, errors.NewValidationError(EnvMaxDepth, fmt.Sprintf("not an integer: %q", v))
		}
		cfg.MaxDepth = depth
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSchema); ok {
		cfg.SchemaPath = strings.TrimSpace(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c Config) Validate() error {
	switch strings.ToLower(c.CyclePolicy) {
	case "", "strict", "lenient":
	default:
		return errors.NewValidationError(EnvCyclePolicy, fmt.Sprintf("must be strict or lenient, got %q", c.CyclePolicy))
	}

	if c.MaxDepth < 0 {
		return errors.NewValidationError(EnvMaxDepth, "must not be negative")
	}

	if !c.quiet() {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return errors.NewValidationError(EnvLogLevel, err.Error())
		}
	}
	return nil
}

// Logger builds a production zap logger at the configured level. Empty,
// "none" and "off" give a no-op logger.
func (c Config) Logger() (*zap.Logger, error) {
	if c.quiet() {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.NewValidationError(EnvLogLevel, err.Error())
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func (c Config) quiet() bool {
	switch strings.ToLower(c.LogLevel) {
	case "", "none", "off":
		return true
	}
	return false
}
