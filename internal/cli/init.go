// Package cli holds the start-up steps shared by cmd/ledger and
// cmd/ledger-watch.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ledger/internal/config"
	"ledger/internal/log"
)

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile(files ...string) {
	_ = godotenv.Load(files...)
}

// SetupLogger builds the process logger at level and installs it as the
// slog default.
func SetupLogger(level, component string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	if component != "" {
		cfg.Component = component
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, err
}

// LoadAndValidateConfig reads the environment and validates the result.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bootstrap runs the shared start-up sequence: .env, config, logger. The
// logger is usable even when the returned error is not nil.
func Bootstrap(component string) (*config.Config, *log.Logger, error) {
	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		logger, _ := SetupLogger("info", component)
		return nil, logger, fmt.Errorf("load config: %w", err)
	}
	logger, err := SetupLogger(cfg.LogLevel, component)
	if err != nil {
		return nil, logger, err
	}
	return cfg, logger, nil
}

// ShutdownContext returns a context cancelled on SIGINT or SIGTERM.
func ShutdownContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			logger.Info("Shutdown signal received", "signal", sig.String(), log.FieldOperation, log.OpShutdown)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
