// Package main is the entry point for the prayground terrain viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/prayground/internal/app"
	"github.com/Faultbox/prayground/internal/config"
	"github.com/Faultbox/prayground/internal/logger"
)

func main() {
	// Parse CLI flags first
	flags, err := config.ParseFlags()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Console: true,
		JSON:    cfg.Logging.JSON,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Setup(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Log.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Log.Info("viewer closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Log.Info("=== prayground ===")
	logger.Log.Debug("config", zap.Any("config", cfg))

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}
	defer a.Close()

	return a.Run()
}
