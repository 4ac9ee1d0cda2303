package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"practice-log/internal/cli"
	"practice-log/internal/config"
	"practice-log/internal/logging"
)

// Environment selects store and logging defaults for a run.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// AppFactory builds the App once flags are parsed.
type AppFactory struct {
	env    Environment
	loader *config.Loader
}

func NewAppFactory(env Environment, loader *config.Loader) *AppFactory {
	return &AppFactory{env: env, loader: loader}
}

// Build loads configuration, starts logging and opens the store. Testing
// uses the in-memory store; development keeps the database in the
// working directory.
func (f *AppFactory) Build(ctx context.Context, overrides *config.ConfigOverrides) (*cli.App, func() error, error) {
	if overrides == nil {
		overrides = &config.ConfigOverrides{}
	}
	switch f.env {
	case Testing:
		backend := config.BackendMemory
		overrides.Backend = &backend
	case Development:
		if overrides.DBDir == nil {
			dir := "."
			overrides.DBDir = &dir
		}
	}

	cfg, err := f.loader.LoadWithOverrides(overrides)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logDir := cfg.Application.LogDir
	if f.env == Testing {
		logDir = ""
	}
	if err := logging.Init(logging.Config{Debug: cfg.Application.Verbose, Dir: logDir}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Debug("configuration loaded", "env", f.env, "backend", cfg.Store.Backend)

	store, err := config.CreateStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cli.NewAppWithStore(store, cfg), store.Close, nil
}

// getEnvironment reads PL_ENV. Anything unrecognised is production, which
// uses the real store and the user's configured paths.
func getEnvironment() Environment {
	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("PL_ENV")))); env {
	case Development, Testing:
		return env
	default:
		return Production
	}
}
