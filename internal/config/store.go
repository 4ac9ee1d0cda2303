package config

import (
	"context"
	"fmt"
	"os"

	"practice-log/internal/repository"
	"practice-log/internal/repository/dbutil"
	"practice-log/internal/repository/graphql"
	"practice-log/internal/repository/memory"
	"practice-log/internal/repository/postgres"
	"practice-log/internal/repository/sqlite"
)

// Timeouts returns the per-statement bounds for SQL stores.
func (c *Config) Timeouts() dbutil.Timeouts {
	return dbutil.Timeouts{Query: c.Store.QueryTimeout, Write: c.Store.WriteTimeout}
}

// CreateStore opens the backend named by Store.Backend.
func CreateStore(ctx context.Context, config *Config) (repository.Store, error) {
	switch config.Store.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(config.Store.Dir, os.FileMode(config.Store.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{Timeouts: config.Timeouts()})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil

	case BackendPostgres:
		store, err := postgres.Open(ctx, config.Store.PostgresDSN, config.Timeouts())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		return store, nil

	case BackendGraphQL:
		client, err := graphql.New(graphql.Options{
			Endpoint:  config.Remote.Endpoint,
			APIKey:    config.Remote.APIKey,
			AuthToken: config.Remote.AuthToken,
			Timeout:   config.Remote.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil

	case BackendMemory:
		return memory.New(), nil
	}
	return nil, &ConfigError{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q", config.Store.Backend)}
}

