package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/config"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
		{" Testing ", Testing},
	}

	for _, tt := range tests {
		t.Run("should map "+tt.value, func(t *testing.T) {
			t.Setenv("PL_ENV", tt.value)
			assert.Equal(t, tt.want, getEnvironment())
		})
	}
}

func TestAppFactory_TestingUsesMemoryStore(t *testing.T) {
	loader := config.NewLoaderWithPath(filepath.Join(t.TempDir(), "missing.yaml"))

	app, closer, err := NewAppFactory(Testing, loader).Build(context.Background(), nil)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.NoError(t, closer())
}

func TestAppFactory_ProductionOpensSQLite(t *testing.T) {
	dir := t.TempDir()
	loader := config.NewLoaderWithPath(filepath.Join(dir, "missing.yaml"))
	dbDir := filepath.Join(dir, "db")
	logDir := filepath.Join(dir, "logs")
	t.Setenv("PL_LOG_DIR", logDir)

	app, closer, err := NewAppFactory(Production, loader).Build(context.Background(), &config.ConfigOverrides{DBDir: &dbDir})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.FileExists(t, filepath.Join(dbDir, "pl.db"))
	assert.NoError(t, closer())
}

func TestAppFactory_InvalidConfig(t *testing.T) {
	loader := config.NewLoaderWithPath(filepath.Join(t.TempDir(), "missing.yaml"))
	backend := "graphql"

	_, _, err := NewAppFactory(Production, loader).Build(context.Background(), &config.ConfigOverrides{Backend: &backend})

	assert.Error(t, err)
}
