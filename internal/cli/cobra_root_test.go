package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/config"
)

func TestRootCommand_RunsSubcommands(t *testing.T) {
	app, out, store := setupTestApp(t)
	root := NewRootCommandWithApp(app)

	root.Command().SetArgs([]string{"log", "--category", "Batting", "--drill", "Batting in nets", "--entry", "40,Nets"})
	require.NoError(t, root.Execute(context.Background()))
	assert.Equal(t, 1, store.Len())

	root = NewRootCommandWithApp(app)
	root.Command().SetArgs([]string{"history"})
	require.NoError(t, root.Execute(context.Background()))
	assert.Contains(t, out.String(), "Batting in nets @ Nets")
}

func TestRootCommand_PassesFlagOverrides(t *testing.T) {
	var got *config.ConfigOverrides
	app, _, _ := setupTestApp(t)
	closed := false

	root := NewRootCommand(func(ctx context.Context, o *config.ConfigOverrides) (*App, func() error, error) {
		got = o
		return app, func() error { closed = true; return nil }, nil
	})
	root.Command().SetArgs([]string{"--backend", "memory", "--page-size", "25", "--app-timeout", "5s", "--verbose", "categories"})

	require.NoError(t, root.Execute(context.Background()))

	require.NotNil(t, got)
	require.NotNil(t, got.Backend)
	assert.Equal(t, "memory", *got.Backend)
	require.NotNil(t, got.PageSize)
	assert.Equal(t, 25, *got.PageSize)
	require.NotNil(t, got.Timeout)
	assert.Equal(t, 5*time.Second, *got.Timeout)
	require.NotNil(t, got.Verbose)
	assert.True(t, *got.Verbose)
	assert.Nil(t, got.DBDir)
	assert.Nil(t, got.Endpoint)
	assert.True(t, closed)
}

func TestRootCommand_FactoryError(t *testing.T) {
	root := NewRootCommand(func(context.Context, *config.ConfigOverrides) (*App, func() error, error) {
		return nil, nil, errors.New("no store")
	})
	root.Command().SetArgs([]string{"history"})

	assert.EqualError(t, root.Execute(context.Background()), "no store")
}

func TestRootCommand_HelpSkipsFactory(t *testing.T) {
	called := false
	root := NewRootCommand(func(context.Context, *config.ConfigOverrides) (*App, func() error, error) {
		called = true
		return nil, nil, errors.New("should not be called")
	})
	root.Command().SetArgs([]string{"help"})
	root.Command().SetOut(&nopWriter{})

	require.NoError(t, root.Execute(context.Background()))
	assert.False(t, called)
}

func TestRootCommand_CalendarFlags(t *testing.T) {
	app, out, _ := setupTestApp(t)
	root := NewRootCommandWithApp(app)
	root.Command().SetArgs([]string{"calendar", "2024", "12", "--next", "1"})

	require.NoError(t, root.Execute(context.Background()))
	assert.Contains(t, out.String(), "January 2025")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
