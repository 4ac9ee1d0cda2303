package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"practice-log/internal/api"
	"practice-log/internal/config"
	"practice-log/internal/repository"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// flagDateLayout is the layout of dates typed on the command line.
const flagDateLayout = "2006-01-02"

// App holds what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	prompter    Prompter
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         os.Stdout,
		prompter:    NewHuhPrompter(),
	}
}

// NewAppWithStore wires a BusinessAPI over store
func NewAppWithStore(store repository.Store, cfg *config.Config) *App {
	return NewApp(api.NewBusinessAPI(store, cfg), cfg)
}

// WithOutput redirects command output, e.g. to a buffer in tests.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithPrompter replaces the interactive prompter.
func (a *App) WithPrompter(p Prompter) *App {
	a.prompter = p
	return a
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// parseFlagDate parses a YYYY-MM-DD flag value in local time.
func parseFlagDate(s string) (time.Time, error) {
	return time.ParseInLocation(flagDateLayout, s, time.Local)
}

// withTimeout bounds a store call by the configured application timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.Application.Timeout)
}
