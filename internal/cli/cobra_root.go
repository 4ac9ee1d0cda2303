package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"practice-log/internal/config"
)

// AppFactory builds the App once flags are parsed. The returned func
// releases the store.
type AppFactory func(ctx context.Context, overrides *config.ConfigOverrides) (*App, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	app     *App
	closer  func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "pl",
		Short: "A command-line sports practice log",
		Long: `Practice Log (pl) records sports practice sessions: pick a day, a
category and a drill, fill in minutes and location, and review your history.

EXAMPLES:
  pl calendar                                   # Show this month
  pl calendar 2024 3 --marks                    # March 2024 with logged days marked
  pl log                                        # Log a session interactively
  pl log --category batting --drill "Batting in nets" --entry 45,Nets
  pl log --date 2024-03-05 --category fitness --exercise "20 pushups" --exercise "5k run"
  pl history --category bowling                 # Newest first, with totals
  pl export format=csv > practice.csv           # Export to CSV file

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file:          PL_CONFIG (default: ~/.pl/config.yaml)
  Store backend:        PL_STORE_BACKEND  sqlite | postgres | graphql | memory
  SQLite:               PL_DB_DIR, PL_DB_FILENAME
  PostgreSQL:           PL_POSTGRES_DSN (password via PGPASSWORD or ~/.pgpass)
  Practice log API:     PL_API_ENDPOINT, PL_API_KEY, PL_API_TOKEN, PL_API_PAGE_SIZE
  Dates:                PL_DATE_FORMAT (stored layout, default 1/2/2006)
  Debug logging:        PL_DEBUG or --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd) {
				return nil
			}
			return root.ensureApp(cmd.Context())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// NewRootCommandWithApp creates a root command around an already built App
func NewRootCommandWithApp(app *App) *RootCommand {
	return NewRootCommand(func(context.Context, *config.ConfigOverrides) (*App, func() error, error) {
		return app, nil, nil
	})
}

// Command exposes the cobra command, e.g. to set args in tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the store afterwards
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.Close()
	return r.cmd.ExecuteContext(ctx)
}

// Close releases the store opened by the factory.
func (r *RootCommand) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer()
	r.closer = nil
	return err
}

// skipsApp reports whether cmd runs without a store, like help and completion.
func skipsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

func (r *RootCommand) ensureApp(ctx context.Context) error {
	if r.app != nil {
		return nil
	}
	if r.factory == nil {
		return fmt.Errorf("configuration not initialized")
	}
	app, closer, err := r.factory(ctx, r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.app, r.closer = app, closer
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Store configuration
	flags.String("backend", "", "Store backend: sqlite, postgres, graphql or memory (overrides PL_STORE_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides PL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides PL_DB_FILENAME)")
	flags.String("postgres-dsn", "", "PostgreSQL connection string (overrides PL_POSTGRES_DSN)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides PL_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides PL_DB_WRITE_TIMEOUT)")

	// Remote API configuration
	flags.String("api-endpoint", "", "Practice log GraphQL endpoint (overrides PL_API_ENDPOINT)")
	flags.String("api-key", "", "Practice log API key (overrides PL_API_KEY)")
	flags.String("api-token", "", "Practice log bearer token (overrides PL_API_TOKEN)")
	flags.Int("page-size", 0, "Records fetched per history page (overrides PL_API_PAGE_SIZE)")

	// Time configuration
	flags.String("date-format", "", "Stored date layout (overrides PL_DATE_FORMAT)")
	flags.String("time-format", "", "Timestamp display layout (overrides PL_TIME_DISPLAY_FORMAT)")

	// Submission and validation configuration
	flags.Int("max-concurrency", 0, "Concurrent creates per submission (overrides PL_SUBMIT_MAX_CONCURRENCY)")
	flags.Int("max-duration", 0, "Maximum minutes per practice log (overrides PL_VALIDATION_MAX_DURATION)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides PL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides PL_APP_VERBOSE)")
}

// overridesFromFlags collects the flags set on the command line
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}
	integer := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}

	o.Backend = str("backend")
	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.PostgresDSN = str("postgres-dsn")
	o.DBQueryTimeout = dur("db-query-timeout")
	o.DBWriteTimeout = dur("db-write-timeout")

	o.Endpoint = str("api-endpoint")
	o.APIKey = str("api-key")
	o.AuthToken = str("api-token")
	o.PageSize = integer("page-size")

	o.DateFormat = str("date-format")
	o.TimeFormat = str("time-format")

	o.MaxConcurrency = integer("max-concurrency")
	o.MaxDuration = integer("max-duration")

	o.Timeout = dur("app-timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	return o
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app != nil && r.app.config != nil {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// run executes handler with the whole command bounded by the app timeout
func (r *RootCommand) run(cmd *cobra.Command, args []string, handler func(context.Context, []string) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	return handler(ctx, args)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var calendarOffset struct {
		prev, next int
		marks      bool
	}
	calendarCmd := &cobra.Command{
		Use:   "calendar [year] [month]",
		Short: "Show a month grid",
		Long: `Show the days of a month, today highlighted.

Months count from 1. With one argument it is the month of this year.

Examples:
  pl calendar              # This month
  pl calendar 12           # December this year
  pl calendar 2024 2       # February 2024
  pl calendar --prev 1     # Last month`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewCalendarCommand(r.app)
			handler.Offset = calendarOffset.next - calendarOffset.prev
			handler.Marks = calendarOffset.marks
			return r.run(cmd, args, handler.Execute)
		},
	}
	calendarCmd.Flags().IntVar(&calendarOffset.prev, "prev", 0, "Go back this many months")
	calendarCmd.Flags().IntVar(&calendarOffset.next, "next", 0, "Go forward this many months")
	calendarCmd.Flags().BoolVar(&calendarOffset.marks, "marks", false, "Mark days that have practice logs")

	var logOpts LogOptions
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a practice session",
		Long: `Log a practice session. Without --category the date, category, drill
and form are asked for interactively.

Drill categories (Batting, Bowling, Fielding) take one --entry "minutes,location"
per drill on the form, in catalog order; use --drill to log a single drill.
Fitness takes up to five --exercise lines.

Examples:
  pl log
  pl log --category batting --drill "Batting in nets" --entry 45,Nets
  pl log --category bowling --entry 20,Club --entry "" --entry 15,Park
  pl log --category fitness --exercise "20 pushups" --notes "felt good"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewLogCommand(r.app)
			handler.Options = logOpts
			// Prompts can outlast the app timeout; submit bounds its own calls.
			return handler.Execute(cmd.Context(), args)
		},
	}
	logCmd.Flags().StringVar(&logOpts.Date, "date", "", "Session date as YYYY-MM-DD (default today)")
	logCmd.Flags().StringVar(&logOpts.Category, "category", "", "Batting, Bowling, Fielding or Fitness")
	logCmd.Flags().StringVar(&logOpts.Drill, "drill", "", "Log a single drill of the category")
	logCmd.Flags().StringArrayVar(&logOpts.Entries, "entry", nil, `Drill entry as "minutes,location" (repeatable)`)
	logCmd.Flags().StringArrayVar(&logOpts.Exercises, "exercise", nil, "Fitness exercise line (repeatable)")
	logCmd.Flags().StringVar(&logOpts.Notes, "notes", "", "Notes copied onto every entry")

	var historyOpts struct{ category, date string }
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List practice logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewHistoryCommand(r.app)
			handler.Category = historyOpts.category
			handler.Date = historyOpts.date
			return r.run(cmd, args, handler.Execute)
		},
	}
	historyCmd.Flags().StringVar(&historyOpts.category, "category", "", "Only this category")
	historyCmd.Flags().StringVar(&historyOpts.date, "date", "", "Only this date, as YYYY-MM-DD")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories and their drills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, NewCategoriesCommand(r.app).Execute)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export format=<csv|yaml>",
		Short: "Export practice logs as CSV or YAML",
		Long: `Export every practice log, newest first.

Supported formats:
  csv  - Comma-separated values format
  yaml - YAML list under practiceLogs, using the API field names

Examples:
  pl export format=csv
  pl export format=yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, NewOutputCommand(r.app).Execute)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one practice log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, NewShowCommand(r.app).Execute)
		},
	}

	var editOpts struct{ date, subCategory, minutes, location, notes string }
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of one practice log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewEditCommand(r.app)
			changed := func(name string, v *string) *string {
				if cmd.Flags().Changed(name) {
					return v
				}
				return nil
			}
			handler.Options = EditOptions{
				Date:        changed("date", &editOpts.date),
				SubCategory: changed("sub-category", &editOpts.subCategory),
				Minutes:     changed("minutes", &editOpts.minutes),
				Location:    changed("location", &editOpts.location),
				Notes:       changed("notes", &editOpts.notes),
			}
			return r.run(cmd, args, handler.Execute)
		},
	}
	editCmd.Flags().StringVar(&editOpts.date, "date", "", "New date as YYYY-MM-DD")
	editCmd.Flags().StringVar(&editOpts.subCategory, "sub-category", "", "New sub-category")
	editCmd.Flags().StringVar(&editOpts.minutes, "minutes", "", "New duration in minutes")
	editCmd.Flags().StringVar(&editOpts.location, "location", "", "New location")
	editCmd.Flags().StringVar(&editOpts.notes, "notes", "", "New notes")

	var deleteYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one practice log",
		Long: `Delete one practice log.

This operation cannot be undone. You will be asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewDeleteCommand(r.app)
			handler.Yes = deleteYes
			// Confirmation may need longer
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*2)
			defer cancel()
			return handler.Execute(ctx, args)
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	r.cmd.AddCommand(
		calendarCmd,
		logCmd,
		historyCmd,
		categoriesCmd,
		exportCmd,
		showCmd,
		editCmd,
		deleteCmd,
	)
}
