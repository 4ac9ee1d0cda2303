package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"
)

// Store backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendGraphQL  = "graphql"
	BackendMemory   = "memory"
)

// Config holds all configuration options for the practice log application
type Config struct {
	Store       StoreConfig       `yaml:"store"`
	Remote      RemoteConfig      `yaml:"remote"`
	Time        TimeConfig        `yaml:"time"`
	Submission  SubmissionConfig  `yaml:"submission"`
	Validation  ValidationConfig  `yaml:"validation"`
	Application ApplicationConfig `yaml:"application"`
}

// StoreConfig selects and tunes the storage backend
type StoreConfig struct {
	Backend        string        `yaml:"backend" env:"PL_STORE_BACKEND"`
	Dir            string        `yaml:"dir" env:"PL_DB_DIR"`
	Filename       string        `yaml:"filename" env:"PL_DB_FILENAME"`
	PostgresDSN    string        `yaml:"postgres_dsn" env:"PL_POSTGRES_DSN"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"PL_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"PL_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"PL_DB_DIR_PERMISSIONS"`
}

// RemoteConfig points at the managed GraphQL practice log API
type RemoteConfig struct {
	Endpoint  string        `yaml:"endpoint" env:"PL_API_ENDPOINT"`
	APIKey    string        `yaml:"api_key" env:"PL_API_KEY"`
	AuthToken string        `yaml:"auth_token" env:"PL_API_TOKEN"`
	Timeout   time.Duration `yaml:"timeout" env:"PL_API_TIMEOUT"`
	PageSize  int           `yaml:"page_size" env:"PL_API_PAGE_SIZE"`
}

// TimeConfig holds date formatting configuration. DateFormat is the layout
// of the date string stored on each record.
type TimeConfig struct {
	DateFormat    string `yaml:"date_format" env:"PL_DATE_FORMAT"`
	DisplayFormat string `yaml:"display_format" env:"PL_TIME_DISPLAY_FORMAT"`
}

// SubmissionConfig tunes the create fan-out and the logging form
type SubmissionConfig struct {
	MaxConcurrency int `yaml:"max_concurrency" env:"PL_SUBMIT_MAX_CONCURRENCY"`
	FitnessLines   int `yaml:"fitness_lines" env:"PL_FITNESS_LINES"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	// MaxDuration is in minutes.
	MaxDuration          int `yaml:"max_duration" env:"PL_VALIDATION_MAX_DURATION"`
	MaxSubCategoryLength int `yaml:"max_sub_category_length" env:"PL_VALIDATION_SUBCATEGORY_MAX"`
	MaxNotesLength       int `yaml:"max_notes_length" env:"PL_VALIDATION_NOTES_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"PL_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"PL_APP_VERBOSE"`
	LogDir  string        `yaml:"log_dir" env:"PL_LOG_DIR"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".pl")

	return &Config{
		Store: StoreConfig{
			Backend:        BackendSQLite,
			Dir:            defaultDir,
			Filename:       "pl.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Remote: RemoteConfig{
			Timeout:  30 * time.Second,
			PageSize: 100,
		},
		Time: TimeConfig{
			DateFormat:    "1/2/2006",
			DisplayFormat: "2006-01-02 15:04",
		},
		Submission: SubmissionConfig{
			MaxConcurrency: 4,
			FitnessLines:   5,
		},
		Validation: ValidationConfig{
			MaxDuration:          600,
			MaxSubCategoryLength: 200,
			MaxNotesLength:       1000,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			LogDir:  defaultDir,
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Store.Dir, c.Store.Filename)
}

// LoadFromEnvironment applies every PL_* variable named by an env struct
// tag. Values that do not parse leave the current setting in place, and
// DirPermissions is read as octal.
func (c *Config) LoadFromEnvironment() error {
	applyEnv(reflect.ValueOf(c).Elem())
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func applyEnv(v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Struct {
			applyEnv(field)
			continue
		}
		key := t.Field(i).Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			continue
		}
		setField(field, raw)
	}
}

func setField(field reflect.Value, raw string) {
	switch {
	case field.Type() == durationType:
		if d, err := time.ParseDuration(raw); err == nil {
			field.SetInt(int64(d))
		}
	case field.Kind() == reflect.String:
		field.SetString(raw)
	case field.Kind() == reflect.Int:
		if n, err := strconv.Atoi(raw); err == nil {
			field.SetInt(int64(n))
		}
	case field.Kind() == reflect.Uint32:
		if n, err := strconv.ParseUint(raw, 8, 32); err == nil {
			field.SetUint(n)
		}
	case field.Kind() == reflect.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			field.SetBool(b)
		}
	}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.Dir == "" {
			return &ConfigError{Field: "store.dir", Message: "database directory cannot be empty"}
		}
		if c.Store.Filename == "" {
			return &ConfigError{Field: "store.filename", Message: "database filename cannot be empty"}
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return &ConfigError{Field: "store.postgres_dsn", Message: "postgres backend needs a connection string"}
		}
	case BackendGraphQL:
		if c.Remote.Endpoint == "" {
			return &ConfigError{Field: "remote.endpoint", Message: "graphql backend needs an endpoint"}
		}
	case BackendMemory:
	default:
		return &ConfigError{Field: "store.backend", Message: "must be one of sqlite, postgres, graphql, memory"}
	}
	if c.Store.QueryTimeout <= 0 {
		return &ConfigError{Field: "store.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Store.WriteTimeout <= 0 {
		return &ConfigError{Field: "store.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Remote.Timeout <= 0 {
		return &ConfigError{Field: "remote.timeout", Message: "remote timeout must be positive"}
	}
	if c.Remote.PageSize < 1 {
		return &ConfigError{Field: "remote.page_size", Message: "page size must be at least 1"}
	}

	if c.Time.DateFormat == "" {
		return &ConfigError{Field: "time.date_format", Message: "date format cannot be empty"}
	}
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	if c.Submission.MaxConcurrency < 1 {
		return &ConfigError{Field: "submission.max_concurrency", Message: "max concurrency must be at least 1"}
	}
	if c.Submission.FitnessLines < 1 {
		return &ConfigError{Field: "submission.fitness_lines", Message: "fitness form needs at least 1 line"}
	}

	if c.Validation.MaxDuration <= 0 {
		return &ConfigError{Field: "validation.max_duration", Message: "max duration must be positive"}
	}
	if c.Validation.MaxSubCategoryLength < 1 {
		return &ConfigError{Field: "validation.max_sub_category_length", Message: "sub-category limit must be at least 1"}
	}
	if c.Validation.MaxNotesLength < 0 {
		return &ConfigError{Field: "validation.max_notes_length", Message: "notes limit cannot be negative"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
