package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader layers defaults, the YAML file, PL_* variables and flag overrides.
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a loader reading DefaultConfigPath.
func NewLoader() *Loader {
	return NewLoaderWithPath(DefaultConfigPath())
}

// NewLoaderWithPath creates a loader reading the YAML file at path. An
// empty path skips the file layer.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// DefaultConfigPath is $PL_CONFIG, or ~/.pl/config.yaml.
func DefaultConfigPath() string {
	if p := os.Getenv("PL_CONFIG"); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".pl", "config.yaml")
}

// Load applies the file and environment layers over the defaults. A missing
// file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadFile() error {
	if l.path == "" {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: l.path, Message: fmt.Sprintf("failed to parse config: %v", err)}
	}
	return nil
}

// LoadWithOverrides is Load plus flag values, validated again afterwards.
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}


// ConfigOverrides carries flag values; nil fields were not given.
type ConfigOverrides struct {
	// Store overrides
	Backend        *string
	DBDir          *string
	DBFilename     *string
	PostgresDSN    *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Remote overrides
	Endpoint  *string
	APIKey    *string
	AuthToken *string
	PageSize  *int

	// Time overrides
	DateFormat *string
	TimeFormat *string

	// Submission overrides
	MaxConcurrency *int

	// Validation overrides
	MaxDuration *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

func (l *Loader) applyOverrides(config *Config, o *ConfigOverrides) {
	setString(&config.Store.Backend, o.Backend)
	setString(&config.Store.Dir, o.DBDir)
	setString(&config.Store.Filename, o.DBFilename)
	setString(&config.Store.PostgresDSN, o.PostgresDSN)
	if o.DBQueryTimeout != nil {
		config.Store.QueryTimeout = *o.DBQueryTimeout
	}
	if o.DBWriteTimeout != nil {
		config.Store.WriteTimeout = *o.DBWriteTimeout
	}

	setString(&config.Remote.Endpoint, o.Endpoint)
	setString(&config.Remote.APIKey, o.APIKey)
	setString(&config.Remote.AuthToken, o.AuthToken)
	if o.PageSize != nil {
		config.Remote.PageSize = *o.PageSize
	}

	setString(&config.Time.DateFormat, o.DateFormat)
	setString(&config.Time.DisplayFormat, o.TimeFormat)

	if o.MaxConcurrency != nil {
		config.Submission.MaxConcurrency = *o.MaxConcurrency
	}
	if o.MaxDuration != nil {
		config.Validation.MaxDuration = *o.MaxDuration
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
