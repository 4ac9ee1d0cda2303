package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how verbosely the application logs.
type Config struct {
	Debug bool
	// Dir holds pl.log; empty disables the file sink.
	Dir string
}

var (
	mu     sync.RWMutex
	logger *log.Logger
)

// DebugEnabled returns true if debug mode is enabled via PL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("PL_DEBUG") != ""
}

// Init replaces the package logger. Warnings and above go to a rotating
// file; debug mode also mirrors everything to stderr.
func Init(cfg Config) error {
	debug := cfg.Debug || DebugEnabled()

	var writers []io.Writer
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "pl.log"),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	if debug {
		writers = append(writers, os.Stderr)
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	SetLogger(log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Level:           level,
		Prefix:          "pl",
	}))
	return nil
}

// SetLogger installs l as the package logger; tests use it to capture output.
func SetLogger(l *log.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}


