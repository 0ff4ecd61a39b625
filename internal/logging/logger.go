// Package logging wraps charmbracelet/log with a process-wide logger.
//
// Output goes to stderr unless a file is configured: stdout carries the MCP
// stdio protocol and must never receive log lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the global logger instance
	Logger = newLogger(os.Stderr, log.InfoLevel)

	mu      sync.Mutex
	logFile *os.File
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          "cyclesense",
	})
}

// Init configures the global logger. An empty file keeps stderr. Calling
// Init again replaces the previous configuration and closes any log file it
// opened.
func Init(level, file string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	var f *os.File
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	Logger = newLogger(w, lvl)
	return nil
}

// SetOutput points the global logger at w, keeping its level. Tests use it
// to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	Logger = newLogger(w, Logger.GetLevel())
}

// Close closes the log file, if any, and falls back to stderr.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		Logger = newLogger(os.Stderr, Logger.GetLevel())
	}
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return Logger
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	current().Info(msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	current().Debug(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	current().Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	current().Error(msg, keyvals...)
}

// WithPrefix returns a logger with a prefix
func WithPrefix(prefix string) *log.Logger {
	return current().WithPrefix(prefix)
}
