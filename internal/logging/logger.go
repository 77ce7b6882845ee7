// Package logging provides categorized file-based debug logging for
// FrozenBOT. Logs land under <workspace>/.frozenbot/logs with one file per
// category. When debug mode is off (the default), every call is a silent
// no-op, so callers never guard their log statements.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Category identifies the subsystem a log line belongs to.
type Category string

const (
	CategoryBoot      Category = "boot"      // startup, artifact loading
	CategoryNLP       Category = "nlp"       // normalization, lemmas, vectors
	CategoryModel     Category = "model"     // classifier inference
	CategoryDialogue  Category = "dialogue"  // order state machine transitions
	CategoryInventory Category = "inventory" // stock checks and mutations
	CategoryWeather   Category = "weather"   // OpenWeatherMap collaborator
	CategorySession   Category = "session"   // session orchestration
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Config controls whether and how much gets written. It mirrors the logging
// section of the main config file; the duplication keeps this package free
// of an import cycle with internal/config.
type Config struct {
	DebugMode  bool
	Level      string
	Categories map[string]bool // empty means all categories enabled
}

// Logger writes lines for one category.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu       sync.Mutex
	loggers  = make(map[Category]*Logger)
	logsDir  string
	cfg      Config
	enabled  bool
	logLevel int
)

// Initialize sets up the logging directory from config. With DebugMode off
// it does nothing and all loggers stay silent.
func Initialize(workspace string, c Config) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = c
	enabled = c.DebugMode
	logLevel = parseLevel(c.Level)
	if !enabled {
		return nil
	}

	logsDir = filepath.Join(workspace, ".frozenbot", "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}
	return nil
}

// Get returns the logger for a category, creating it on first use. Always
// non-nil; disabled categories return a no-op logger.
func Get(category Category) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	l := &Logger{category: category}
	if enabled && categoryEnabled(category) {
		path := filepath.Join(logsDir, string(category)+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			l.file = file
			l.logger = log.New(file, "", log.LstdFlags|log.Lmicroseconds)
		}
	}
	loggers[category] = l
	return l
}

// Close flushes and closes every open log file and resets the registry.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

func categoryEnabled(category Category) bool {
	if len(cfg.Categories) == 0 {
		return true
	}
	return cfg.Categories[string(category)]
}

func parseLevel(level string) int {
	switch level {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) write(level int, tag, format string, args ...interface{}) {
	if l.logger == nil || level < logLevel {
		return
	}
	l.logger.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(LevelDebug, "DEBUG", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, "INFO", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(LevelWarn, "WARN", format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(LevelError, "ERROR", format, args...)
}
