// Package logging provides categorized file-based debug logging for advent.
// Logs are written to .advent/logs/ with one file per category per day.
// Nothing is written unless debug mode is enabled in the config.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryLocate  Category = "locate"  // Puzzle resolution decisions
	CategoryVCS     Category = "vcs"     // Git queries
	CategorySpec    Category = "spec"    // Spec suite runs
	CategoryRun     Category = "run"     // Real-input execution
	CategorySubmit  Category = "submit"  // Grading service interaction
	CategoryFetch   Category = "fetch"   // Instruction/input fetching
	CategoryHistory Category = "history" // Submission journal
	CategoryWatch   Category = "watch"   // File watcher
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Logger writes to one category's log file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.Mutex
	logsDir   string
	enabled   bool
	logLevel  = LevelInfo
)

// Initialize configures the logging system. Should be called once at
// startup with the repository root and the resolved logging config. A
// no-op when debug mode is off.
func Initialize(repo string, debugMode bool, level string) error {
	enabled = debugMode
	if !enabled {
		return nil
	}

	switch level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}

	logsDir = filepath.Join(repo, ".advent", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	Get(CategoryBoot).Info("logging initialized (level=%s dir=%s)", level, logsDir)
	return nil
}

// Get returns (or creates) a logger for the given category. Returns a
// no-op logger when debug mode is off or the file cannot be opened.
func Get(category Category) *Logger {
	if !enabled || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] warning: could not open %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files. Call at shutdown.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience helpers. No-ops when debug mode is off.

func Boot(format string, args ...interface{})   { Get(CategoryBoot).Info(format, args...) }
func Locate(format string, args ...interface{}) { Get(CategoryLocate).Info(format, args...) }
func VCS(format string, args ...interface{})    { Get(CategoryVCS).Info(format, args...) }
func Spec(format string, args ...interface{})   { Get(CategorySpec).Info(format, args...) }
func Run(format string, args ...interface{})    { Get(CategoryRun).Info(format, args...) }
func Submit(format string, args ...interface{}) { Get(CategorySubmit).Info(format, args...) }
func Fetch(format string, args ...interface{})  { Get(CategoryFetch).Info(format, args...) }

func LocateDebug(format string, args ...interface{}) { Get(CategoryLocate).Debug(format, args...) }
func VCSDebug(format string, args ...interface{})    { Get(CategoryVCS).Debug(format, args...) }
func SpecDebug(format string, args ...interface{})   { Get(CategorySpec).Debug(format, args...) }
func FetchDebug(format string, args ...interface{})  { Get(CategoryFetch).Debug(format, args...) }
func SubmitWarn(format string, args ...interface{})  { Get(CategorySubmit).Warn(format, args...) }
func VCSWarn(format string, args ...interface{})     { Get(CategoryVCS).Warn(format, args...) }
func WatchDebug(format string, args ...interface{})  { Get(CategoryWatch).Debug(format, args...) }
func Watch(format string, args ...interface{})       { Get(CategoryWatch).Info(format, args...) }
func History(format string, args ...interface{})     { Get(CategoryHistory).Info(format, args...) }
