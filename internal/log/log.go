// Package log provides structured, category-tagged logging for enrol.
// The TUI logs to a file (enabled via --debug or ENROL_DEBUG) because stdout
// belongs to Bubble Tea; the server logs to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatWizard  Category = "wizard"  // Form state and step transitions
	CatSubmit  Category = "submit"  // Submission to the persistence collaborator
	CatDB      Category = "db"      // Database operations
	CatHTTP    Category = "http"    // Persistence service requests
	CatConfig  Category = "config"  // Configuration loading/saving
	CatCatalog Category = "catalog" // Catalog loading and hot reload
	CatUI      Category = "ui"      // UI component updates
	CatCache   Category = "cache"   // Cache hits and misses
)

// Logger writes one line per entry.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Init opens (or creates) path in append mode and installs it as the global
// logger. Returns a cleanup function that closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(&Logger{closer: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// InitWithTeaLog uses tea.LogToFile, which also routes Bubble Tea's own
// diagnostics into the same file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	install(&Logger{closer: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// InitWriter installs a logger writing to w at the given minimum level.
func InitWriter(w io.Writer, minLevel Level) {
	install(&Logger{writer: w, enabled: true, minLevel: minLevel})
}

func install(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields...) }

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields...) }

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	// 2026-10-14T10:45:00 [ERROR] [submit] message key=value key2=value2
	entry := fmt.Sprintf("%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	_, _ = io.WriteString(l.writer, entry+"\n")
}
