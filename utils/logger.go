package utils

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level represents logging severity.
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

// ParseLevel converts a level name (case insensitive) into a Level.
func ParseLevel(name string) (Level, error) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Logger is a leveled logger. A nil *Logger discards everything,
// so library code can log without checking whether a logger was set.
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	minLevel Level
	prefix   string
}

// NewLogger creates a new logger writing to out.
func NewLogger(out io.Writer, minLevel Level, prefix string) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{
		mu:       &sync.Mutex{},
		out:      out,
		minLevel: minLevel,
		prefix:   prefix,
	}
}

// WithPrefix creates a sub-logger with an additional prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	if l == nil {
		return nil
	}
	newPrefix := prefix
	if l.prefix != "" {
		newPrefix = l.prefix + "/" + prefix
	}
	return &Logger{
		mu:       l.mu,
		out:      l.out,
		minLevel: l.minLevel,
		prefix:   newPrefix,
	}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || level < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	prefix := ""
	if l.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", l.prefix)
	}

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s %s %s%s\n", timestamp, level.String(), prefix, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Step logs the start of a named step at debug level and returns a function
// logging its duration.
func (l *Logger) Step(name string) func() {
	start := time.Now()
	l.Debug("%s ...", name)
	return func() {
		l.Debug("%s done in %s", name, FormatTime(time.Since(start)))
	}
}
