// Package logging provides levelled, key/value logging for the playground.
// It wraps the standard log package. Child loggers created with With or
// WithFields share their parent's level and output, so changing either on
// the root affects every logger derived from it.
package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for verbose tracing such as per-block execution.
	LevelDebug Level = iota
	// LevelInfo is for run lifecycle messages.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failures that abort an operation.
	LevelError
)

// String returns the upper-case level name used in log lines.
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
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel converts a config or flag value ("debug", "info", "warn",
// "warning", "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// sink is the state shared by a root logger and its children.
type sink struct {
	mu       sync.RWMutex
	minLevel Level
	output   *log.Logger
}

type field struct {
	key   string
	value any
}

// Logger writes levelled messages with context fields.
type Logger struct {
	sink   *sink
	fields []field
}

var defaultLogger = New()

// New creates a Logger at warn level writing to stderr.
func New() *Logger {
	return &Logger{
		sink: &sink{
			minLevel: LevelWarn,
			output:   log.New(os.Stderr, "", log.LstdFlags),
		},
	}
}

// SetLevel sets the minimum level for this logger and everything derived
// from the same root.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.minLevel = level
}

// SetOutput replaces the output logger.
func (l *Logger) SetOutput(output *log.Logger) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = output
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return level >= l.sink.minLevel
}

// With returns a child logger carrying an extra context field.
func (l *Logger) With(key string, value any) *Logger {
	fields := make([]field, len(l.fields), len(l.fields)+1)
	copy(fields, l.fields)
	return &Logger{sink: l.sink, fields: append(fields, field{key, value})}
}

// WithFields returns a child logger carrying several context fields. They
// are rendered in key order.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]field, len(l.fields), len(l.fields)+len(keys))
	copy(out, l.fields)
	for _, k := range keys {
		out = append(out, field{k, fields[k]})
	}
	return &Logger{sink: l.sink, fields: out}
}

func (l *Logger) log(level Level, msg string, keyVals ...any) {
	l.sink.mu.RLock()
	minLevel := l.sink.minLevel
	output := l.sink.output
	l.sink.mu.RUnlock()

	if level < minLevel {
		return
	}

	var sb strings.Builder
	sb.WriteString(level.String())
	sb.WriteString(": ")
	sb.WriteString(msg)

	// Context fields first, then inline pairs; a later key overrides an
	// earlier one in place.
	all := make([]field, 0, len(l.fields)+len(keyVals)/2)
	all = append(all, l.fields...)
	for i := 0; i+1 < len(keyVals); i += 2 {
		key, ok := keyVals[i].(string)
		if !ok {
			continue
		}
		all = setField(all, key, keyVals[i+1])
	}

	if len(all) > 0 {
		sb.WriteString(" |")
		for _, f := range all {
			sb.WriteString(" ")
			sb.WriteString(f.key)
			sb.WriteString("=")
			sb.WriteString(formatValue(f.value))
		}
	}

	output.Print(sb.String())
}

func setField(fields []field, key string, value any) []field {
	for i := range fields {
		if fields[i].key == key {
			fields[i].value = value
			return fields
		}
	}
	return append(fields, field{key, value})
}

// formatValue quotes strings containing whitespace and errors.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	case fmt.Stringer:
		return formatValue(val.String())
	default:
		return fmt.Sprint(v)
	}
}

func (l *Logger) Debug(msg string, keyVals ...any) { l.log(LevelDebug, msg, keyVals...) }
func (l *Logger) Info(msg string, keyVals ...any)  { l.log(LevelInfo, msg, keyVals...) }
func (l *Logger) Warn(msg string, keyVals ...any)  { l.log(LevelWarn, msg, keyVals...) }
func (l *Logger) Error(msg string, keyVals ...any) { l.log(LevelError, msg, keyVals...) }

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// Package-level functions that use the default logger.

func SetLevel(level Level)                     { defaultLogger.SetLevel(level) }
func SetOutput(output *log.Logger)             { defaultLogger.SetOutput(output) }
func With(key string, value any) *Logger       { return defaultLogger.With(key, value) }
func WithFields(fields map[string]any) *Logger { return defaultLogger.WithFields(fields) }
func Debug(msg string, keyVals ...any)         { defaultLogger.Debug(msg, keyVals...) }
func Info(msg string, keyVals ...any)          { defaultLogger.Info(msg, keyVals...) }
func Warn(msg string, keyVals ...any)          { defaultLogger.Warn(msg, keyVals...) }
func Error(msg string, keyVals ...any)         { defaultLogger.Error(msg, keyVals...) }
