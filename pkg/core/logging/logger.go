package logging

import (
	"io"
	"os"
	"sync"
	"time"
)

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Logger is a leveled structured logger. Child loggers created with With
// share the parent's output lock.
type Logger struct {
	name      string
	level     Level
	formatter Formatter
	output    io.Writer
	fields    Fields
	mu        *sync.Mutex
	now       func() time.Time
}

// Config holds logger configuration
type Config struct {
	Name   string
	Level  Level
	Format Format
	Output io.Writer
}

// NewWithConfig creates a logger from a Config. A nil Output means stderr.
func NewWithConfig(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		name:      cfg.Name,
		level:     cfg.Level,
		formatter: GetFormatter(cfg.Format),
		output:    out,
		fields:    Fields{},
		mu:        &sync.Mutex{},
		now:       time.Now,
	}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level that is written
func (l *Logger) Level() Level {
	return l.level
}

// IsLevelEnabled reports whether entries at level are written
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level >= l.level
}

// With returns a child logger that adds the given key-value pairs to
// every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	child := *l
	child.fields = make(Fields, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for k, v := range toFields(keysAndValues...) {
		child.fields[k] = v
	}
	return &child
}

// WithLevel returns a copy of the logger with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	child := *l
	child.level = level
	return &child
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log(LevelTrace, msg, keysAndValues)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues)
}

// Info logs an info message
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues)
}

// Error logs an error message
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues)
}

func (l *Logger) log(level Level, msg string, keysAndValues []interface{}) {
	if !l.IsLevelEnabled(level) {
		return
	}

	fields := make(Fields, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for k, v := range toFields(keysAndValues...) {
		fields[k] = v
	}

	entry := &Entry{
		Timestamp: l.now(),
		Level:     level,
		Message:   msg,
		Logger:    l.name,
		Fields:    fields,
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.output.Write(data)
}

// toFields converts key-value pairs to Fields. Non-string keys and a
// trailing key without value are dropped.
func toFields(keysAndValues ...interface{}) Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
