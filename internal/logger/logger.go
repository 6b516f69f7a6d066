// Package logger writes the JSON session log with zerolog. The terminal UI
// owns stdout, so a session log file is the durable record of a run.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger wraps zerolog and implements ports.Logger.
type Logger struct {
	base   zerolog.Logger
	closer io.Closer
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

// OpenFile creates (or appends to) a JSON session log at path.
func OpenFile(path, level string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	l, err := New(Options{Level: level, Writer: file})
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	l.closer = file
	return l, nil
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Fields(fields).Logger(), closer: l.closer}
}

// Debug implements ports.Logger.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	l.write(ctx, l.base.Debug(), msg, fields)
}

// Info implements ports.Logger.
func (l *Logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	l.write(ctx, l.base.Info(), msg, fields)
}

// Warn implements ports.Logger.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	l.write(ctx, l.base.Warn(), msg, fields)
}

// Error implements ports.Logger.
func (l *Logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	l.write(ctx, l.base.Error(), msg, fields)
}

// With implements ports.Logger.
func (l *Logger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return l
	}
	return &Logger{base: l.base.With().Fields(normalize(fields)).Logger(), closer: l.closer}
}

func (l *Logger) write(ctx context.Context, event *zerolog.Event, msg string, fields []interface{}) {
	if event == nil {
		return
	}
	if id := ports.GetCorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	event.Fields(normalize(fields)).Msg(msg)
}

// normalize drops malformed pairs and renders errors as strings.
func normalize(fields []interface{}) []interface{} {
	out := make([]interface{}, 0, len(fields))
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		value := fields[i+1]
		if err, isErr := value.(error); isErr && err != nil {
			value = err.Error()
		}
		out = append(out, key, value)
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
