package logging

import (
	"context"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// Multi fans every entry out to several loggers.
type Multi []ports.Logger

// NewMulti drops nil loggers and returns the fan-out.
func NewMulti(loggers ...ports.Logger) Multi {
	out := make(Multi, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

// NewNoOpLogger returns the empty fan-out, which drops every entry.
func NewNoOpLogger() ports.Logger {
	return Multi{}
}

// Debug implements ports.Logger.
func (m Multi) Debug(ctx context.Context, msg string, fields ...interface{}) {
	for _, l := range m {
		l.Debug(ctx, msg, fields...)
	}
}

// Info implements ports.Logger.
func (m Multi) Info(ctx context.Context, msg string, fields ...interface{}) {
	for _, l := range m {
		l.Info(ctx, msg, fields...)
	}
}

// Warn implements ports.Logger.
func (m Multi) Warn(ctx context.Context, msg string, fields ...interface{}) {
	for _, l := range m {
		l.Warn(ctx, msg, fields...)
	}
}

// Error implements ports.Logger.
func (m Multi) Error(ctx context.Context, msg string, fields ...interface{}) {
	for _, l := range m {
		l.Error(ctx, msg, fields...)
	}
}

// With implements ports.Logger.
func (m Multi) With(fields ...interface{}) ports.Logger {
	out := make(Multi, len(m))
	for i, l := range m {
		out[i] = l.With(fields...)
	}
	return out
}
