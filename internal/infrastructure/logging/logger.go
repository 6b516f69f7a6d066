package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// Options configures the charmbracelet/log adapter.
type Options struct {
	Writer     io.Writer
	Level      string
	Format     string
	TimeFormat string
	Prefix     string
	Layer      string
	Component  string
	Fields     map[string]interface{}
}

// Logger implements ports.Logger using charmbracelet/log.
type Logger struct {
	logger *cblog.Logger
	fields []interface{}
	layer  string
}

// ParseFormat maps a configured format name to a charmbracelet/log formatter.
func ParseFormat(name string) (cblog.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return cblog.TextFormatter, nil
	case "json":
		return cblog.JSONFormatter, nil
	case "logfmt":
		return cblog.LogfmtFormatter, nil
	default:
		return cblog.TextFormatter, fmt.Errorf("unknown log format %q", name)
	}
}

// New creates a Logger adapter with the supplied options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	formatter, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		TimeFormat:      opts.TimeFormat,
		ReportTimestamp: opts.TimeFormat != "",
		Formatter:       formatter,
		Prefix:          opts.Prefix,
		Fields:          sortedFields(opts.Fields),
	})

	layer := opts.Layer
	if layer == "" {
		layer = "infrastructure"
	}
	var fields []interface{}
	if opts.Component != "" {
		fields = []interface{}{"component", opts.Component}
	}

	return &Logger{logger: base, fields: fields, layer: layer}, nil
}

// Debug emits a debug log entry.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.DebugLevel, msg, fields)
}

// Info emits an info log entry.
func (l *Logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.InfoLevel, msg, fields)
}

// Warn emits a warning log entry.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.WarnLevel, msg, fields)
}

// Error emits an error log entry.
func (l *Logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.ErrorLevel, msg, fields)
}

// With derives a new logger with persistent fields.
func (l *Logger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return NewNoOpLogger()
	}
	return &Logger{
		logger: l.logger,
		fields: mergeFields(l.fields, fields),
		layer:  l.layer,
	}
}

// ForLayer derives a logger reporting a different architectural layer.
func (l *Logger) ForLayer(layer string) *Logger {
	return &Logger{logger: l.logger, fields: l.fields, layer: layer}
}

func (l *Logger) log(ctx context.Context, level cblog.Level, msg string, fields []interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	payload := mergeFields(l.fields, fields)
	payload = append(payload, "layer", l.layer)
	if id := ports.GetCorrelationID(ctx); id != "" {
		payload = append(payload, "correlation_id", id)
	}
	l.logger.Log(level, msg, payload...)
}

func sortedFields(input map[string]interface{}) []interface{} {
	if len(input) == 0 {
		return nil
	}
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := make([]interface{}, 0, len(input)*2)
	for _, k := range keys {
		res = append(res, k, input[k])
	}
	return res
}

// mergeFields concatenates key/value lists. Later values replace earlier ones
// with the same key while keeping first-seen order; malformed pairs are
// dropped.
func mergeFields(lists ...[]interface{}) []interface{} {
	index := make(map[string]int)
	var out []interface{}
	for _, list := range lists {
		for i := 0; i+1 < len(list); i += 2 {
			key, ok := list[i].(string)
			if !ok || key == "" {
				continue
			}
			if pos, seen := index[key]; seen {
				out[pos+1] = list[i+1]
				continue
			}
			index[key] = len(out)
			out = append(out, key, list[i+1])
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
