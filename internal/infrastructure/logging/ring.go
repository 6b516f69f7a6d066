package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

const defaultRingLimit = 500

// Level orders ring entries.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a configured level name to a Level, defaulting to info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Entry is one captured log line.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []interface{}
	ctx     context.Context
}

// String renders the entry as a single logfmt-ish line.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(e.Level.String()[:4]))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	for i := 0; i+1 < len(e.Fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Fields[i], e.Fields[i+1])
	}
	return b.String()
}

// Ring keeps the most recent log entries in memory. The terminal UI owns the
// screen while it runs, so console logging goes here and is shown in the log
// panel, then replayed to stderr on exit.
type Ring struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	now     func() time.Time
}

// NewRing creates a ring with the provided capacity (defaults to 500).
func NewRing(limit int) *Ring {
	if limit <= 0 {
		limit = defaultRingLimit
	}
	return &Ring{limit: limit, entries: make([]Entry, 0, limit), now: time.Now}
}

func (r *Ring) add(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.Time = r.now()
	if len(r.entries) == r.limit {
		copy(r.entries, r.entries[1:])
		r.entries[len(r.entries)-1] = entry
		return
	}
	r.entries = append(r.entries, entry)
}

// Len returns the number of captured entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Tail returns up to n of the newest entries, oldest first.
func (r *Ring) Tail(n int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]Entry, n)
	copy(out, r.entries[len(r.entries)-n:])
	return out
}

// Flush replays entries at or above threshold to delegate, preserving order,
// and empties the ring.
func (r *Ring) Flush(delegate ports.Logger, threshold Level) {
	if delegate == nil {
		return
	}
	r.mu.Lock()
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	r.entries = r.entries[:0]
	r.mu.Unlock()

	for _, entry := range entries {
		if entry.Level < threshold {
			continue
		}
		switch entry.Level {
		case LevelDebug:
			delegate.Debug(entry.ctx, entry.Message, entry.Fields...)
		case LevelWarn:
			delegate.Warn(entry.ctx, entry.Message, entry.Fields...)
		case LevelError:
			delegate.Error(entry.ctx, entry.Message, entry.Fields...)
		default:
			delegate.Info(entry.ctx, entry.Message, entry.Fields...)
		}
	}
}

// RingLogger implements ports.Logger by writing into a Ring.
type RingLogger struct {
	ring   *Ring
	min    Level
	fields []interface{}
}

// NewRingLogger returns a logger that stores entries at or above min.
func NewRingLogger(ring *Ring, min Level) *RingLogger {
	return &RingLogger{ring: ring, min: min}
}

// Debug records a debug message.
func (l *RingLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelDebug, msg, fields)
}

// Info records an info message.
func (l *RingLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelInfo, msg, fields)
}

// Warn records a warning.
func (l *RingLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelWarn, msg, fields)
}

// Error records an error.
func (l *RingLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelError, msg, fields)
}

// With returns a child logger with persistent fields.
func (l *RingLogger) With(fields ...interface{}) ports.Logger {
	return &RingLogger{ring: l.ring, min: l.min, fields: mergeFields(l.fields, fields)}
}

func (l *RingLogger) log(ctx context.Context, level Level, msg string, fields []interface{}) {
	if l == nil || l.ring == nil || level < l.min {
		return
	}
	l.ring.add(Entry{
		Level:   level,
		Message: msg,
		Fields:  mergeFields(l.fields, fields),
		ctx:     ctx,
	})
}

var _ ports.Logger = (*RingLogger)(nil)
