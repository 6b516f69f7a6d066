package logging

import (
	"context"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// WithCorrelationID stores the provided correlation identifier inside the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return ports.WithCorrelationID(ctx, id)
}

// GetCorrelationID retrieves the correlation identifier from the context.
func GetCorrelationID(ctx context.Context) string {
	return ports.GetCorrelationID(ctx)
}

// NewSessionContext returns ctx carrying a freshly generated correlation ID.
// CLI entry points call it once per invocation.
func NewSessionContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
}
