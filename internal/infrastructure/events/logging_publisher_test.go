package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	logginginfra "github.com/alexisbeaulieu97/folio/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/folio/internal/ports"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer, level string) ports.Logger {
	t.Helper()
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     level,
		Format:    "json",
		Layer:     "test",
		Component: "publisher",
	})
	require.NoError(t, err)
	return logger
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	ctx := logginginfra.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, sampleEvent{
		eventType: ports.EventBackgroundMounted,
		payload:   map[string]interface{}{"variant": "animated", "tier": "desktop"},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "domain event", entry["msg"])
	require.Equal(t, ports.EventBackgroundMounted, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "animated", entry["variant"])
}

func TestLoggingPublisherLevels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventParticlesRegenerated}))
	require.Zero(t, buf.Len(), "per-frame events log at debug")

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventBackgroundDegraded, payload: "pointer"}))
	require.True(t, strings.Contains(buf.String(), `"level":"warn"`), buf.String())
	require.True(t, strings.Contains(buf.String(), `"payload":"pointer"`), buf.String())
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "debug"))

	var specific, wildcard int
	sub, err := publisher.Subscribe(ports.EventSectionChanged, func(context.Context, ports.DomainEvent) error {
		specific++
		return errors.New("handler failed")
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(AllEvents, func(context.Context, ports.DomainEvent) error {
		wildcard++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventSectionChanged}))
	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventTierChanged}))
	require.Equal(t, 1, specific)
	require.Equal(t, 2, wildcard)
	require.Contains(t, buf.String(), "event handler failed")

	sub.Unsubscribe()
	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: ports.EventSectionChanged}))
	require.Equal(t, 1, specific)

	require.Equal(t, map[string]int{
		ports.EventSectionChanged: 2,
		ports.EventTierChanged:    1,
	}, publisher.Counts())
}

type sampleEvent struct {
	eventType string
	payload   interface{}
}

func (e sampleEvent) EventType() string    { return e.eventType }
func (e sampleEvent) Payload() interface{} { return e.payload }
