package events

import (
	"context"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

// severity picks the log level for an event type. Unlisted types log at debug.
var severity = map[string]string{
	ports.EventBackgroundMounted:  "info",
	ports.EventBackgroundDegraded: "warn",
	ports.EventTierChanged:        "info",
	ports.EventColorModeChanged:   "info",
}

// LoggingPublisher dispatches domain events synchronously and writes each one
// as a structured log entry.
type LoggingPublisher struct {
	logger ports.Logger

	mu     sync.RWMutex
	subs   map[string][]subscriptionEntry
	counts map[string]int
	nextID int
}

type subscriptionEntry struct {
	id      int
	handler ports.EventHandler
}

// NewLoggingPublisher creates an event publisher that logs through logger.
func NewLoggingPublisher(logger ports.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
		counts: make(map[string]int),
	}
}

// Publish logs the event and invokes every matching handler in registration
// order. Handler errors are logged and do not stop delivery.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}
	eventType := event.EventType()

	p.mu.Lock()
	p.counts[eventType]++
	handlers := make([]subscriptionEntry, 0, len(p.subs[eventType])+len(p.subs[AllEvents]))
	handlers = append(handlers, p.subs[eventType]...)
	handlers = append(handlers, p.subs[AllEvents]...)
	p.mu.Unlock()

	p.log(ctx, eventType, payloadFields(event))

	for _, entry := range handlers {
		if err := entry.handler(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", eventType, "error", err)
		}
	}
	return nil
}

// Subscribe registers a handler for eventType, or for every event when
// eventType is AllEvents.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return ports.SubscriptionFunc(nil), nil
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	var once sync.Once
	return ports.SubscriptionFunc(func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[eventType] = append(handlers[:i:i], handlers[i+1:]...)
					break
				}
			}
		})
	}), nil
}

// Counts returns how many events of each type were published.
func (p *LoggingPublisher) Counts() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]int, len(p.counts))
	for k, v := range p.counts {
		out[k] = v
	}
	return out
}

func (p *LoggingPublisher) log(ctx context.Context, eventType string, fields []interface{}) {
	if p.logger == nil {
		return
	}
	fields = append([]interface{}{"event_type", eventType}, fields...)
	switch severity[eventType] {
	case "warn":
		p.logger.Warn(ctx, "domain event", fields...)
	case "info":
		p.logger.Info(ctx, "domain event", fields...)
	default:
		p.logger.Debug(ctx, "domain event", fields...)
	}
}

func payloadFields(event ports.DomainEvent) []interface{} {
	switch payload := event.Payload().(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fields := make([]interface{}, 0, len(keys)*2)
		for _, key := range keys {
			fields = append(fields, key, payload[key])
		}
		return fields
	case nil:
		return nil
	default:
		return []interface{}{"payload", payload}
	}
}

var _ ports.EventPublisher = (*LoggingPublisher)(nil)
