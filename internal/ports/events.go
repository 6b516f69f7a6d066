package ports

import "context"

const (
	// EventSectionChanged is emitted when the shared detector moves to another section.
	EventSectionChanged = "section.changed"
	// EventColorModeChanged is emitted when the background observes a theme toggle.
	EventColorModeChanged = "colormode.changed"
	// EventTierChanged is emitted when the debounced device tier changes.
	EventTierChanged = "tier.changed"
	// EventParticlesRegenerated is emitted after a particle generation replaces the previous one.
	EventParticlesRegenerated = "particles.regenerated"
	// EventBackgroundMounted is emitted once a background variant is constructed.
	EventBackgroundMounted = "background.mounted"
	// EventBackgroundDegraded is emitted when the animated variant could not be set up.
	EventBackgroundDegraded = "background.degraded"
	// EventNavigationOverride is emitted when a navigation click takes the highlight.
	EventNavigationOverride = "navigation.override"
	// EventNavigationConfirmed is emitted when scrolling confirms the highlighted section.
	EventNavigationConfirmed = "navigation.confirmed"
)

// DomainEvent represents a significant occurrence within the scene. Events
// carry structured payloads that subscribers can use for logging or UI
// updates.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish returns after all handlers ran. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures should be
// surfaced via returned errors so publishers can log diagnostics and continue
// delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a plain function to Subscription.
type SubscriptionFunc func()

// Unsubscribe implements Subscription.
func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}
