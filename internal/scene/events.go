package scene

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// Event is a scene-level domain event.
type Event struct {
	Type string
	Data map[string]interface{}
}

// EventType implements ports.DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements ports.DomainEvent.
func (e Event) Payload() interface{} { return e.Data }

func publish(ctx context.Context, publisher ports.EventPublisher, eventType string, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, Event{Type: eventType, Data: data})
}

// listeners is a small ordered fan-out used by every component that exposes
// change notifications.
type listeners[T any] struct {
	mu     sync.Mutex
	nextID int
	fns    []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

func newListeners[T any]() *listeners[T] {
	return &listeners[T]{}
}

func (l *listeners[T]) add(fn func(T)) ports.Cancel {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.fns = append(l.fns, listener[T]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, entry := range l.fns {
				if entry.id == id {
					l.fns = append(l.fns[:i:i], l.fns[i+1:]...)
					break
				}
			}
		})
	}
}

func (l *listeners[T]) emit(value T) {
	l.mu.Lock()
	snapshot := append([]listener[T](nil), l.fns...)
	l.mu.Unlock()
	for _, entry := range snapshot {
		entry.fn(value)
	}
}

func (l *listeners[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

func (l *listeners[T]) clear() {
	l.mu.Lock()
	l.fns = nil
	l.mu.Unlock()
}

// Listeners is an ordered change fan-out for sources outside this package.
// Nil handlers are ignored. The zero value is ready to use.
type Listeners[T any] struct {
	set listeners[T]
}

// Add registers fn and returns its cancel func.
func (l *Listeners[T]) Add(fn func(T)) ports.Cancel { return l.set.add(fn) }

// Emit calls every registered handler in registration order.
func (l *Listeners[T]) Emit(value T) { l.set.emit(value) }

// Len returns the number of registered handlers.
func (l *Listeners[T]) Len() int { return l.set.len() }
