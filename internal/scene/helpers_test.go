package scene

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/infrastructure/clock"
	"github.com/alexisbeaulieu97/folio/internal/ports"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClock() *clock.Manual {
	return clock.NewManual(testEpoch)
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// fakePointer counts subscriptions and lets tests push moves.
type fakePointer struct {
	mu         sync.Mutex
	fail       error
	subscribes int
	active     map[int]func(ports.Point)
	nextID     int
}

func newFakePointer() *fakePointer {
	return &fakePointer{active: make(map[int]func(ports.Point))}
}

func (p *fakePointer) OnPointerMove(fn func(ports.Point)) (ports.Cancel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribes++
	if p.fail != nil {
		return nil, p.fail
	}
	p.nextID++
	id := p.nextID
	p.active[id] = fn
	return func() {
		p.mu.Lock()
		delete(p.active, id)
		p.mu.Unlock()
	}, nil
}

func (p *fakePointer) Move(x, y float64) {
	p.mu.Lock()
	fns := make([]func(ports.Point), 0, len(p.active))
	for _, fn := range p.active {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ports.Point{X: x, Y: y})
	}
}

func (p *fakePointer) Subscribes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscribes
}

func (p *fakePointer) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

// failingScheduler refuses interval registrations.
type failingScheduler struct {
	*clock.Manual
}

var errNoTimers = errors.New("timers unavailable")

func (failingScheduler) Every(time.Duration, func()) (ports.Cancel, error) {
	return nil, errNoTimers
}

// fakeTheme is a minimal ThemeSource.
type fakeTheme struct {
	mode ColorMode
	subs *listeners[ColorMode]
}

func newFakeTheme(mode ColorMode) *fakeTheme {
	return &fakeTheme{mode: mode, subs: newListeners[ColorMode]()}
}

func (t *fakeTheme) Mode() ColorMode { return t.mode }

func (t *fakeTheme) OnModeChange(fn func(ColorMode)) ports.Cancel { return t.subs.add(fn) }

func (t *fakeTheme) Set(mode ColorMode) {
	t.mode = mode
	t.subs.emit(mode)
}

// fakeLocator maps anchor names to boundaries.
type fakeLocator map[string]Boundary

func (l fakeLocator) Locate(name string) (Boundary, bool) {
	b, ok := l[name]
	return b, ok
}

// recordingPublisher keeps every published event type.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Subscribe(string, ports.EventHandler) (ports.Subscription, error) {
	return ports.SubscriptionFunc(func() {}), nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func (p *recordingPublisher) Count(eventType string) int {
	n := 0
	for _, t := range p.Types() {
		if t == eventType {
			n++
		}
	}
	return n
}

// pageLayout is five contiguous sections starting at the top of the page.
func pageLayout() fakeLocator {
	return fakeLocator{
		"home":       {Top: 0, Bottom: 1000},
		"skills":     {Top: 1000, Bottom: 1800},
		"projects":   {Top: 1800, Bottom: 2600},
		"experience": {Top: 2600, Bottom: 3400},
		"contact":    {Top: 3400, Bottom: 4200},
	}
}
