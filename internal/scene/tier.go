package scene

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// DeviceTier is the coarse classification of the viewport width used to gate
// expensive rendering paths.
type DeviceTier int

const (
	TierDesktop DeviceTier = iota
	TierTablet
	TierMobile
)

const (
	// DefaultTabletMinWidth is the first width classified as tablet.
	DefaultTabletMinWidth = 768
	// DefaultDesktopMinWidth is the first width classified as desktop.
	DefaultDesktopMinWidth = 1024
	// DefaultResizeDebounce is the quiet period before a resize is classified.
	DefaultResizeDebounce = 150 * time.Millisecond
)

// String returns "mobile", "tablet" or "desktop".
func (t DeviceTier) String() string {
	switch t {
	case TierMobile:
		return "mobile"
	case TierTablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t DeviceTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Animated reports whether the tier may run the animated background.
func (t DeviceTier) Animated() bool {
	return t != TierMobile
}

// Breakpoints are the width thresholds in pixels.
type Breakpoints struct {
	TabletMin  float64
	DesktopMin float64
}

// DefaultBreakpoints returns the md/lg breakpoints.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{TabletMin: DefaultTabletMinWidth, DesktopMin: DefaultDesktopMinWidth}
}

// Classify maps a width to a tier. Non-positive widths mean the measurement is
// unavailable and classify as desktop.
func (b Breakpoints) Classify(width float64) DeviceTier {
	switch {
	case width <= 0:
		return TierDesktop
	case width < b.TabletMin:
		return TierMobile
	case width < b.DesktopMin:
		return TierTablet
	default:
		return TierDesktop
	}
}

// Classify maps a width to a tier using the default breakpoints.
func Classify(width float64) DeviceTier {
	return DefaultBreakpoints().Classify(width)
}

// ClassifierOptions configures a Classifier.
type ClassifierOptions struct {
	Breakpoints Breakpoints
	Debounce    time.Duration
	Scheduler   ports.Scheduler
	Logger      ports.Logger
	Publisher   ports.EventPublisher
}

// Classifier tracks the current device tier, re-classifying resizes after a
// debounce window.
type Classifier struct {
	opts ClassifierOptions

	mu        sync.Mutex
	tier      DeviceTier
	width     float64
	measured  bool
	pending   ports.Cancel
	listeners *listeners[DeviceTier]
	closed    bool
}

// NewClassifier creates a classifier reporting desktop until the first
// measurement.
func NewClassifier(opts ClassifierOptions) *Classifier {
	if opts.Breakpoints == (Breakpoints{}) {
		opts.Breakpoints = DefaultBreakpoints()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultResizeDebounce
	}
	return &Classifier{
		opts:      opts,
		tier:      TierDesktop,
		listeners: newListeners[DeviceTier](),
	}
}

// Tier returns the current tier.
func (c *Classifier) Tier() DeviceTier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tier
}

// Width returns the last classified width, or 0 before any measurement.
func (c *Classifier) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// Measured reports whether a real width has been classified yet.
func (c *Classifier) Measured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.measured
}

// Measure classifies width immediately. Hosts call it once at mount.
func (c *Classifier) Measure(width float64) DeviceTier {
	c.mu.Lock()
	if c.closed {
		tier := c.tier
		c.mu.Unlock()
		return tier
	}
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
	c.mu.Unlock()
	c.apply(width)
	return c.Tier()
}

// Observe records a resize. Only the last width of a burst is classified,
// once the debounce window passes without another resize.
func (c *Classifier) Observe(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
	if c.opts.Scheduler == nil {
		c.mu.Unlock()
		c.apply(width)
		c.mu.Lock()
		return
	}
	cancel, err := c.opts.Scheduler.After(c.opts.Debounce, func() { c.apply(width) })
	if err != nil {
		if c.opts.Logger != nil {
			c.opts.Logger.Warn(context.Background(), "resize debounce unavailable", "error", err)
		}
		return
	}
	c.pending = cancel
}

// Subscribe registers fn for tier changes.
func (c *Classifier) Subscribe(fn func(DeviceTier)) ports.Cancel {
	return c.listeners.add(fn)
}

// Close cancels any pending classification and drops subscribers.
func (c *Classifier) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
	c.mu.Unlock()
	c.listeners.clear()
}

func (c *Classifier) apply(width float64) {
	c.mu.Lock()
	c.pending = nil
	if c.closed {
		c.mu.Unlock()
		return
	}
	previous := c.tier
	next := c.opts.Breakpoints.Classify(width)
	if width > 0 {
		c.width = width
		c.measured = true
	}
	c.tier = next
	c.mu.Unlock()

	if next == previous {
		return
	}
	ctx := context.Background()
	if c.opts.Logger != nil {
		c.opts.Logger.Debug(ctx, "device tier changed", "from", previous.String(), "to", next.String(), "width", width)
	}
	publish(ctx, c.opts.Publisher, ports.EventTierChanged, map[string]interface{}{
		"from":  previous.String(),
		"to":    next.String(),
		"width": width,
	})
	c.listeners.emit(next)
}
