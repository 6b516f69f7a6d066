package scene

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// DefaultOverrideWindow is how long a navigation click keeps the highlight
// against conflicting scroll reports.
const DefaultOverrideWindow = time.Second

// NavState is the highlighter's state.
type NavState int

const (
	NavIdle NavState = iota
	NavUserOverride
	NavScrollConfirmed
)

// String returns the state name.
func (s NavState) String() string {
	switch s {
	case NavUserOverride:
		return "user_override"
	case NavScrollConfirmed:
		return "scroll_confirmed"
	default:
		return "idle"
	}
}

// NavigationOptions configures a NavigationHighlighter.
type NavigationOptions struct {
	OverrideWindow time.Duration
	Scheduler      ports.Scheduler
	Logger         ports.Logger
	Publisher      ports.EventPublisher
}

// NavigationHighlighter decides which navigation entry is highlighted. A
// click wins optimistically until scrolling confirms it or the override
// window expires. On expiry the last scroll report takes over.
type NavigationHighlighter struct {
	window    time.Duration
	now       func() time.Time
	scheduler ports.Scheduler
	logger    ports.Logger
	publisher ports.EventPublisher

	mu        sync.Mutex
	state     NavState
	section   Section
	deadline  time.Time
	scrolled  bool
	reported  Section
	hasReport bool
	clicks    uint64
	expiry    ports.Cancel
	detach    []ports.Cancel
	closed    bool

	listeners *listeners[Section]
}

// NewNavigationHighlighter creates an idle highlighter.
func NewNavigationHighlighter(opts NavigationOptions) *NavigationHighlighter {
	window := opts.OverrideWindow
	if window <= 0 {
		window = DefaultOverrideWindow
	}
	now := time.Now
	if opts.Scheduler != nil {
		now = opts.Scheduler.Now
	}
	return &NavigationHighlighter{
		window:    window,
		now:       now,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		publisher: opts.Publisher,
		section:   SectionHome,
		listeners: newListeners[Section](),
	}
}

// Attach feeds the detector's active-section reports into Observe. The
// detector's current section counts as the latest report.
func (n *NavigationHighlighter) Attach(detector *SectionDetector) ports.Cancel {
	n.mu.Lock()
	n.reported, n.hasReport = detector.Active(), true
	n.mu.Unlock()

	cancel := detector.Subscribe(n.Observe)
	n.mu.Lock()
	n.detach = append(n.detach, cancel)
	n.mu.Unlock()
	return cancel
}

// State returns the current state.
func (n *NavigationHighlighter) State() NavState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Current returns the highlighted section.
func (n *NavigationHighlighter) Current() Section {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.section
}

// Deadline returns when the active override stops shielding the highlight.
// It is zero outside of NavUserOverride.
func (n *NavigationHighlighter) Deadline() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != NavUserOverride {
		return time.Time{}
	}
	return n.deadline
}

// Click highlights section immediately and arms the override expiry.
func (n *NavigationHighlighter) Click(section Section) {
	if !section.Valid() {
		return
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	previous := n.section
	n.state = NavUserOverride
	n.section = section
	n.deadline = n.now().Add(n.window)
	n.clicks++
	deadline, click := n.deadline, n.clicks
	stale := n.expiry
	n.expiry = nil
	n.mu.Unlock()

	if stale != nil {
		stale()
	}
	n.armExpiry(click)

	ctx := context.Background()
	if n.logger != nil {
		n.logger.Debug(ctx, "navigation override", "section", section.String(), "deadline", deadline)
	}
	publish(ctx, n.publisher, ports.EventNavigationOverride, map[string]interface{}{
		"section": section.String(),
		"from":    previous.String(),
	})
	if previous != section {
		n.listeners.emit(section)
	}
}

func (n *NavigationHighlighter) armExpiry(click uint64) {
	if n.scheduler == nil {
		return
	}
	cancel, err := n.scheduler.After(n.window, func() { n.expire(click) })
	if err != nil {
		if n.logger != nil {
			n.logger.Warn(context.Background(), "navigation override expiry unavailable", "error", err)
		}
		return
	}
	n.mu.Lock()
	if n.clicks != click || n.closed || n.state != NavUserOverride {
		n.mu.Unlock()
		cancel()
		return
	}
	n.expiry = cancel
	n.mu.Unlock()
}

// expire hands the highlight to the latest scroll report once the override
// window of click has passed.
func (n *NavigationHighlighter) expire(click uint64) {
	n.mu.Lock()
	if n.clicks != click {
		n.mu.Unlock()
		return
	}
	n.expiry = nil
	if n.closed || n.state != NavUserOverride || !n.hasReport {
		n.mu.Unlock()
		return
	}
	reported := n.reported
	n.mu.Unlock()

	n.apply(reported, true)
}

// Observe applies a scroll-detected active section.
func (n *NavigationHighlighter) Observe(section Section) {
	n.apply(section, false)
}

func (n *NavigationHighlighter) apply(section Section, expired bool) {
	if !section.Valid() {
		return
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.reported, n.hasReport = section, true
	if !expired && n.state == NavUserOverride && section != n.section && n.now().Before(n.deadline) {
		n.mu.Unlock()
		return
	}
	previous, previousState := n.section, n.state
	n.state = NavScrollConfirmed
	n.section = section
	n.deadline = time.Time{}
	stale := n.expiry
	n.expiry = nil
	n.mu.Unlock()

	if stale != nil {
		stale()
	}
	if previous == section && previousState == NavScrollConfirmed {
		return
	}
	ctx := context.Background()
	if n.logger != nil {
		n.logger.Debug(ctx, "navigation confirmed", "section", section.String(), "from_state", previousState.String())
	}
	publish(ctx, n.publisher, ports.EventNavigationConfirmed, map[string]interface{}{
		"section": section.String(),
		"from":    previous.String(),
	})
	if previous != section {
		n.listeners.emit(section)
	}
}

// ObserveScroll records whether the page is scrolled away from the top.
func (n *NavigationHighlighter) ObserveScroll(scrollY float64) {
	n.mu.Lock()
	n.scrolled = scrollY > 0
	n.mu.Unlock()
}

// Scrolled reports whether the page is scrolled away from the top.
func (n *NavigationHighlighter) Scrolled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scrolled
}

// Subscribe registers fn for highlight changes.
func (n *NavigationHighlighter) Subscribe(fn func(Section)) ports.Cancel {
	return n.listeners.add(fn)
}

// Close cancels the pending expiry, detaches from every detector and drops
// subscribers. It is safe to call more than once.
func (n *NavigationHighlighter) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	expiry, detach := n.expiry, n.detach
	n.expiry, n.detach = nil, nil
	n.mu.Unlock()

	if expiry != nil {
		expiry()
	}
	for _, cancel := range detach {
		cancel()
	}
	n.listeners.clear()
}
