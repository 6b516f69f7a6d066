package scene

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// DefaultDetectionBuffer is the share of the viewport height by which each
// section's detection band leads its boundary.
const DefaultDetectionBuffer = 0.3

// Band is a half-open scroll range [Start, End).
type Band struct {
	Start float64
	End   float64
}

// Contains reports whether scrollY lies inside the band.
func (b Band) Contains(scrollY float64) bool {
	return scrollY >= b.Start && scrollY < b.End
}

// BandStrategy maps a section boundary to the scroll range in which that
// section is active.
type BandStrategy interface {
	Band(boundary Boundary, viewportHeight float64) Band
	Name() string
}

// ThresholdStrategy activates a section once the scroll offset comes within
// Buffer viewport heights of its top, and releases it Buffer viewport heights
// before its bottom.
type ThresholdStrategy struct {
	Buffer float64
}

// Band implements BandStrategy.
func (s ThresholdStrategy) Band(boundary Boundary, viewportHeight float64) Band {
	lead := s.Buffer * viewportHeight
	return Band{Start: boundary.Top - lead, End: boundary.Bottom - lead}
}

// Name implements BandStrategy.
func (s ThresholdStrategy) Name() string { return "threshold" }

// CenterlineStrategy activates the section crossing the exact vertical centre
// of the viewport.
type CenterlineStrategy struct{}

// Band implements BandStrategy.
func (CenterlineStrategy) Band(boundary Boundary, viewportHeight float64) Band {
	return ThresholdStrategy{Buffer: 0.5}.Band(boundary, viewportHeight)
}

// Name implements BandStrategy.
func (CenterlineStrategy) Name() string { return "centerline" }

// DetectorOptions configures a SectionDetector.
type DetectorOptions struct {
	Strategy  BandStrategy
	Initial   Section
	Logger    ports.Logger
	Publisher ports.EventPublisher
}

type registration struct {
	boundary Boundary
	inBand   bool
	entered  uint64
}

// SectionDetector maintains the single active section as the document
// scrolls. One instance is shared by every consumer.
type SectionDetector struct {
	strategy  BandStrategy
	logger    ports.Logger
	publisher ports.EventPublisher

	mu       sync.Mutex
	regs     map[Section]*registration
	active   Section
	seq      uint64
	scrollY  float64
	viewport float64
	closed   bool

	listeners *listeners[Section]
}

// NewSectionDetector creates a detector whose active section starts at
// opts.Initial (home by default).
func NewSectionDetector(opts DetectorOptions) *SectionDetector {
	strategy := opts.Strategy
	if strategy == nil {
		strategy = ThresholdStrategy{Buffer: DefaultDetectionBuffer}
	}
	initial := opts.Initial
	if !initial.Valid() {
		initial = SectionHome
	}
	return &SectionDetector{
		strategy:  strategy,
		logger:    opts.Logger,
		publisher: opts.Publisher,
		regs:      make(map[Section]*registration),
		active:    initial,
		listeners: newListeners[Section](),
	}
}

// Register records or replaces the document boundary of a section.
func (d *SectionDetector) Register(section Section, boundary Boundary) {
	if !section.Valid() || boundary.Bottom <= boundary.Top {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if existing, ok := d.regs[section]; ok {
		existing.boundary = boundary
		return
	}
	d.regs[section] = &registration{boundary: boundary}
}

// Unregister stops observing a section.
func (d *SectionDetector) Unregister(section Section) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.regs, section)
}

// Locate registers every section whose anchor the locator can find. Absent
// anchors are skipped. It returns the number of registered sections.
func (d *SectionDetector) Locate(locator AnchorLocator) int {
	if locator == nil {
		return 0
	}
	found := 0
	for _, section := range Sections() {
		boundary, ok := locator.Locate(section.String())
		if !ok {
			d.Unregister(section)
			continue
		}
		d.Register(section, boundary)
		found++
	}
	return found
}

// Registered returns the number of observed sections.
func (d *SectionDetector) Registered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.regs)
}

// Boundary returns the registered boundary of a section.
func (d *SectionDetector) Boundary(section Section) (Boundary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	reg, ok := d.regs[section]
	if !ok {
		return Boundary{}, false
	}
	return reg.boundary, true
}

// Strategy returns the band strategy in use.
func (d *SectionDetector) Strategy() BandStrategy {
	return d.strategy
}

// Active returns the active section.
func (d *SectionDetector) Active() Section {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// ScrollY returns the last observed scroll offset.
func (d *SectionDetector) ScrollY() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollY
}

// Update recomputes the active section for a scroll offset. Among the
// sections whose band contains scrollY, the one that entered its band most
// recently wins; sections entering within the same update are ordered by
// document position. When no band contains scrollY the previous section stays
// active. It returns the active section after the update.
func (d *SectionDetector) Update(scrollY, viewportHeight float64) Section {
	d.mu.Lock()
	if d.closed {
		active := d.active
		d.mu.Unlock()
		return active
	}
	d.scrollY = scrollY
	d.viewport = viewportHeight

	var (
		winner   Section
		winnerAt uint64
		found    bool
	)
	for _, section := range Sections() {
		reg, ok := d.regs[section]
		if !ok {
			continue
		}
		inside := d.strategy.Band(reg.boundary, viewportHeight).Contains(scrollY)
		if inside && !reg.inBand {
			d.seq++
			reg.entered = d.seq
		}
		reg.inBand = inside
		if inside && (!found || reg.entered > winnerAt) {
			winner, winnerAt, found = section, reg.entered, true
		}
	}

	previous := d.active
	if found {
		d.active = winner
	}
	active := d.active
	d.mu.Unlock()

	if active != previous {
		d.announce(previous, active, scrollY)
	}
	return active
}

// Subscribe registers fn for active-section changes.
func (d *SectionDetector) Subscribe(fn func(Section)) ports.Cancel {
	return d.listeners.add(fn)
}

// Subscribers returns the number of registered change listeners.
func (d *SectionDetector) Subscribers() int {
	return d.listeners.len()
}

// Close releases every boundary observation and subscriber. It is safe to
// call more than once.
func (d *SectionDetector) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.regs = make(map[Section]*registration)
	d.mu.Unlock()
	d.listeners.clear()
}

func (d *SectionDetector) announce(previous, active Section, scrollY float64) {
	ctx := context.Background()
	if d.logger != nil {
		d.logger.Debug(ctx, "active section changed", "from", previous.String(), "to", active.String(), "scroll_y", scrollY)
	}
	publish(ctx, d.publisher, ports.EventSectionChanged, map[string]interface{}{
		"from":     previous.String(),
		"to":       active.String(),
		"scroll_y": scrollY,
	})
	d.listeners.emit(active)
}
