package scene

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// Variant identifies which background implementation is mounted.
type Variant int

const (
	VariantStatic Variant = iota
	VariantAnimated
)

// String returns the variant name.
func (v Variant) String() string {
	if v == VariantAnimated {
		return "animated"
	}
	return "static"
}

// MarshalText encodes the variant name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Frame is everything a renderer needs to paint the background once.
type Frame struct {
	Variant   Variant
	Section   Section
	Mode      ColorMode
	Palette   Palette
	Viewport  Viewport
	Blobs     []Blob
	Particles *Snapshot
	Glow      *ports.Point
	Elapsed   time.Duration
}

// Background is the mounted page background.
type Background interface {
	Variant() Variant
	Frame() Frame
	Resize(viewport Viewport)
	Close()
}

// MountOptions carries the shared collaborators a background attaches to.
type MountOptions struct {
	Detector   *SectionDetector
	Theme      ThemeSource
	Classifier *Classifier
	Pointer    ports.PointerSource
	Scheduler  ports.Scheduler
	Viewport   Viewport
	Particles  ParticleOptions
	Spring     SpringParams
	Logger     ports.Logger
	Publisher  ports.EventPublisher
}

// Mount selects the background variant once from the classifier's current
// tier. A failed animated setup degrades to the static variant.
func Mount(opts MountOptions) Background {
	ctx := context.Background()
	tier := TierDesktop
	if opts.Classifier != nil {
		tier = opts.Classifier.Tier()
	}

	var bg Background
	if tier.Animated() {
		animated, err := NewAnimatedBackground(opts)
		if err == nil {
			bg = animated
		} else {
			if opts.Logger != nil {
				opts.Logger.Warn(ctx, "animated background unavailable, using static", "tier", tier.String(), "error", err)
			}
			publish(ctx, opts.Publisher, ports.EventBackgroundDegraded, map[string]interface{}{
				"tier":  tier.String(),
				"error": err.Error(),
			})
		}
	}
	if bg == nil {
		bg = NewStaticBackground(opts)
	}

	if opts.Logger != nil {
		opts.Logger.Info(ctx, "background mounted", "variant", bg.Variant().String(), "tier", tier.String())
	}
	publish(ctx, opts.Publisher, ports.EventBackgroundMounted, map[string]interface{}{
		"variant": bg.Variant().String(),
		"tier":    tier.String(),
	})
	return bg
}

// sceneState follows the shared detector and theme for both variants.
type sceneState struct {
	mu       sync.Mutex
	section  Section
	mode     ColorMode
	viewport Viewport
	cancels  []ports.Cancel
	closed   bool
}

func (s *sceneState) attach(opts MountOptions, onSection func(Section), onMode func(ColorMode)) {
	s.section = SectionHome
	s.mode = ModeDark
	s.viewport = opts.Viewport
	if opts.Detector != nil {
		s.section = opts.Detector.Active()
		s.cancels = append(s.cancels, opts.Detector.Subscribe(onSection))
	}
	if opts.Theme != nil {
		s.mode = opts.Theme.Mode()
		s.cancels = append(s.cancels, opts.Theme.OnModeChange(onMode))
	}
}

func (s *sceneState) detach() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
	return true
}

// StaticBackground paints palette gradients and fixed blobs. It owns no
// timers and no pointer listeners.
type StaticBackground struct {
	state sceneState
}

// NewStaticBackground attaches a static background to the shared detector
// and theme.
func NewStaticBackground(opts MountOptions) *StaticBackground {
	b := &StaticBackground{}
	b.state.attach(opts, b.onSection, b.onMode)
	return b
}

// Variant implements Background.
func (b *StaticBackground) Variant() Variant { return VariantStatic }

// Frame implements Background.
func (b *StaticBackground) Frame() Frame {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	palette := Resolve(b.state.section, b.state.mode)
	return Frame{
		Variant:  VariantStatic,
		Section:  b.state.section,
		Mode:     b.state.mode,
		Palette:  palette,
		Viewport: b.state.viewport,
		Blobs:    StaticBlobs(palette, b.state.viewport),
	}
}

// Resize implements Background.
func (b *StaticBackground) Resize(viewport Viewport) {
	b.state.mu.Lock()
	b.state.viewport = viewport
	b.state.mu.Unlock()
}

// Close implements Background.
func (b *StaticBackground) Close() {
	b.state.detach()
}

func (b *StaticBackground) onSection(section Section) {
	b.state.mu.Lock()
	b.state.section = section
	b.state.mu.Unlock()
}

func (b *StaticBackground) onMode(mode ColorMode) {
	b.state.mu.Lock()
	b.state.mode = mode
	b.state.mu.Unlock()
}

// AnimatedBackground adds the particle field, the pointer glow and drifting
// blobs. Particles are regenerated whenever the section or colour mode
// changes.
type AnimatedBackground struct {
	state     sceneState
	particles *ParticleField
	glow      *PointerGlow
	scheduler ports.Scheduler
	started   time.Time
	logger    ports.Logger
	publisher ports.EventPublisher
}

// NewAnimatedBackground sets up particles and glow. On error every partial
// registration is released.
func NewAnimatedBackground(opts MountOptions) (*AnimatedBackground, error) {
	if opts.Scheduler == nil {
		return nil, setupError("background", nil)
	}
	particleOpts := opts.Particles
	particleOpts.Scheduler = opts.Scheduler
	particleOpts.Logger = opts.Logger
	particleOpts.Publisher = opts.Publisher

	b := &AnimatedBackground{
		particles: NewParticleField(particleOpts),
		glow: NewPointerGlow(PointerOptions{
			Spring:  opts.Spring,
			Initial: ports.Point{X: opts.Viewport.Width / 2, Y: opts.Viewport.Height / 2},
			Logger:  opts.Logger,
		}),
		scheduler: opts.Scheduler,
		started:   opts.Scheduler.Now(),
		logger:    opts.Logger,
		publisher: opts.Publisher,
	}
	b.state.attach(opts, b.onSection, b.onMode)
	b.particles.Regenerate(Resolve(b.state.section, b.state.mode), b.state.viewport)

	if err := b.particles.Start(); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.glow.Start(opts.Pointer, opts.Scheduler); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// Variant implements Background.
func (b *AnimatedBackground) Variant() Variant { return VariantAnimated }

// Particles exposes the owned particle field.
func (b *AnimatedBackground) Particles() *ParticleField { return b.particles }

// Glow exposes the owned pointer glow.
func (b *AnimatedBackground) Glow() *PointerGlow { return b.glow }

// Frame implements Background.
func (b *AnimatedBackground) Frame() Frame {
	b.state.mu.Lock()
	section, mode, viewport := b.state.section, b.state.mode, b.state.viewport
	b.state.mu.Unlock()

	elapsed := b.scheduler.Now().Sub(b.started)
	palette := Resolve(section, mode)
	glow := b.glow.Position()
	return Frame{
		Variant:   VariantAnimated,
		Section:   section,
		Mode:      mode,
		Palette:   palette,
		Viewport:  viewport,
		Blobs:     DriftBlobs(palette, viewport, elapsed),
		Particles: b.particles.Snapshot(),
		Glow:      &glow,
		Elapsed:   elapsed,
	}
}

// Resize implements Background. The particle generation is kept.
func (b *AnimatedBackground) Resize(viewport Viewport) {
	b.state.mu.Lock()
	b.state.viewport = viewport
	b.state.mu.Unlock()
	b.particles.Resize(viewport)
}

// Close implements Background.
func (b *AnimatedBackground) Close() {
	if !b.state.detach() {
		return
	}
	b.particles.Stop()
	b.glow.Stop()
	if b.logger != nil {
		b.logger.Debug(context.Background(), "animated background closed")
	}
}

func (b *AnimatedBackground) onSection(section Section) {
	b.state.mu.Lock()
	if section == b.state.section {
		b.state.mu.Unlock()
		return
	}
	b.state.section = section
	mode, viewport := b.state.mode, b.state.viewport
	b.state.mu.Unlock()
	b.particles.Regenerate(Resolve(section, mode), viewport)
}

func (b *AnimatedBackground) onMode(mode ColorMode) {
	b.state.mu.Lock()
	if mode == b.state.mode {
		b.state.mu.Unlock()
		return
	}
	previous := b.state.mode
	b.state.mode = mode
	section, viewport := b.state.section, b.state.viewport
	b.state.mu.Unlock()

	ctx := context.Background()
	publish(ctx, b.publisher, ports.EventColorModeChanged, map[string]interface{}{
		"from": previous.String(),
		"to":   mode.String(),
	})
	b.particles.Regenerate(Resolve(section, mode), viewport)
}
