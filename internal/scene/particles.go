package scene

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

const (
	// DefaultParticleCount is the number of particles per generation.
	DefaultParticleCount = 30
	// MinParticleCount and MaxParticleCount bound the configurable count.
	MinParticleCount = 25
	MaxParticleCount = 30
	// DefaultParticleTick is the fixed advancement interval (20 Hz).
	DefaultParticleTick = 50 * time.Millisecond
	// MaxParticleSpeed bounds each velocity component in px per tick.
	MaxParticleSpeed = 0.25
	// MinParticleSize and MaxParticleSize bound the particle diameter in px.
	MinParticleSize = 2.0
	MaxParticleSize = 6.0
)

// Particle is one decorative point.
type Particle struct {
	ID      string  `yaml:"id"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Size    float64 `yaml:"size"`
	VX      float64 `yaml:"vx"`
	VY      float64 `yaml:"vy"`
	Opacity float64 `yaml:"opacity"`
	Color   string  `yaml:"color"`
}

// Snapshot is one immutable state of the particle field. Generation changes
// when the collection is regenerated; Version changes on every tick.
type Snapshot struct {
	Generation uint64
	Version    uint64
	Section    Section
	Mode       ColorMode
	Viewport   Viewport
	particles  []Particle
}

// NewSnapshot wraps a copy of particles in a generation-zero snapshot.
func NewSnapshot(particles []Particle) *Snapshot {
	return &Snapshot{particles: append([]Particle(nil), particles...)}
}

// Len returns the number of particles.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.particles)
}

// At returns a copy of particle i.
func (s *Snapshot) At(i int) Particle {
	return s.particles[i]
}

// Particles returns a copy of every particle.
func (s *Snapshot) Particles() []Particle {
	if s == nil {
		return nil
	}
	return append([]Particle(nil), s.particles...)
}

// Advance returns the snapshot one tick later: every particle moves by its
// velocity and wraps toroidally into [0, width) x [0, height).
func Advance(s *Snapshot) *Snapshot {
	if s == nil {
		return nil
	}
	next := &Snapshot{
		Generation: s.Generation,
		Version:    s.Version + 1,
		Section:    s.Section,
		Mode:       s.Mode,
		Viewport:   s.Viewport,
		particles:  make([]Particle, len(s.particles)),
	}
	for i, p := range s.particles {
		p.X = wrap(p.X+p.VX, s.Viewport.Width)
		p.Y = wrap(p.Y+p.VY, s.Viewport.Height)
		next.particles[i] = p
	}
	return next
}

func wrap(v, bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	m := math.Mod(v, bound)
	if m < 0 {
		m += bound
	}
	if m >= bound {
		m = 0
	}
	return m
}

// OpacityRange returns the [min, max) opacity range for a colour mode. Dark
// mode draws brighter particles.
func OpacityRange(mode ColorMode) (float64, float64) {
	if mode == ModeLight {
		return 0.2, 0.6
	}
	return 0.3, 0.8
}

// ParticleOptions configures a ParticleField.
type ParticleOptions struct {
	Count     int
	Interval  time.Duration
	Rand      *rand.Rand
	NewID     func() string
	Scheduler ports.Scheduler
	Logger    ports.Logger
	Publisher ports.EventPublisher
}

// ParticleField owns the particle collection of one animated background.
type ParticleField struct {
	opts ParticleOptions

	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64

	mu     sync.Mutex
	rng    *rand.Rand
	cancel ports.Cancel
}

// NewParticleField creates an empty field. Call Regenerate to populate it
// and Start to begin advancing.
func NewParticleField(opts ParticleOptions) *ParticleField {
	if opts.Count <= 0 {
		opts.Count = DefaultParticleCount
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultParticleTick
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &ParticleField{opts: opts, rng: rng}
	f.current.Store(&Snapshot{})
	return f
}

// Count returns the configured particles per generation.
func (f *ParticleField) Count() int {
	return f.opts.Count
}

// Snapshot returns the current immutable snapshot.
func (f *ParticleField) Snapshot() *Snapshot {
	return f.current.Load()
}

// Regenerate discards the whole collection and creates a fresh generation
// coloured from palette. There is no carry-over or cross-fade.
func (f *ParticleField) Regenerate(palette Palette, viewport Viewport) *Snapshot {
	f.mu.Lock()
	low, high := OpacityRange(palette.Mode)
	particles := make([]Particle, f.opts.Count)
	for i := range particles {
		particles[i] = Particle{
			ID:      f.opts.NewID(),
			X:       f.uniform(0, viewport.Width),
			Y:       f.uniform(0, viewport.Height),
			Size:    f.uniform(MinParticleSize, MaxParticleSize),
			VX:      f.uniform(-MaxParticleSpeed, MaxParticleSpeed),
			VY:      f.uniform(-MaxParticleSpeed, MaxParticleSpeed),
			Opacity: f.uniform(low, high),
			Color:   palette.Particles[f.rng.IntN(len(palette.Particles))],
		}
	}
	f.mu.Unlock()

	snap := &Snapshot{
		Generation: f.generation.Add(1),
		Section:    palette.Section,
		Mode:       palette.Mode,
		Viewport:   viewport,
		particles:  particles,
	}
	f.current.Store(snap)

	ctx := context.Background()
	if f.opts.Logger != nil {
		f.opts.Logger.Debug(ctx, "particles regenerated", "generation", snap.Generation, "count", len(particles),
			"section", palette.Section.String(), "mode", palette.Mode.String())
	}
	publish(ctx, f.opts.Publisher, ports.EventParticlesRegenerated, map[string]interface{}{
		"generation": snap.Generation,
		"count":      len(particles),
		"section":    palette.Section.String(),
		"mode":       palette.Mode.String(),
	})
	return snap
}

// Resize keeps the current generation and wraps every particle into the new
// viewport.
func (f *ParticleField) Resize(viewport Viewport) *Snapshot {
	prev := f.current.Load()
	next := &Snapshot{
		Generation: prev.Generation,
		Version:    prev.Version + 1,
		Section:    prev.Section,
		Mode:       prev.Mode,
		Viewport:   viewport,
		particles:  make([]Particle, len(prev.particles)),
	}
	for i, p := range prev.particles {
		p.X = wrap(p.X, viewport.Width)
		p.Y = wrap(p.Y, viewport.Height)
		next.particles[i] = p
	}
	f.current.Store(next)
	return next
}

// Step advances the field by one tick.
func (f *ParticleField) Step() *Snapshot {
	next := Advance(f.current.Load())
	f.current.Store(next)
	return next
}

// Start registers the fixed-rate tick. Calling Start twice is a no-op.
func (f *ParticleField) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return nil
	}
	if f.opts.Scheduler == nil {
		return setupError("particles", nil)
	}
	cancel, err := f.opts.Scheduler.Every(f.opts.Interval, func() { f.Step() })
	if err != nil {
		return setupError("particles", err)
	}
	f.cancel = cancel
	return nil
}

// Running reports whether the tick is registered.
func (f *ParticleField) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// Stop cancels the tick.
func (f *ParticleField) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (f *ParticleField) uniform(low, high float64) float64 {
	return low + f.rng.Float64()*(high-low)
}
