package scene

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// Default spring tuning of the pointer glow.
const (
	DefaultStiffness = 200.0
	DefaultDamping   = 50.0
	DefaultMass      = 0.5
	DefaultGlowFPS   = 60
)

const settleEpsilon = 0.01

// SpringParams describes the glow's follower spring in physical terms.
type SpringParams struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
	FPS       int     `yaml:"fps"`
}

// DefaultSpringParams returns stiffness 200, damping 50, mass 0.5 at 60 fps.
func DefaultSpringParams() SpringParams {
	return SpringParams{
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		Mass:      DefaultMass,
		FPS:       DefaultGlowFPS,
	}
}

func (p SpringParams) normalized() SpringParams {
	def := DefaultSpringParams()
	if p.Stiffness <= 0 {
		p.Stiffness = def.Stiffness
	}
	if p.Damping <= 0 {
		p.Damping = def.Damping
	}
	if p.Mass <= 0 {
		p.Mass = def.Mass
	}
	if p.FPS <= 0 {
		p.FPS = def.FPS
	}
	return p
}

// AngularFrequency returns sqrt(k/m).
func (p SpringParams) AngularFrequency() float64 {
	p = p.normalized()
	return math.Sqrt(p.Stiffness / p.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)), never below critical damping so
// the glow does not overshoot the pointer.
func (p SpringParams) DampingRatio() float64 {
	p = p.normalized()
	ratio := p.Damping / (2 * math.Sqrt(p.Stiffness*p.Mass))
	if ratio < 1 {
		return 1
	}
	return ratio
}

// FrameInterval returns the duration of one spring step.
func (p SpringParams) FrameInterval() time.Duration {
	p = p.normalized()
	return time.Second / time.Duration(p.FPS)
}

// PointerOptions configures a PointerGlow.
type PointerOptions struct {
	Spring  SpringParams
	Initial ports.Point
	Logger  ports.Logger
}

// PointerGlow is a soft light that trails the pointer on a spring.
type PointerGlow struct {
	params SpringParams
	spring harmonica.Spring
	logger ports.Logger

	mu       sync.Mutex
	position ports.Point
	velocity ports.Point
	target   ports.Point
	cancels  []ports.Cancel
	running  bool
}

// NewPointerGlow creates a glow resting at opts.Initial.
func NewPointerGlow(opts PointerOptions) *PointerGlow {
	params := opts.Spring.normalized()
	return &PointerGlow{
		params:   params,
		spring:   harmonica.NewSpring(harmonica.FPS(params.FPS), params.AngularFrequency(), params.DampingRatio()),
		logger:   opts.Logger,
		position: opts.Initial,
		target:   opts.Initial,
	}
}

// Params returns the normalized spring parameters.
func (g *PointerGlow) Params() SpringParams {
	return g.params
}

// Position returns the glow's current position.
func (g *PointerGlow) Position() ports.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

// Target returns the latest pointer position.
func (g *PointerGlow) Target() ports.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

// Move retargets the spring.
func (g *PointerGlow) Move(p ports.Point) {
	g.mu.Lock()
	g.target = p
	g.mu.Unlock()
}

// Settled reports whether the glow rests on its target.
func (g *PointerGlow) Settled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settledLocked()
}

func (g *PointerGlow) settledLocked() bool {
	return math.Abs(g.position.X-g.target.X) < settleEpsilon &&
		math.Abs(g.position.Y-g.target.Y) < settleEpsilon &&
		math.Abs(g.velocity.X) < settleEpsilon &&
		math.Abs(g.velocity.Y) < settleEpsilon
}

// Step advances the spring by one frame and returns the new position.
func (g *PointerGlow) Step() ports.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.settledLocked() {
		g.position = g.target
		g.velocity = ports.Point{}
		return g.position
	}
	g.position.X, g.velocity.X = g.spring.Update(g.position.X, g.velocity.X, g.target.X)
	g.position.Y, g.velocity.Y = g.spring.Update(g.position.Y, g.velocity.Y, g.target.Y)
	return g.position
}

// Start subscribes to pointer moves and registers the frame timer. On any
// failure nothing stays registered.
func (g *PointerGlow) Start(source ports.PointerSource, scheduler ports.Scheduler) error {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	if source == nil || scheduler == nil {
		return setupError("pointer", nil)
	}
	unsubscribe, err := source.OnPointerMove(g.Move)
	if err != nil {
		return setupError("pointer", err)
	}
	stopFrames, err := scheduler.Every(g.params.FrameInterval(), func() { g.Step() })
	if err != nil {
		unsubscribe()
		return setupError("pointer", err)
	}

	g.mu.Lock()
	g.cancels = []ports.Cancel{unsubscribe, stopFrames}
	g.running = true
	g.mu.Unlock()

	if g.logger != nil {
		g.logger.Debug(context.Background(), "pointer glow started",
			"omega", g.params.AngularFrequency(), "zeta", g.params.DampingRatio(), "fps", g.params.FPS)
	}
	return nil
}

// Running reports whether the glow is subscribed and ticking.
func (g *PointerGlow) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Stop releases the pointer subscription and the frame timer.
func (g *PointerGlow) Stop() {
	g.mu.Lock()
	cancels := g.cancels
	g.cancels = nil
	g.running = false
	g.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
