package scene

import (
	"math"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// BlobShape is the silhouette of an accent blob.
type BlobShape int

const (
	ShapeCircle BlobShape = iota
	ShapeSquare
)

// String returns the shape name.
func (s BlobShape) String() string {
	if s == ShapeSquare {
		return "square"
	}
	return "circle"
}

// Blob is one resolved accent shape, ready to draw.
type Blob struct {
	Name     string
	Shape    BlobShape
	Gradient Gradient
	Center   ports.Point
	Radius   float64
	Rotation float64
	Opacity  float64
}

// blobLayout places a blob relative to the viewport and describes its drift.
// Offsets follow a 0 → peak → 0 keyframe loop with ease-in-out.
type blobLayout struct {
	name   string
	shape  BlobShape
	accent int
	size   float64
	// left/top anchor as a fraction of the viewport; a negative value means
	// the blob is anchored from the opposite edge.
	left, top float64

	period, delay time.Duration
	dx, dy        float64
	scale         float64
	spin          bool

	staticOpacity float64
}

var blobLayouts = []blobLayout{
	{name: "primary-orb", shape: ShapeCircle, accent: 1, size: 384, left: 0.10, top: 0.10,
		period: 20 * time.Second, dx: 100, dy: 50, scale: 1.1, staticOpacity: 0.30},
	{name: "secondary-orb", shape: ShapeCircle, accent: 2, size: 320, left: -0.10, top: 0.50,
		period: 25 * time.Second, delay: 5 * time.Second, dx: -80, dy: 80, scale: 0.9, staticOpacity: 0.25},
	{name: "square", shape: ShapeSquare, accent: 1, size: 128, left: -0.20, top: 0.20,
		period: 15 * time.Second, scale: 1.2, spin: true, staticOpacity: 0.20},
	{name: "small-orb", shape: ShapeCircle, accent: 2, size: 96, left: 0.15, top: -0.20,
		period: 12 * time.Second, delay: 3 * time.Second, dx: 20, dy: -30, scale: 1, staticOpacity: 0.30},
}

// StaticBlobs returns the four accent blobs at rest.
func StaticBlobs(palette Palette, viewport Viewport) []Blob {
	blobs := make([]Blob, len(blobLayouts))
	for i, layout := range blobLayouts {
		blob := layout.rest(palette, viewport)
		blob.Opacity = layout.staticOpacity
		blobs[i] = blob
	}
	return blobs
}

// DriftBlobs returns the four accent blobs at elapsed time into their loops.
func DriftBlobs(palette Palette, viewport Viewport, elapsed time.Duration) []Blob {
	blobs := make([]Blob, len(blobLayouts))
	for i, layout := range blobLayouts {
		blob := layout.rest(palette, viewport)
		blob.Opacity = 1

		phase := loopPhase(elapsed, layout.period, layout.delay)
		bump := pingPong(phase)
		blob.Center.X += layout.dx * bump
		blob.Center.Y += layout.dy * bump
		blob.Radius *= 1 + (layout.scale-1)*bump
		if layout.spin {
			// the square spins linearly while pulsing
			blob.Rotation = 45 + 360*phase
		}
		blobs[i] = blob
	}
	return blobs
}

func (s blobLayout) rest(palette Palette, viewport Viewport) Blob {
	gradient := palette.Accent1
	if s.accent == 2 {
		gradient = palette.Accent2
	}
	x := s.left * viewport.Width
	if s.left < 0 {
		x = viewport.Width*(1+s.left) - s.size
	}
	y := s.top * viewport.Height
	if s.top < 0 {
		y = viewport.Height*(1+s.top) - s.size
	}
	blob := Blob{
		Name:     s.name,
		Shape:    s.shape,
		Gradient: gradient,
		Center:   ports.Point{X: x + s.size/2, Y: y + s.size/2},
		Radius:   s.size / 2,
	}
	if s.shape == ShapeSquare {
		blob.Rotation = 45
	}
	return blob
}

// loopPhase returns the position in [0, 1) within a repeating loop that
// starts after delay.
func loopPhase(elapsed, period, delay time.Duration) float64 {
	if period <= 0 || elapsed <= delay {
		return 0
	}
	into := (elapsed - delay) % period
	return float64(into) / float64(period)
}

// pingPong maps a loop phase to 0 → 1 → 0 with ease-in-out on both halves.
func pingPong(phase float64) float64 {
	t := phase * 2
	if t > 1 {
		t = 2 - t
	}
	return easeInOut(math.Max(0, math.Min(1, t)))
}

func easeInOut(t float64) float64 {
	return t * t * (3 - 2*t)
}
