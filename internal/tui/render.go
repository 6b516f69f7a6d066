package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

const (
	// accents are boosted for coarse cells
	blobGain   = 2.5
	glowRadius = 160.0
	glowAlpha  = 0.35
)

// Canvas is a painted backdrop, one colour and glyph per cell.
type Canvas struct {
	cols, rows int
	bg         []colorful.Color
	fg         []colorful.Color
	glyph      []rune
}

// Cols returns the canvas width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in cells.
func (c *Canvas) Rows() int { return c.rows }

// At returns the background, foreground and glyph of a cell. Blank cells use
// a space.
func (c *Canvas) At(col, row int) (colorful.Color, colorful.Color, rune) {
	i := row*c.cols + col
	return c.bg[i], c.fg[i], c.glyph[i]
}

// Painter paints frames onto canvases and renders canvas rows, caching one
// lipgloss style per colour pair.
type Painter struct {
	cells  Cells
	styles map[string]lipgloss.Style
}

// NewPainter creates a painter for the given cell size.
func NewPainter(cells Cells) *Painter {
	return &Painter{cells: cells, styles: make(map[string]lipgloss.Style)}
}

// Paint rasterises frame onto a cols x rows canvas: the primary gradient
// towards the bottom right, then accent blobs, then the pointer glow, then
// particles.
func (p *Painter) Paint(frame scene.Frame, cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	canvas := &Canvas{
		cols:  cols,
		rows:  rows,
		bg:    make([]colorful.Color, cols*rows),
		fg:    make([]colorful.Color, cols*rows),
		glyph: make([]rune, cols*rows),
	}
	if cols == 0 || rows == 0 {
		return canvas
	}

	primary := newRamp(frame.Palette.Primary)
	blobs := make([]blobRamp, len(frame.Blobs))
	for i, blob := range frame.Blobs {
		blobs[i] = blobRamp{Blob: blob, ramp: newRamp(blob.Gradient)}
	}
	var glow colorful.Color
	if frame.Glow != nil {
		glow = hexColor(frame.Palette.Accent1.From.Hex)
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			t := (float64(col)/float64(max(cols-1, 1)) + float64(row)/float64(max(rows-1, 1))) / 2
			c, _ := primary.at(t)
			center := p.cells.Point(col, row)
			for _, blob := range blobs {
				if reach, ok := blob.reach(center); ok {
					bc, alpha := blob.ramp.at(reach)
					c = c.BlendRgb(bc, clamp01(alpha*blob.Opacity*blobGain*(1-reach*reach)))
				}
			}
			if frame.Glow != nil {
				if d := distance(center, *frame.Glow); d < glowRadius {
					f := 1 - d/glowRadius
					c = c.BlendRgb(glow, glowAlpha*f*f)
				}
			}
			canvas.bg[i] = c.Clamped()
			canvas.fg[i] = canvas.bg[i]
			canvas.glyph[i] = ' '
		}
	}

	if frame.Particles != nil {
		for i := 0; i < frame.Particles.Len(); i++ {
			particle := frame.Particles.At(i)
			col, row := p.cells.Cell(ports.Point{X: particle.X, Y: particle.Y})
			if col < 0 || col >= cols || row < 0 || row >= rows {
				continue
			}
			idx := row*cols + col
			canvas.fg[idx] = canvas.bg[idx].BlendRgb(hexColor(particle.Color), clamp01(particle.Opacity)).Clamped()
			canvas.glyph[idx] = particleGlyph(particle.Size)
		}
	}
	return canvas
}

// RenderRow renders cells [from, to) of a canvas row.
func (p *Painter) RenderRow(canvas *Canvas, row, from, to int) string {
	if canvas == nil || row < 0 || row >= canvas.rows {
		return strings.Repeat(" ", max(to-from, 0))
	}
	from = max(from, 0)
	to = min(to, canvas.cols)
	var b strings.Builder
	for col := from; col < to; {
		bg, fg, glyph := canvas.At(col, row)
		run := col + 1
		if glyph == ' ' {
			for run < to {
				nbg, _, ng := canvas.At(run, row)
				if ng != ' ' || nbg.Hex() != bg.Hex() {
					break
				}
				run++
			}
		}
		text := strings.Repeat(string(glyph), run-col)
		b.WriteString(p.style(bg, fg).Render(text))
		col = run
	}
	return b.String()
}

func (p *Painter) style(bg, fg colorful.Color) lipgloss.Style {
	key := bg.Hex() + fg.Hex()
	if style, ok := p.styles[key]; ok {
		return style
	}
	style := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())).Foreground(lipgloss.Color(fg.Hex()))
	p.styles[key] = style
	return style
}

func particleGlyph(size float64) rune {
	switch {
	case size < 3:
		return '·'
	case size < 5:
		return '•'
	default:
		return '●'
	}
}

type rampStop struct {
	color colorful.Color
	alpha float64
}

// ramp samples a gradient in Lab space.
type ramp []rampStop

func newRamp(g scene.Gradient) ramp {
	stops := g.Stops()
	r := make(ramp, 0, len(stops))
	for _, stop := range stops {
		r = append(r, rampStop{color: hexColor(stop.Hex), alpha: stop.Alpha})
	}
	return r
}

func (r ramp) at(t float64) (colorful.Color, float64) {
	switch len(r) {
	case 0:
		return colorful.Color{}, 0
	case 1:
		return r[0].color, r[0].alpha
	}
	t = clamp01(t)
	segments := float64(len(r) - 1)
	idx := int(t * segments)
	if idx >= len(r)-1 {
		idx = len(r) - 2
	}
	local := t*segments - float64(idx)
	a, b := r[idx], r[idx+1]
	return a.color.BlendLab(b.color, local), a.alpha + (b.alpha-a.alpha)*local
}

type blobRamp struct {
	scene.Blob
	ramp ramp
}

// reach returns how far into the blob a point lies, 0 at the centre and 1
// at the edge, and false outside it.
func (b blobRamp) reach(p ports.Point) (float64, bool) {
	if b.Radius <= 0 {
		return 0, false
	}
	dx, dy := p.X-b.Center.X, p.Y-b.Center.Y
	var r float64
	if b.Shape == scene.ShapeSquare {
		theta := -b.Rotation * math.Pi / 180
		rx := dx*math.Cos(theta) - dy*math.Sin(theta)
		ry := dx*math.Sin(theta) + dy*math.Cos(theta)
		r = math.Max(math.Abs(rx), math.Abs(ry)) / b.Radius
	} else {
		r = math.Hypot(dx, dy) / b.Radius
	}
	if r >= 1 {
		return 0, false
	}
	return r, true
}

func distance(a, b ports.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func hexColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
