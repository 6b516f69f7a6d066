package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// ErrMouseDisabled is returned by OnPointerMove when mouse tracking is off.
var ErrMouseDisabled = errors.New("tui: mouse tracking disabled")

// Cells maps terminal cells to viewport pixels.
type Cells struct {
	Width  float64
	Height float64
}

// Point returns the pixel centre of cell (col, row).
func (c Cells) Point(col, row int) ports.Point {
	return ports.Point{X: (float64(col) + 0.5) * c.Width, Y: (float64(row) + 0.5) * c.Height}
}

// Cell returns the cell containing a pixel position.
func (c Cells) Cell(p ports.Point) (col, row int) {
	return int(p.X / c.Width), int(p.Y / c.Height)
}

// MouseSource turns tea.MouseMsg motion into pointer-move events.
type MouseSource struct {
	cells   Cells
	enabled bool

	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(ports.Point)
	last   ports.Point
	moved  bool
}

var _ ports.PointerSource = (*MouseSource)(nil)

// NewMouseSource creates a pointer source. With enabled false every
// subscription fails, as on a terminal without mouse reporting.
func NewMouseSource(cells Cells, enabled bool) *MouseSource {
	return &MouseSource{cells: cells, enabled: enabled, subs: make(map[uint64]func(ports.Point))}
}

// OnPointerMove implements ports.PointerSource.
func (m *MouseSource) OnPointerMove(fn func(ports.Point)) (ports.Cancel, error) {
	if !m.enabled {
		return nil, ErrMouseDisabled
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}, nil
}

// Handle forwards a mouse message whose rows are counted from originRow.
// Wheel and press events move the pointer too.
func (m *MouseSource) Handle(msg tea.MouseMsg, originRow int) {
	m.Move(m.cells.Point(msg.X, msg.Y-originRow))
}

// Move reports a pointer position in pixels.
func (m *MouseSource) Move(p ports.Point) {
	m.mu.Lock()
	m.last, m.moved = p, true
	fns := make([]func(ports.Point), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Last returns the last reported position.
func (m *MouseSource) Last() (ports.Point, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.moved
}

// Subscribers returns the number of live subscriptions.
func (m *MouseSource) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}
