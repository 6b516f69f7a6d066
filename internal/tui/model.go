// Package tui hosts the portfolio scene in a Bubble Tea program: the page
// content scrolls in a centred column while the backdrop fills the margins.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/alexisbeaulieu97/folio/internal/components"
	"github.com/alexisbeaulieu97/folio/internal/config"
	"github.com/alexisbeaulieu97/folio/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
	"github.com/alexisbeaulieu97/folio/internal/theme"
)

const (
	headerRows   = 1
	footerRows   = 1
	maxColumn    = 96
	logPanelRows = 8
	scrollFPS    = 60
)

// Options carries the long-lived collaborators the model drives.
type Options struct {
	Config     *config.Config
	Logger     ports.Logger
	Publisher  ports.EventPublisher
	Ring       *logging.Ring
	Detector   *scene.SectionDetector
	Classifier *scene.Classifier
	Navigation *scene.NavigationHighlighter
	Theme      *theme.Store
	Scheduler  *Scheduler
	Pointer    *MouseSource
	Particles  scene.ParticleOptions
	Spring     scene.SpringParams

	// Markdown builds the body renderer; nil uses glamour.
	Markdown func(mode scene.ColorMode, width int) (Markdown, error)
	// Copy writes to the system clipboard; nil uses atotto/clipboard.
	Copy func(string) error

	// Width and Height are the initial terminal size in cells. When both
	// are positive the background mounts immediately.
	Width  int
	Height int
}

type scrollFrameMsg struct {
	gen int
}

type copiedMsg struct {
	text string
	err  error
}

// smoothScroll eases the viewport towards a target row.
type smoothScroll struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	gen    int
	active bool
}

// Model contains the Bubble Tea state for the portfolio viewer.
type Model struct {
	opts  Options
	cfg   *config.Config
	cells Cells
	ctx   context.Context

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	page     *Page
	painter  *Painter

	background scene.Background
	scroll     smoothScroll
	lastScroll float64

	width  int
	height int

	showLog  bool
	alert    *components.Alert
	quitting bool
}

// NewModel constructs the viewer. Missing options fall back to defaults;
// the detector, classifier, navigation, theme, scheduler and pointer source
// are created when absent.
func NewModel(opts Options) Model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	cfg := opts.Config
	if opts.Logger == nil {
		opts.Logger = logging.NewNoOpLogger()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler(nil)
	}
	cells := Cells{Width: float64(cfg.Viewport.CellWidthPx), Height: float64(cfg.Viewport.CellHeightPx)}
	if opts.Pointer == nil {
		opts.Pointer = NewMouseSource(cells, true)
	}
	if opts.Detector == nil {
		opts.Detector = scene.NewSectionDetector(scene.DetectorOptions{Strategy: cfg.Strategy(), Logger: opts.Logger, Publisher: opts.Publisher})
	}
	if opts.Classifier == nil {
		opts.Classifier = scene.NewClassifier(scene.ClassifierOptions{
			Breakpoints: cfg.Breakpoints(),
			Debounce:    cfg.Debounce(),
			Scheduler:   opts.Scheduler,
			Logger:      opts.Logger,
			Publisher:   opts.Publisher,
		})
	}
	if opts.Navigation == nil {
		opts.Navigation = scene.NewNavigationHighlighter(scene.NavigationOptions{
			OverrideWindow: cfg.OverrideWindow(),
			Scheduler:      opts.Scheduler,
			Logger:         opts.Logger,
			Publisher:      opts.Publisher,
		})
		opts.Navigation.Attach(opts.Detector)
	}
	if opts.Theme == nil {
		opts.Theme = theme.NewStore(cfg.Mode(), opts.Logger)
	}
	if opts.Markdown == nil {
		opts.Markdown = NewMarkdown
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Spring == (scene.SpringParams{}) {
		opts.Spring = cfg.Spring()
	}

	components.SetTheme(components.NewTheme(cfg.Theme.Accent, opts.Theme.Mode()))

	m := Model{
		opts:     opts,
		cfg:      cfg,
		cells:    cells,
		ctx:      logging.NewSessionContext(context.Background()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		painter:  NewPainter(cells),
		scroll:   smoothScroll{spring: harmonica.NewSpring(harmonica.FPS(scrollFPS), 8.0, 1.0)},
	}
	m.viewport.MouseWheelEnabled = true
	if opts.Width > 0 && opts.Height > 0 {
		m.resize(opts.Width, opts.Height)
	}
	return m
}

// Init starts the timers registered during construction.
func (m Model) Init() tea.Cmd {
	return m.opts.Scheduler.Commands()
}

// Background returns the mounted background, nil before the first size.
func (m Model) Background() scene.Background {
	return m.background
}

// Page returns the laid out document.
func (m Model) Page() *Page {
	return m.page
}

// ScrollRow returns the first visible document row.
func (m Model) ScrollRow() int {
	return m.viewport.YOffset
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Close releases the background's timers and subscriptions.
func (m Model) Close() {
	if m.background != nil {
		m.background.Close()
	}
}

// bodyRows is the number of rows between header and footer.
func (m Model) bodyRows() int {
	return max(m.height-headerRows-footerRows, 1)
}

// column returns the content column's left edge and width in cells.
func (m Model) column() (left, width int) {
	width = m.width
	if m.width >= 40 {
		width = min(m.width-4, maxColumn)
	}
	return (m.width - width) / 2, width
}

// pixelViewport is the backdrop area in pixels.
func (m Model) pixelViewport() scene.Viewport {
	return scene.Viewport{
		Width:  float64(m.width) * m.cells.Width,
		Height: float64(m.bodyRows()) * m.cells.Height,
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	_, colWidth := m.column()
	m.viewport.Width = colWidth
	m.viewport.Height = m.bodyRows()
	m.help.Width = width
	m.rebuildPage()

	vp := m.pixelViewport()
	if m.background == nil {
		m.opts.Classifier.Measure(vp.Width)
		m.mount()
	} else {
		m.opts.Classifier.Observe(vp.Width)
		m.background.Resize(vp)
	}
	m.syncDetector(true)
}

// rebuildPage re-renders the content for the current width and mode and
// re-registers every section anchor with the detector.
func (m *Model) rebuildPage() {
	_, colWidth := m.column()
	md, err := m.opts.Markdown(m.opts.Theme.Mode(), colWidth-4)
	if err != nil {
		m.opts.Logger.Warn(m.ctx, "markdown renderer unavailable", "error", err)
		md = nil
	}
	m.page = BuildPage(m.cfg.Sections, md, PageOptions{
		Width:   colWidth,
		MinRows: m.bodyRows(),
		Cells:   m.cells,
	})
	if n := m.page.Fallbacks(); n > 0 {
		m.opts.Logger.Warn(m.ctx, "section bodies shown unrendered", "count", n)
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.page.Content())
	m.viewport.SetYOffset(offset)
	found := m.opts.Detector.Locate(m.page)
	m.opts.Logger.Debug(m.ctx, "page laid out", "rows", m.page.Rows(), "anchors", found)
}

func (m *Model) mount() {
	m.background = scene.Mount(scene.MountOptions{
		Detector:   m.opts.Detector,
		Theme:      m.opts.Theme,
		Classifier: m.opts.Classifier,
		Pointer:    m.opts.Pointer,
		Scheduler:  m.opts.Scheduler,
		Viewport:   m.pixelViewport(),
		Particles:  m.opts.Particles,
		Spring:     m.opts.Spring,
		Logger:     m.opts.Logger,
		Publisher:  m.opts.Publisher,
	})
	if m.background.Variant() == scene.VariantStatic && m.opts.Classifier.Tier().Animated() {
		m.alert = components.WarningAlert("animated background unavailable, showing static")
	}
}

// remount replaces the background, picking the variant from the current
// tier.
func (m *Model) remount() {
	if m.background != nil {
		m.background.Close()
		m.background = nil
	}
	m.alert = nil
	m.mount()
	if m.alert == nil {
		m.alert = components.InfoAlert("background remounted: " + m.background.Variant().String())
	}
}

// syncDetector pushes the scroll offset to the detector when it moved.
func (m *Model) syncDetector(force bool) {
	scrollY := float64(m.viewport.YOffset) * m.cells.Height
	if !force && scrollY == m.lastScroll {
		return
	}
	m.lastScroll = scrollY
	m.opts.Detector.Update(scrollY, float64(m.bodyRows())*m.cells.Height)
	m.opts.Navigation.ObserveScroll(scrollY)
}

// jump highlights section and starts a smooth scroll to it.
func (m *Model) jump(section scene.Section) tea.Cmd {
	row, ok := m.page.Row(section)
	if !ok {
		m.alert = components.WarningAlert(section.Anchor() + " is not on this page")
		return nil
	}
	m.opts.Navigation.Click(section)

	maxRow := max(m.page.Rows()-m.viewport.Height, 0)
	m.scroll.target = float64(min(row, maxRow))
	if !m.scroll.active {
		m.scroll.pos = float64(m.viewport.YOffset)
		m.scroll.vel = 0
	}
	m.scroll.active = true
	m.scroll.gen++
	return scrollFrame(m.scroll.gen)
}

func (m *Model) stopScroll() {
	m.scroll.active = false
	m.scroll.gen++
}

func scrollFrame(gen int) tea.Cmd {
	return tea.Tick(time.Second/scrollFPS, func(time.Time) tea.Msg { return scrollFrameMsg{gen: gen} })
}

// stepScroll advances the smooth scroll by one frame and reports whether it
// is still moving.
func (m *Model) stepScroll() bool {
	m.scroll.pos, m.scroll.vel = m.scroll.spring.Update(m.scroll.pos, m.scroll.vel, m.scroll.target)
	settled := abs(m.scroll.pos-m.scroll.target) < 0.5 && abs(m.scroll.vel) < 0.5
	if settled {
		m.scroll.pos, m.scroll.vel = m.scroll.target, 0
		m.scroll.active = false
	}
	m.viewport.SetYOffset(int(m.scroll.pos + 0.5))
	return !settled
}

func copyCmd(copyFn func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: copyFn(text)}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
