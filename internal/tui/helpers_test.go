package tui

import (
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/folio/internal/config"
	"github.com/alexisbeaulieu97/folio/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/folio/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

var testEpoch = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	opts      Options
	ring      *logging.Ring
	publisher *events.LoggingPublisher
	copied    []string
}

type fixtureOption func(*Options)

func withSize(width, height int) fixtureOption {
	return func(o *Options) { o.Width, o.Height = width, height }
}

func withConfig(cfg *config.Config) fixtureOption {
	return func(o *Options) { o.Config = cfg }
}

func withMouse(enabled bool) fixtureOption {
	return func(o *Options) {
		cfg := o.Config
		if cfg == nil {
			cfg = config.Default()
		}
		o.Pointer = NewMouseSource(Cells{Width: float64(cfg.Viewport.CellWidthPx), Height: float64(cfg.Viewport.CellHeightPx)}, enabled)
	}
}

// newFixture builds a 120x30 (desktop) model on a frozen clock with plain
// markdown, a seeded particle field and a recording clipboard.
func newFixture(t *testing.T, options ...fixtureOption) (*fixture, Model) {
	t.Helper()

	ring := logging.NewRing(64)
	logger := logging.NewRingLogger(ring, logging.LevelDebug)
	f := &fixture{ring: ring, publisher: events.NewLoggingPublisher(logger)}
	f.opts = Options{
		Config:    config.Default(),
		Logger:    logger,
		Publisher: f.publisher,
		Ring:      ring,
		Scheduler: NewScheduler(func() time.Time { return testEpoch }),
		Particles: scene.ParticleOptions{Rand: rand.New(rand.NewPCG(1, 2))},
		Markdown: func(scene.ColorMode, int) (Markdown, error) {
			return plainMarkdown{}, nil
		},
		Copy: func(text string) error {
			f.copied = append(f.copied, text)
			return nil
		},
		Width:  120,
		Height: 30,
	}
	for _, option := range options {
		option(&f.opts)
	}
	m := NewModel(f.opts)
	// keep the collaborators NewModel filled in so tests can inspect them
	f.opts = m.opts
	m.Init()
	t.Cleanup(m.Close)
	t.Cleanup(f.opts.Navigation.Close)
	return f, m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	m, _ = update(t, m, msg)
	return m
}

// settleScroll feeds animation frames until the smooth scroll stops.
func settleScroll(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 600 && m.scroll.active; i++ {
		m, _ = update(t, m, scrollFrameMsg{gen: m.scroll.gen})
	}
	require.False(t, m.scroll.active, "smooth scroll should settle")
	return m
}
