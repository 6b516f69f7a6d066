package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/folio/internal/components"
	"github.com/alexisbeaulieu97/folio/internal/config"
	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

func TestNewModelMountsAnimatedBackgroundOnDesktop(t *testing.T) {
	f, m := newFixture(t)

	require.NotNil(t, m.Background())
	assert.Equal(t, scene.VariantAnimated, m.Background().Variant())
	assert.Equal(t, scene.TierDesktop, f.opts.Classifier.Tier())
	assert.Equal(t, 2, f.opts.Scheduler.Pending(), "particle tick and glow frame")
	assert.Equal(t, 1, f.opts.Pointer.Subscribers())
	assert.Equal(t, 1, f.publisher.Counts()[ports.EventBackgroundMounted])
	assert.Equal(t, len(scene.Sections()), f.opts.Detector.Registered())
}

func TestNewModelCreatesMissingCollaborators(t *testing.T) {
	f, m := newFixture(t)

	require.NotNil(t, f.opts.Detector)
	require.NotNil(t, f.opts.Classifier)
	require.NotNil(t, f.opts.Navigation)
	require.NotNil(t, f.opts.Theme)
	require.NotNil(t, f.opts.Pointer)
	assert.Same(t, f.opts.Navigation, m.opts.Navigation)

	// the created navigation follows the created detector
	m = press(t, m, "G")
	assert.Equal(t, scene.SectionContact, f.opts.Navigation.Current())
	_ = m
}

func TestNewModelWithoutSizeWaitsForWindow(t *testing.T) {
	_, m := newFixture(t, withSize(0, 0))
	assert.Nil(t, m.Background())
	assert.Equal(t, "loading…", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	require.NotNil(t, m.Background())
	assert.Equal(t, scene.VariantAnimated, m.Background().Variant())
}

func TestMobileTierNeverStartsAnimation(t *testing.T) {
	f, m := newFixture(t, withSize(60, 30))

	assert.Equal(t, scene.TierMobile, f.opts.Classifier.Tier())
	assert.Equal(t, scene.VariantStatic, m.Background().Variant())
	assert.Zero(t, f.opts.Scheduler.Pending(), "no interval timers on mobile")
	assert.Zero(t, f.opts.Pointer.Subscribers(), "no pointer subscription on mobile")
	assert.Nil(t, m.Background().Frame().Particles)
	assert.Nil(t, m.alert)
}

func TestDisabledMouseDegradesToStatic(t *testing.T) {
	f, m := newFixture(t, withMouse(false))

	assert.Equal(t, scene.VariantStatic, m.Background().Variant())
	assert.Zero(t, f.opts.Scheduler.Pending(), "partial setup is released")
	assert.Equal(t, 1, f.publisher.Counts()[ports.EventBackgroundDegraded])
	require.NotNil(t, m.alert)
	assert.Equal(t, components.AlertVariantWarning, m.alert.Variant())
}

func TestJumpHighlightsImmediatelyThenConfirms(t *testing.T) {
	f, m := newFixture(t)

	m = press(t, m, "3")
	assert.Equal(t, scene.SectionProjects, f.opts.Navigation.Current())
	assert.Equal(t, scene.NavUserOverride, f.opts.Navigation.State())
	assert.Equal(t, scene.SectionHome, f.opts.Detector.Active(), "scrolling has not started yet")

	m = settleScroll(t, m)

	row, ok := m.Page().Row(scene.SectionProjects)
	require.True(t, ok)
	assert.Equal(t, row, m.ScrollRow())
	assert.Equal(t, scene.SectionProjects, f.opts.Detector.Active())
	assert.Equal(t, scene.SectionProjects, f.opts.Navigation.Current())
	assert.Equal(t, scene.NavScrollConfirmed, f.opts.Navigation.State())
	assert.Equal(t, 1, f.publisher.Counts()[ports.EventNavigationOverride])
}

func TestJumpOverrideExpiresWhenScrollNeverArrives(t *testing.T) {
	f, m := newFixture(t)

	m = press(t, m, "3")
	require.Equal(t, scene.SectionProjects, f.opts.Navigation.Current())

	// particle tick and glow frame hold ids 1 and 2; the override expiry is 3
	m, _ = update(t, m, TimerMsg{ID: 3})
	assert.Equal(t, scene.SectionHome, f.opts.Navigation.Current())
	assert.Equal(t, scene.NavScrollConfirmed, f.opts.Navigation.State())
	_ = m
}

func TestTabJumpsToNextSection(t *testing.T) {
	f, m := newFixture(t)

	m = settleScroll(t, press(t, m, "tab"))
	assert.Equal(t, scene.SectionSkills, f.opts.Detector.Active())

	m = settleScroll(t, press(t, m, "tab"))
	assert.Equal(t, scene.SectionProjects, f.opts.Detector.Active())
}

func TestManualScrollStopsSmoothScroll(t *testing.T) {
	_, m := newFixture(t)

	m = press(t, m, "5")
	require.True(t, m.scroll.active)
	gen := m.scroll.gen

	m = press(t, m, "j")
	assert.False(t, m.scroll.active)
	row := m.ScrollRow()

	m, _ = update(t, m, scrollFrameMsg{gen: gen})
	assert.False(t, m.scroll.active)
	assert.Equal(t, row, m.ScrollRow(), "stale frames are ignored")
}

func TestScrollToBottomActivatesContact(t *testing.T) {
	f, m := newFixture(t)

	m = press(t, m, "G")
	assert.Equal(t, scene.SectionContact, f.opts.Detector.Active())
	assert.True(t, f.opts.Navigation.Scrolled())

	press(t, m, "g")
	assert.Equal(t, scene.SectionHome, f.opts.Detector.Active())
	assert.False(t, f.opts.Navigation.Scrolled())
}

func TestPageDownSweepChangesSectionsInOrder(t *testing.T) {
	f, m := newFixture(t)

	var seen []scene.Section
	cancel := f.opts.Detector.Subscribe(func(s scene.Section) { seen = append(seen, s) })
	defer cancel()

	for i := 0; i < 40; i++ {
		m = press(t, m, "pgdown")
	}
	assert.Equal(t, []scene.Section{
		scene.SectionSkills, scene.SectionProjects, scene.SectionExperience, scene.SectionContact,
	}, seen)
}

func TestTimerMessagesAdvanceParticles(t *testing.T) {
	_, m := newFixture(t)
	animated, ok := m.Background().(*scene.AnimatedBackground)
	require.True(t, ok)

	before := animated.Particles().Snapshot()
	m, cmd := update(t, m, TimerMsg{ID: 1})
	after := animated.Particles().Snapshot()

	assert.Equal(t, before.Generation, after.Generation)
	assert.Equal(t, before.Version+1, after.Version)
	assert.NotNil(t, cmd, "interval timer re-arms")
	_ = m
}

func TestThemeToggleRegeneratesParticlesAndRestyles(t *testing.T) {
	f, m := newFixture(t)
	animated := m.Background().(*scene.AnimatedBackground)
	before := animated.Particles().Snapshot().Generation

	m = press(t, m, "t")

	assert.Equal(t, scene.ModeLight, f.opts.Theme.Mode())
	assert.Equal(t, scene.ModeLight, components.GetTheme().Mode)
	assert.Greater(t, animated.Particles().Snapshot().Generation, before)
	assert.Equal(t, scene.ModeLight, m.Background().Frame().Mode)
	assert.Equal(t, 1, f.publisher.Counts()[ports.EventColorModeChanged])
}

func TestCopyWritesActivePermalink(t *testing.T) {
	f, m := newFixture(t)
	m = settleScroll(t, press(t, m, "2"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	require.NotNil(t, cmd)

	msg := findMsg[copiedMsg](t, cmd)
	assert.Equal(t, []string{"#skills"}, f.copied)

	m, _ = update(t, m, msg)
	require.NotNil(t, m.alert)
	assert.Equal(t, components.AlertVariantSuccess, m.alert.Variant())
	assert.Contains(t, m.alert.Message(), "#skills")
}

func TestRemountReplacesBackgroundAndReleasesTimers(t *testing.T) {
	f, m := newFixture(t)
	old := m.Background()

	m = press(t, m, "R")

	assert.NotSame(t, old, m.Background())
	assert.Equal(t, scene.VariantAnimated, m.Background().Variant())
	assert.Equal(t, 2, f.opts.Scheduler.Pending(), "old timers were cancelled")
	assert.Equal(t, 1, f.opts.Pointer.Subscribers())
}

func TestResizeIsDebouncedAndTierChangeNeedsRemount(t *testing.T) {
	f, m := newFixture(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.Equal(t, scene.TierDesktop, f.opts.Classifier.Tier(), "debounce pending")

	// particle tick and glow frame hold ids 1 and 2
	m, _ = update(t, m, TimerMsg{ID: 3})
	assert.Equal(t, scene.TierMobile, f.opts.Classifier.Tier())
	assert.Equal(t, scene.VariantAnimated, m.Background().Variant(), "no hot swap")

	m = press(t, m, "R")
	assert.Equal(t, scene.VariantStatic, m.Background().Variant())
	assert.Zero(t, f.opts.Scheduler.Pending())
}

func TestMissingSectionIsSkipped(t *testing.T) {
	cfg := config.Default()
	cfg.Sections = append(cfg.Sections[:3:3], cfg.Sections[4])
	f, m := newFixture(t, withConfig(cfg))

	assert.Equal(t, 4, f.opts.Detector.Registered())
	m = press(t, m, "4")
	assert.Equal(t, scene.SectionHome, f.opts.Navigation.Current())
	require.NotNil(t, m.alert)
	assert.Equal(t, components.AlertVariantWarning, m.alert.Variant())
	assert.NotContains(t, m.View(), "Experience")
}

func TestMouseMovesGlowTarget(t *testing.T) {
	_, m := newFixture(t)
	animated := m.Background().(*scene.AnimatedBackground)

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	assert.Equal(t, ports.Point{X: 105, Y: 90}, animated.Glow().Target())
	_ = m
}

func TestQuitClosesBackground(t *testing.T) {
	f, m := newFixture(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Zero(t, f.opts.Scheduler.Pending())
	assert.Zero(t, f.opts.Pointer.Subscribers())
	assert.Empty(t, m.View())

	m, _ = update(t, m, TimerMsg{ID: 1})
	assert.Equal(t, 1, f.opts.Scheduler.Stale())
}

func TestViewFillsTerminal(t *testing.T) {
	_, m := newFixture(t)

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 30)
	assert.Contains(t, lines[0], "Home")
	assert.Contains(t, lines[0], "desktop · animated · dark")
	assert.Contains(t, view, "Hello there")
}

func TestLogPanelShowsRecentEntries(t *testing.T) {
	_, m := newFixture(t)

	m = press(t, m, "L")
	view := m.View()
	assert.Contains(t, view, "recent log")
	assert.Contains(t, view, "background mounted")

	m = press(t, m, "L")
	assert.NotContains(t, m.View(), "recent log")
}

func TestHelpToggle(t *testing.T) {
	_, m := newFixture(t)
	m = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "remount")
}

// findMsg runs cmd, expanding batches, until a message of type T appears.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case T:
			return msg
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	require.Failf(t, "message not found", "%T", zero)
	return zero
}
