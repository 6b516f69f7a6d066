package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerateBuildsFreshGeneration(t *testing.T) {
	t.Parallel()

	field := NewParticleField(ParticleOptions{Rand: seededRand()})
	viewport := Viewport{Width: 1280, Height: 800}

	first := field.Regenerate(Resolve(SectionHome, ModeDark), viewport)
	require.Equal(t, DefaultParticleCount, first.Len())
	assert.Equal(t, uint64(1), first.Generation)

	second := field.Regenerate(Resolve(SectionSkills, ModeDark), viewport)
	require.Equal(t, DefaultParticleCount, second.Len())
	assert.Equal(t, uint64(2), second.Generation)
	assert.Equal(t, SectionSkills, second.Section)

	ids := make(map[string]struct{})
	for _, p := range first.Particles() {
		ids[p.ID] = struct{}{}
	}
	require.Len(t, ids, DefaultParticleCount, "ids are unique within a generation")
	for _, p := range second.Particles() {
		_, reused := ids[p.ID]
		assert.False(t, reused, "particle %s carried over", p.ID)
	}
	assert.Same(t, second, field.Snapshot())
}

func TestRegenerateRespectsRanges(t *testing.T) {
	t.Parallel()

	for _, mode := range []ColorMode{ModeDark, ModeLight} {
		field := NewParticleField(ParticleOptions{Rand: seededRand(), Count: MinParticleCount})
		palette := Resolve(SectionProjects, mode)
		snap := field.Regenerate(palette, Viewport{Width: 1024, Height: 768})
		require.Equal(t, MinParticleCount, snap.Len())

		low, high := OpacityRange(mode)
		for _, p := range snap.Particles() {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.Less(t, p.X, 1024.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Less(t, p.Y, 768.0)
			assert.GreaterOrEqual(t, p.Size, MinParticleSize)
			assert.Less(t, p.Size, MaxParticleSize)
			assert.LessOrEqual(t, abs(p.VX), MaxParticleSpeed)
			assert.LessOrEqual(t, abs(p.VY), MaxParticleSpeed)
			assert.GreaterOrEqual(t, p.Opacity, low)
			assert.Less(t, p.Opacity, high)
			assert.Contains(t, palette.Particles[:], p.Color)
		}
	}
}

func TestAdvanceWrapsToroidally(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{
		Viewport: Viewport{Width: 100, Height: 50},
		particles: []Particle{
			{ID: "right", X: 99.9, Y: 10, VX: 0.25},
			{ID: "left", X: 0.1, Y: 10, VX: -0.25},
			{ID: "bottom", X: 10, Y: 49.9, VY: 0.25},
			{ID: "top", X: 10, Y: 0, VY: -0.25},
		},
	}

	next := Advance(snap)
	assert.InDelta(t, 0.15, next.At(0).X, 1e-9)
	assert.InDelta(t, 99.85, next.At(1).X, 1e-9)
	assert.InDelta(t, 0.15, next.At(2).Y, 1e-9)
	assert.InDelta(t, 49.75, next.At(3).Y, 1e-9)
	assert.Equal(t, snap.Version+1, next.Version)
	assert.InDelta(t, 99.9, snap.At(0).X, 1e-9, "previous snapshot untouched")
}

func TestParticlesStayInsideViewport(t *testing.T) {
	t.Parallel()

	field := NewParticleField(ParticleOptions{Rand: seededRand()})
	viewport := Viewport{Width: 37, Height: 23}
	field.Regenerate(Resolve(SectionContact, ModeLight), viewport)

	for i := 0; i < 2000; i++ {
		snap := field.Step()
		for j := 0; j < snap.Len(); j++ {
			p := snap.At(j)
			require.True(t, p.X >= 0 && p.X < viewport.Width, "x=%v", p.X)
			require.True(t, p.Y >= 0 && p.Y < viewport.Height, "y=%v", p.Y)
		}
	}
}

func TestParticleFieldTicksAtTwentyHertz(t *testing.T) {
	t.Parallel()

	clk := newTestClock()
	field := NewParticleField(ParticleOptions{Rand: seededRand(), Scheduler: clk})
	field.Regenerate(Resolve(SectionHome, ModeDark), Viewport{Width: 800, Height: 600})

	require.NoError(t, field.Start())
	require.NoError(t, field.Start())
	assert.Equal(t, []time.Duration{DefaultParticleTick}, clk.Intervals())

	clk.Advance(time.Second)
	assert.Equal(t, uint64(20), field.Snapshot().Version)

	field.Stop()
	field.Stop()
	assert.False(t, field.Running())
	assert.Equal(t, 0, clk.Pending())
}

func TestParticleFieldStartFailure(t *testing.T) {
	t.Parallel()

	field := NewParticleField(ParticleOptions{Scheduler: failingScheduler{newTestClock()}})
	err := field.Start()
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeSetup))
	assert.ErrorIs(t, err, errNoTimers)
	assert.False(t, field.Running())
}

func TestResizeKeepsGeneration(t *testing.T) {
	t.Parallel()

	field := NewParticleField(ParticleOptions{Rand: seededRand()})
	before := field.Regenerate(Resolve(SectionHome, ModeDark), Viewport{Width: 1920, Height: 1080})
	after := field.Resize(Viewport{Width: 100, Height: 100})

	assert.Equal(t, before.Generation, after.Generation)
	for i := 0; i < after.Len(); i++ {
		assert.Equal(t, before.At(i).ID, after.At(i).ID)
		assert.Less(t, after.At(i).X, 100.0)
		assert.Less(t, after.At(i).Y, 100.0)
	}
}

func TestRegeneratePublishesEvent(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	field := NewParticleField(ParticleOptions{Rand: seededRand(), Publisher: pub})
	field.Regenerate(Resolve(SectionHome, ModeDark), Viewport{Width: 10, Height: 10})
	assert.Equal(t, 1, pub.Count("particles.regenerated"))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
