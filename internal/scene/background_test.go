package scene

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/folio/internal/infrastructure/clock"
)

type mountFixture struct {
	clock      *clock.Manual
	pointer    *fakePointer
	theme      *fakeTheme
	detector   *SectionDetector
	classifier *Classifier
	publisher  *recordingPublisher
}

func newMountFixture(width float64) *mountFixture {
	f := &mountFixture{
		clock:     newTestClock(),
		pointer:   newFakePointer(),
		theme:     newFakeTheme(ModeDark),
		publisher: &recordingPublisher{},
	}
	f.detector = NewSectionDetector(DetectorOptions{})
	f.detector.Locate(pageLayout())
	f.classifier = NewClassifier(ClassifierOptions{Scheduler: f.clock})
	f.classifier.Measure(width)
	return f
}

func (f *mountFixture) options() MountOptions {
	return MountOptions{
		Detector:   f.detector,
		Theme:      f.theme,
		Classifier: f.classifier,
		Pointer:    f.pointer,
		Scheduler:  f.clock,
		Viewport:   Viewport{Width: f.classifier.Width(), Height: 800},
		Particles:  ParticleOptions{Rand: seededRand()},
		Publisher:  f.publisher,
	}
}

func TestMobileMountsStaticWithoutTimersOrPointer(t *testing.T) {
	t.Parallel()

	f := newMountFixture(375)
	bg := Mount(f.options())
	defer bg.Close()

	require.Equal(t, VariantStatic, bg.Variant())
	assert.Equal(t, 0, f.clock.EveryCalls())
	assert.Equal(t, 0, f.clock.Pending())
	assert.Equal(t, 0, f.pointer.Subscribes())
	assert.Equal(t, 0, f.publisher.Count("particles.regenerated"))

	frame := bg.Frame()
	assert.Nil(t, frame.Particles)
	assert.Nil(t, frame.Glow)
	require.Len(t, frame.Blobs, 4)
	assert.Equal(t, 0.3, frame.Blobs[0].Opacity)
	assert.Equal(t, 0.25, frame.Blobs[1].Opacity)
}

func TestStaticFollowsSectionAndMode(t *testing.T) {
	t.Parallel()

	f := newMountFixture(375)
	bg := Mount(f.options())
	defer bg.Close()

	f.detector.Update(1000, 800)
	f.theme.Set(ModeLight)

	frame := bg.Frame()
	assert.Equal(t, SectionSkills, frame.Section)
	assert.Equal(t, ModeLight, frame.Mode)
	assert.Equal(t, Resolve(SectionSkills, ModeLight), frame.Palette)
}

func TestDesktopAndTabletMountAnimated(t *testing.T) {
	t.Parallel()

	for _, width := range []float64{1440, 900} {
		f := newMountFixture(width)
		bg := Mount(f.options())

		require.Equal(t, VariantAnimated, bg.Variant(), "width %v", width)
		assert.Equal(t, 2, f.clock.EveryCalls())
		assert.Equal(t, 1, f.pointer.Active())

		frame := bg.Frame()
		require.NotNil(t, frame.Particles)
		assert.Equal(t, DefaultParticleCount, frame.Particles.Len())
		require.NotNil(t, frame.Glow)
		assert.Equal(t, []string{"particles.regenerated", "background.mounted"}, f.publisher.Types())

		bg.Close()
		bg.Close()
		assert.Equal(t, 0, f.clock.Pending())
		assert.Equal(t, 0, f.pointer.Active())
		assert.Equal(t, 0, f.detector.Subscribers())
		assert.Equal(t, 0, f.theme.subs.len())
	}
}

func TestAnimatedRegeneratesOnSectionAndModeChange(t *testing.T) {
	t.Parallel()

	f := newMountFixture(1440)
	bg := Mount(f.options())
	defer bg.Close()
	animated := bg.(*AnimatedBackground)

	first := animated.Particles().Snapshot()
	require.Equal(t, uint64(1), first.Generation)

	f.detector.Update(1000, 800)
	afterSection := animated.Particles().Snapshot()
	assert.Equal(t, uint64(2), afterSection.Generation)
	assert.Equal(t, SectionSkills, afterSection.Section)

	f.detector.Update(1100, 800)
	assert.Equal(t, uint64(2), animated.Particles().Snapshot().Generation, "same section keeps generation")

	f.theme.Set(ModeLight)
	afterMode := animated.Particles().Snapshot()
	assert.Equal(t, uint64(3), afterMode.Generation)
	assert.Equal(t, ModeLight, afterMode.Mode)
	assert.Equal(t, 1, f.publisher.Count("colormode.changed"))
	assert.Equal(t, 3, f.publisher.Count("particles.regenerated"))

	light := Resolve(SectionSkills, ModeLight)
	for _, p := range afterMode.Particles() {
		assert.Contains(t, light.Particles[:], p.Color)
	}
}

func TestAnimatedFrameAdvancesWithClock(t *testing.T) {
	t.Parallel()

	f := newMountFixture(1440)
	bg := Mount(f.options())
	defer bg.Close()

	f.clock.Advance(time.Second)
	frame := bg.Frame()
	assert.Equal(t, time.Second, frame.Elapsed)
	assert.Equal(t, uint64(20), frame.Particles.Version)

	f.pointer.Move(100, 100)
	f.clock.Advance(5 * time.Second)
	glow := bg.Frame().Glow
	assert.InDelta(t, 100, glow.X, 0.05)
	assert.InDelta(t, 100, glow.Y, 0.05)
}

func TestMountDegradesWhenAnimatedSetupFails(t *testing.T) {
	t.Parallel()

	f := newMountFixture(1440)
	f.pointer.fail = errors.New("pointer unavailable")
	bg := Mount(f.options())
	defer bg.Close()

	assert.Equal(t, VariantStatic, bg.Variant())
	assert.Equal(t, 0, f.clock.Pending(), "partial animated setup torn down")
	assert.Equal(t, 1, f.detector.Subscribers(), "only the static background listens")
	assert.Equal(t, 1, f.publisher.Count("background.degraded"))
	assert.Equal(t, 1, f.publisher.Count("background.mounted"))
}

func TestMountDegradesWithoutScheduler(t *testing.T) {
	t.Parallel()

	f := newMountFixture(1440)
	opts := f.options()
	opts.Scheduler = nil
	bg := Mount(opts)
	defer bg.Close()

	assert.Equal(t, VariantStatic, bg.Variant())
	assert.Equal(t, 0, f.pointer.Subscribes())
}

func TestMountDoesNotHotSwap(t *testing.T) {
	t.Parallel()

	f := newMountFixture(1440)
	bg := Mount(f.options())
	defer bg.Close()

	f.classifier.Measure(375)
	assert.Equal(t, TierMobile, f.classifier.Tier())
	assert.Equal(t, VariantAnimated, bg.Variant())
}

func TestAnimatedResizeKeepsGeneration(t *testing.T) {
	t.Parallel()

	f := newMountFixture(1440)
	bg := Mount(f.options())
	defer bg.Close()

	before := bg.Frame().Particles
	bg.Resize(Viewport{Width: 1024, Height: 600})
	after := bg.Frame()
	assert.Equal(t, before.Generation, after.Particles.Generation)
	assert.Equal(t, Viewport{Width: 1024, Height: 600}, after.Viewport)
}

func TestDriftBlobs(t *testing.T) {
	t.Parallel()

	palette := Resolve(SectionHome, ModeDark)
	viewport := Viewport{Width: 1000, Height: 1000}
	rest := StaticBlobs(palette, viewport)

	start := DriftBlobs(palette, viewport, 0)
	for i := range rest {
		assert.Equal(t, rest[i].Center, start[i].Center)
	}
	assert.Equal(t, palette.Accent1, rest[0].Gradient)
	assert.Equal(t, palette.Accent2, rest[1].Gradient)

	half := DriftBlobs(palette, viewport, 10*time.Second)
	assert.InDelta(t, rest[0].Center.X+100, half[0].Center.X, 1e-9)
	assert.InDelta(t, rest[0].Center.Y+50, half[0].Center.Y, 1e-9)
	assert.InDelta(t, rest[0].Radius*1.1, half[0].Radius, 1e-9)

	full := DriftBlobs(palette, viewport, 20*time.Second)
	assert.InDelta(t, rest[0].Center.X, full[0].Center.X, 1e-9)

	delayed := DriftBlobs(palette, viewport, 4*time.Second)
	assert.Equal(t, rest[1].Center, delayed[1].Center, "secondary orb waits five seconds")

	spin := DriftBlobs(palette, viewport, 7500*time.Millisecond)
	assert.Equal(t, ShapeSquare, spin[2].Shape)
	assert.InDelta(t, 225, spin[2].Rotation, 1e-9)
}
