package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/folio/internal/infrastructure/clock"
	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
	"github.com/alexisbeaulieu97/folio/internal/tui"
)

// simulationEpoch is the virtual start time of every simulation run so
// reports are reproducible.
var simulationEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	simulationFrame = 16 * time.Millisecond
	// pointerSettle is long enough for the default spring to come within a
	// pixel of the pointer.
	pointerSettle = 2 * time.Second
)

type simulateFlags struct {
	width       float64
	height      float64
	scrollTo    string
	steps       int
	ticks       int
	pointer     []float64
	toggleTheme bool
}

type transition struct {
	AtMS    int64         `yaml:"at_ms"`
	ScrollY float64       `yaml:"scroll_y"`
	Section scene.Section `yaml:"section"`
}

type navigationReport struct {
	State   string        `yaml:"state"`
	Current scene.Section `yaml:"current"`
}

type particleReport struct {
	Generation uint64 `yaml:"generation"`
	Version    uint64 `yaml:"version"`
	Count      int    `yaml:"count"`
}

type simulationReport struct {
	Config     string           `yaml:"config"`
	Viewport   scene.Viewport   `yaml:"viewport"`
	Tier       scene.DeviceTier `yaml:"tier"`
	Variant    scene.Variant    `yaml:"variant"`
	Mode       scene.ColorMode  `yaml:"mode"`
	Timeline   []transition     `yaml:"timeline"`
	Active     scene.Section    `yaml:"active"`
	Navigation navigationReport `yaml:"navigation"`
	Particles  *particleReport  `yaml:"particles,omitempty"`
	Glow       *ports.Point     `yaml:"glow,omitempty"`
	Events     map[string]int   `yaml:"events"`
}

func newSimulateCmd(root *rootFlags) *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scene headlessly on a virtual clock and print a report",
		Long: `Simulate lays the page out for a viewport given in pixels, mounts the
background for its device tier, clicks a navigation entry and scrolls there
frame by frame. The report lists every active-section transition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, root, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.width, "width", 1280, "Viewport width in pixels")
	cmd.Flags().Float64Var(&flags.height, "height", 800, "Viewport height in pixels")
	cmd.Flags().StringVar(&flags.scrollTo, "scroll-to", "contact", "Section to navigate to")
	cmd.Flags().IntVar(&flags.steps, "steps", 30, "Scroll frames used to reach the section")
	cmd.Flags().IntVar(&flags.ticks, "ticks", 10, "Particle ticks to run after scrolling")
	cmd.Flags().Float64SliceVar(&flags.pointer, "pointer", nil, "Move the pointer to x,y (pixels) after scrolling")
	cmd.Flags().BoolVar(&flags.toggleTheme, "toggle-theme", false, "Toggle the colour mode after scrolling")

	return cmd
}

func runSimulate(cmd *cobra.Command, root *rootFlags, flags *simulateFlags) error {
	viewport := scene.Viewport{Width: flags.width, Height: flags.height}
	if !viewport.Valid() {
		return scene.NewError(scene.ErrCodeInvalidViewport, "viewport must be positive", nil,
			map[string]interface{}{"width": flags.width, "height": flags.height})
	}
	if len(flags.pointer) != 0 && len(flags.pointer) != 2 {
		return scene.NewError(scene.ErrCodeInvalidConfig, "--pointer takes x,y", nil, nil)
	}
	target, err := scene.ParseSection(flags.scrollTo)
	if err != nil {
		return err
	}

	app, err := newAppContext(cmd.Context(), root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer app.Close()
	ctx, logger := app.CommandContext(cmd, "command.simulate")

	sched := clock.NewManual(simulationEpoch)
	shared := app.NewScene(sched, logger)
	defer shared.Close()

	cfg := app.Config
	cells := tui.Cells{Width: float64(cfg.Viewport.CellWidthPx), Height: float64(cfg.Viewport.CellHeightPx)}
	rows := max(int(viewport.Height/cells.Height), 1)
	page := tui.BuildPage(cfg.Sections, nil, tui.PageOptions{
		Width:   max(int(viewport.Width/cells.Width), 1),
		MinRows: rows,
		Cells:   cells,
	})
	shared.Detector.Locate(page)

	var timeline []transition
	record := func(section scene.Section) {
		timeline = append(timeline, transition{
			AtMS:    sched.Now().Sub(simulationEpoch).Milliseconds(),
			ScrollY: shared.Detector.ScrollY(),
			Section: section,
		})
	}
	stopRecording := shared.Detector.Subscribe(record)
	defer stopRecording()

	shared.Classifier.Measure(viewport.Width)
	pointer := tui.NewMouseSource(cells, true)
	bg := scene.Mount(scene.MountOptions{
		Detector:   shared.Detector,
		Theme:      shared.Theme,
		Classifier: shared.Classifier,
		Pointer:    pointer,
		Scheduler:  sched,
		Viewport:   viewport,
		Particles:  app.ParticleOptions(),
		Spring:     cfg.Spring(),
		Logger:     logger,
		Publisher:  app.Publisher,
	})
	defer bg.Close()

	shared.Detector.Update(0, viewport.Height)
	if len(timeline) == 0 {
		record(shared.Detector.Active())
	}

	if err := scrollTo(page, shared, sched, target, cells.Height, viewport.Height, max(flags.steps, 1)); err != nil {
		return err
	}
	sched.Advance(time.Duration(flags.ticks) * cfg.ParticleTick())

	if len(flags.pointer) == 2 {
		pointer.Move(ports.Point{X: flags.pointer[0], Y: flags.pointer[1]})
		sched.Advance(pointerSettle)
	}
	if flags.toggleTheme {
		shared.Theme.Toggle()
	}

	report := buildReport(app, bg, shared, viewport, timeline)
	logger.Info(ctx, "simulation finished", "transitions", len(timeline), "variant", report.Variant.String())

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// scrollTo clicks target and scrolls to it linearly over steps frames,
// clamped to the bottom of the page.
func scrollTo(page *tui.Page, shared *Scene, sched *clock.Manual, target scene.Section, cellHeight, viewportHeight float64, steps int) error {
	row, ok := page.Row(target)
	if !ok {
		return scene.NewError(scene.ErrCodeNotFound, "section is not on the page", nil,
			map[string]interface{}{"section": target.String()})
	}
	goal := float64(row) * cellHeight
	if bottom := float64(page.Rows())*cellHeight - viewportHeight; goal > bottom {
		goal = max(bottom, 0)
	}

	shared.Navigation.Click(target)
	start := shared.Detector.ScrollY()
	for i := 1; i <= steps; i++ {
		sched.Advance(simulationFrame)
		y := start + (goal-start)*float64(i)/float64(steps)
		shared.Detector.Update(y, viewportHeight)
		shared.Navigation.ObserveScroll(y)
	}
	return nil
}

func buildReport(app *AppContext, bg scene.Background, shared *Scene, viewport scene.Viewport, timeline []transition) simulationReport {
	frame := bg.Frame()
	report := simulationReport{
		Config:   describeConfig(app.ConfigPath),
		Viewport: viewport,
		Tier:     shared.Classifier.Tier(),
		Variant:  frame.Variant,
		Mode:     frame.Mode,
		Timeline: timeline,
		Active:   shared.Detector.Active(),
		Navigation: navigationReport{
			State:   shared.Navigation.State().String(),
			Current: shared.Navigation.Current(),
		},
		Glow:   frame.Glow,
		Events: app.Publisher.Counts(),
	}
	if frame.Particles != nil {
		report.Particles = &particleReport{
			Generation: frame.Particles.Generation,
			Version:    frame.Particles.Version,
			Count:      frame.Particles.Len(),
		}
	}
	return report
}
