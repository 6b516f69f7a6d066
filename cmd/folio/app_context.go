package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/folio/internal/config"
	cfgloader "github.com/alexisbeaulieu97/folio/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/folio/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/folio/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/folio/internal/logger"
	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
	"github.com/alexisbeaulieu97/folio/internal/theme"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config     *config.Config
	ConfigPath string
	Logger     ports.Logger
	Publisher  *events.LoggingPublisher

	// Ring buffers console logging while the terminal UI owns the screen.
	Ring    *logging.Ring
	console *logging.Logger
	session *logger.Logger
	level   logging.Level
}

// newAppContext loads configuration, applies flag overrides and builds the
// loggers. When buffered is set, console output is held in the ring and
// replayed by Close.
func newAppContext(ctx context.Context, flags *rootFlags, stderr io.Writer, buffered bool) (*AppContext, error) {
	loader := cfgloader.NewYAMLLoader(nil)
	cfg, path, err := loader.Resolve(ctx, flags.configPath, config.DefaultPath)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, flags); err != nil {
		return nil, err
	}

	console, err := logging.New(logging.Options{
		Writer:    stderr,
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Prefix:    "folio",
		Component: "cli",
	})
	if err != nil {
		return nil, fmt.Errorf("create console logger: %w", err)
	}

	app := &AppContext{
		Config:     cfg,
		ConfigPath: path,
		Ring:       logging.NewRing(0),
		console:    console,
		level:      logging.ParseLevel(cfg.Log.Level),
	}

	sinks := []ports.Logger{console}
	if buffered {
		sinks[0] = logging.NewRingLogger(app.Ring, app.level)
	}
	if cfg.Log.File != "" {
		session, err := logger.OpenFile(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		app.session = session
		sinks = append(sinks, session.WithFields(map[string]any{"config": path}))
	}
	app.Logger = logging.NewMulti(sinks...)
	app.Publisher = events.NewLoggingPublisher(app.Logger)

	app.Logger.Info(ctx, "configuration resolved", "source", describeConfig(path), "sections", len(cfg.Sections))
	return app, nil
}

func applyOverrides(cfg *config.Config, flags *rootFlags) error {
	if flags.mode != "" {
		mode, err := scene.ParseColorMode(flags.mode)
		if err != nil {
			return scene.NewError(scene.ErrCodeInvalidConfig, "invalid --mode", err, map[string]interface{}{"mode": flags.mode})
		}
		cfg.Theme.Mode = mode.String()
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}
	return config.ValidateConfig(cfg)
}

// CommandContext returns a session context and a logger scoped to a command.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := logging.NewSessionContext(cmd.Context())
	return ctx, a.Logger.With("component", component)
}

// Close replays buffered console output and closes the session log.
func (a *AppContext) Close() error {
	if a == nil {
		return nil
	}
	threshold := logging.LevelWarn
	if a.level == logging.LevelDebug {
		threshold = logging.LevelDebug
	}
	a.Ring.Flush(a.console, threshold)
	return a.session.Close()
}

// Scene holds the components shared by every background variant.
type Scene struct {
	Detector   *scene.SectionDetector
	Classifier *scene.Classifier
	Navigation *scene.NavigationHighlighter
	Theme      *theme.Store
}

// NewScene builds the shared detector, tier classifier, navigation and theme
// store on scheduler.
func (a *AppContext) NewScene(scheduler ports.Scheduler, log ports.Logger) *Scene {
	cfg := a.Config
	s := &Scene{
		Detector: scene.NewSectionDetector(scene.DetectorOptions{
			Strategy:  cfg.Strategy(),
			Logger:    log,
			Publisher: a.Publisher,
		}),
		Classifier: scene.NewClassifier(scene.ClassifierOptions{
			Breakpoints: cfg.Breakpoints(),
			Debounce:    cfg.Debounce(),
			Scheduler:   scheduler,
			Logger:      log,
			Publisher:   a.Publisher,
		}),
		Navigation: scene.NewNavigationHighlighter(scene.NavigationOptions{
			OverrideWindow: cfg.OverrideWindow(),
			Scheduler:      scheduler,
			Logger:         log,
			Publisher:      a.Publisher,
		}),
		Theme: theme.NewStore(cfg.Mode(), log),
	}
	s.Navigation.Attach(s.Detector)
	return s
}

// Close releases the shared components.
func (s *Scene) Close() {
	s.Navigation.Close()
	s.Classifier.Close()
	s.Detector.Close()
}

// ParticleOptions returns the configured particle field options. A zero
// seed draws particles from a random source.
func (a *AppContext) ParticleOptions() scene.ParticleOptions {
	opts := scene.ParticleOptions{
		Count:    a.Config.Particles.Count,
		Interval: a.Config.ParticleTick(),
	}
	if seed := a.Config.Particles.Seed; seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return opts
}

func describeConfig(path string) string {
	if strings.TrimSpace(path) == "" {
		return "defaults"
	}
	return path
}
