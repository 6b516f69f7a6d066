package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/folio/internal/tui"
)

// ErrNotTerminal is returned when the viewer is started without a TTY.
var ErrNotTerminal = errors.New("folio needs an interactive terminal; use `folio simulate` for headless runs")

// isTerminal is swapped in tests.
var isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }

type rootFlags struct {
	configPath string
	mode       string
	verbose    bool
	logFile    string
	noMouse    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "A scroll-synchronised portfolio in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file (default ./folio.yaml when present)")
	cmd.PersistentFlags().StringVar(&flags.mode, "mode", "", "Initial colour mode: light or dark")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append a JSON session log to this file")
	cmd.Flags().BoolVar(&flags.noMouse, "no-mouse", false, "Disable mouse tracking (the pointer glow needs it)")

	cmd.AddCommand(newSimulateCmd(flags))
	cmd.AddCommand(newPaletteCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runView(cmd *cobra.Command, flags *rootFlags) error {
	if !isTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("measure terminal: %w", err)
	}

	app, err := newAppContext(cmd.Context(), flags, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer app.Close()
	ctx, logger := app.CommandContext(cmd, "command.view")

	scheduler := tui.NewScheduler(nil)
	shared := app.NewScene(scheduler, logger)
	defer shared.Close()

	cells := tui.Cells{Width: float64(app.Config.Viewport.CellWidthPx), Height: float64(app.Config.Viewport.CellHeightPx)}
	model := tui.NewModel(tui.Options{
		Config:     app.Config,
		Logger:     logger,
		Publisher:  app.Publisher,
		Ring:       app.Ring,
		Detector:   shared.Detector,
		Classifier: shared.Classifier,
		Navigation: shared.Navigation,
		Theme:      shared.Theme,
		Scheduler:  scheduler,
		Pointer:    tui.NewMouseSource(cells, !flags.noMouse),
		Particles:  app.ParticleOptions(),
		Spring:     app.Config.Spring(),
		Width:      width,
		Height:     height,
	})

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !flags.noMouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	logger.Info(ctx, "launching viewer", "width", width, "height", height)

	final, err := tea.NewProgram(model, programOpts...).Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error(ctx, "viewer failed", "error", err)
		return fmt.Errorf("run viewer: %w", err)
	}
	logger.Info(ctx, "viewer closed")
	return nil
}
