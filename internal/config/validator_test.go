package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/folio/internal/scene"
	folioerrors "github.com/alexisbeaulieu97/folio/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, ValidateConfig(cfg))
	require.Equal(t, scene.DefaultBreakpoints(), cfg.Breakpoints())
	require.Equal(t, scene.DefaultSpringParams(), cfg.Spring())
	require.Equal(t, scene.DefaultResizeDebounce, cfg.Debounce())
	require.Equal(t, scene.DefaultOverrideWindow, cfg.OverrideWindow())
	require.Equal(t, scene.ThresholdStrategy{Buffer: 0.3}, cfg.Strategy())
	require.Len(t, cfg.Sections, len(scene.Sections()))
}

func TestValidateConfigFieldErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "trace" }, field: "log.level"},
		{name: "cell width", mutate: func(c *Config) { c.Viewport.CellWidthPx = 0 }, field: "viewport.cell_width_px"},
		{name: "strategy", mutate: func(c *Config) { c.Detector.Strategy = "nearest" }, field: "detector.strategy"},
		{name: "buffer", mutate: func(c *Config) { c.Detector.Buffer = 1.5 }, field: "detector.buffer"},
		{name: "tick", mutate: func(c *Config) { c.Particles.TickMS = 1 }, field: "particles.tick_ms"},
		{name: "fps", mutate: func(c *Config) { c.Pointer.FPS = 0 }, field: "pointer.fps"},
		{name: "mass", mutate: func(c *Config) { c.Pointer.Mass = 0 }, field: "pointer.mass"},
		{name: "breakpoint order", mutate: func(c *Config) { c.Tier.DesktopMinPx = 500 }, field: "tier.desktop_min_px"},
		{name: "mode", mutate: func(c *Config) { c.Theme.Mode = "sepia" }, field: "theme.mode"},
		{name: "accent", mutate: func(c *Config) { c.Theme.Accent = "mauve-500" }, field: "theme.accent"},
		{name: "section id", mutate: func(c *Config) { c.Sections[0].ID = "blog" }, field: "sections[0].id"},
		{name: "section body", mutate: func(c *Config) { c.Sections[2].Body = "" }, field: "sections[2].body"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)

			err := ValidateConfig(cfg)
			var valErr *folioerrors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			require.Equal(t, tc.field, valErr.Field)
		})
	}
}

func TestValidateConfigDuplicateSection(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Sections = append(cfg.Sections, SectionContent{ID: "#home", Body: "again"})

	err := ValidateConfig(cfg)
	var valErr *folioerrors.ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, "sections[5].id", valErr.Field)
}

func TestValidateConfigNil(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateConfig(nil))
}

func TestContentFallsBackToTitle(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Sections = nil
	content := cfg.Content(scene.SectionProjects)
	require.Equal(t, "Projects", content.Title)
	require.Empty(t, content.Body)
}

func TestSnakeCase(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"CellWidthPx": "cell_width_px",
		"TickMS":      "tick_ms",
		"FPS":         "fps",
		"Sections[3]": "sections[3]",
		"ID":          "id",
	} {
		require.Equal(t, want, snakeCase(in))
	}
}

func TestValidateConfigRuleMessages(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Log.Level = "loud"
	err := ValidateConfig(cfg)
	require.ErrorIs(t, err, folioerrors.ErrInvalidConfig)
	require.EqualError(t, err, "log.level: must be one of debug info warn error")

	var valErr *folioerrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "oneof", valErr.Rule)

	cfg = Default()
	cfg.Theme.Accent = "mauve-500"
	require.EqualError(t, ValidateConfig(cfg), `theme.accent: "mauve-500" is not a Tailwind colour such as blue-500`)
}
