package config

import (
	"time"

	"github.com/alexisbeaulieu97/folio/internal/scene"
)

// Config represents the full folio configuration document.
type Config struct {
	Log        LogSettings        `yaml:"log"`
	Viewport   ViewportSettings   `yaml:"viewport"`
	Detector   DetectorSettings   `yaml:"detector"`
	Particles  ParticleSettings   `yaml:"particles"`
	Pointer    PointerSettings    `yaml:"pointer"`
	Tier       TierSettings       `yaml:"tier"`
	Navigation NavigationSettings `yaml:"navigation"`
	Theme      ThemeSettings      `yaml:"theme"`
	Sections   []SectionContent   `yaml:"sections,omitempty" validate:"omitempty,dive"`
}

// LogSettings controls console and session logging.
type LogSettings struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=text json logfmt"`
	File   string `yaml:"file,omitempty"`
}

// ViewportSettings maps terminal cells to the pixel space the scene works in.
type ViewportSettings struct {
	CellWidthPx  int `yaml:"cell_width_px" validate:"min=1,max=64"`
	CellHeightPx int `yaml:"cell_height_px" validate:"min=1,max=128"`
}

// DetectorSettings selects the active-section band strategy.
type DetectorSettings struct {
	Strategy string  `yaml:"strategy" validate:"required,oneof=threshold centerline"`
	Buffer   float64 `yaml:"buffer" validate:"min=0,max=1"`
}

// ParticleSettings tunes the particle field.
type ParticleSettings struct {
	Count  int    `yaml:"count" validate:"min=25,max=30"`
	TickMS int    `yaml:"tick_ms" validate:"min=10,max=1000"`
	Seed   uint64 `yaml:"seed,omitempty"`
}

// PointerSettings tunes the glow spring.
type PointerSettings struct {
	Stiffness float64 `yaml:"stiffness" validate:"gt=0"`
	Damping   float64 `yaml:"damping" validate:"gt=0"`
	Mass      float64 `yaml:"mass" validate:"gt=0"`
	FPS       int     `yaml:"fps" validate:"min=1,max=240"`
}

// TierSettings holds the device tier breakpoints.
type TierSettings struct {
	DebounceMS   int     `yaml:"debounce_ms" validate:"min=0,max=5000"`
	TabletMinPx  float64 `yaml:"tablet_min_px" validate:"gt=0"`
	DesktopMinPx float64 `yaml:"desktop_min_px" validate:"gtfield=TabletMinPx"`
}

// NavigationSettings tunes the navigation highlighter.
type NavigationSettings struct {
	OverrideMS int `yaml:"override_ms" validate:"min=0,max=10000"`
}

// ThemeSettings sets the initial colour mode and the chrome accent.
type ThemeSettings struct {
	Mode   string `yaml:"mode" validate:"required,oneof=light dark"`
	Accent string `yaml:"accent" validate:"required,tailwind"`
}

// SectionContent is the page copy of one section.
type SectionContent struct {
	ID    string `yaml:"id" validate:"required,section"`
	Title string `yaml:"title,omitempty"`
	Body  string `yaml:"body" validate:"required"`
}

// Strategy returns the configured band strategy.
func (c *Config) Strategy() scene.BandStrategy {
	if c.Detector.Strategy == "centerline" {
		return scene.CenterlineStrategy{}
	}
	return scene.ThresholdStrategy{Buffer: c.Detector.Buffer}
}

// Breakpoints returns the configured tier breakpoints.
func (c *Config) Breakpoints() scene.Breakpoints {
	return scene.Breakpoints{TabletMin: c.Tier.TabletMinPx, DesktopMin: c.Tier.DesktopMinPx}
}

// Debounce returns the resize debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Tier.DebounceMS) * time.Millisecond
}

// ParticleTick returns the particle advancement interval.
func (c *Config) ParticleTick() time.Duration {
	return time.Duration(c.Particles.TickMS) * time.Millisecond
}

// OverrideWindow returns how long a navigation click holds the highlight.
func (c *Config) OverrideWindow() time.Duration {
	return time.Duration(c.Navigation.OverrideMS) * time.Millisecond
}

// Spring returns the glow spring parameters.
func (c *Config) Spring() scene.SpringParams {
	return scene.SpringParams{
		Stiffness: c.Pointer.Stiffness,
		Damping:   c.Pointer.Damping,
		Mass:      c.Pointer.Mass,
		FPS:       c.Pointer.FPS,
	}
}

// Mode returns the initial colour mode.
func (c *Config) Mode() scene.ColorMode {
	mode, err := scene.ParseColorMode(c.Theme.Mode)
	if err != nil {
		return scene.ModeDark
	}
	return mode
}

// Content returns the copy for section, falling back to an empty body.
func (c *Config) Content(section scene.Section) SectionContent {
	for _, content := range c.Sections {
		if parsed, err := scene.ParseSection(content.ID); err == nil && parsed == section {
			if content.Title == "" {
				content.Title = section.Title()
			}
			return content
		}
	}
	return SectionContent{ID: section.String(), Title: section.Title()}
}
