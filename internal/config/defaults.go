package config

import "github.com/alexisbeaulieu97/folio/internal/scene"

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "folio.yaml"

// Default returns a complete, valid configuration.
func Default() *Config {
	bp := scene.DefaultBreakpoints()
	spring := scene.DefaultSpringParams()
	return &Config{
		Log: LogSettings{Level: "info", Format: "text"},
		Viewport: ViewportSettings{
			CellWidthPx:  10,
			CellHeightPx: 20,
		},
		Detector: DetectorSettings{
			Strategy: "threshold",
			Buffer:   scene.DefaultDetectionBuffer,
		},
		Particles: ParticleSettings{
			Count:  scene.DefaultParticleCount,
			TickMS: int(scene.DefaultParticleTick.Milliseconds()),
		},
		Pointer: PointerSettings{
			Stiffness: spring.Stiffness,
			Damping:   spring.Damping,
			Mass:      spring.Mass,
			FPS:       spring.FPS,
		},
		Tier: TierSettings{
			DebounceMS:   int(scene.DefaultResizeDebounce.Milliseconds()),
			TabletMinPx:  bp.TabletMin,
			DesktopMinPx: bp.DesktopMin,
		},
		Navigation: NavigationSettings{
			OverrideMS: int(scene.DefaultOverrideWindow.Milliseconds()),
		},
		Theme: ThemeSettings{Mode: "dark", Accent: "blue-500"},
		Sections: []SectionContent{
			{ID: "home", Title: "Home", Body: "# Hello there\n\nSoftware engineer building fast, friendly interfaces for the web.\n\nScroll down or press **1-5** to jump between sections."},
			{ID: "skills", Title: "Skills", Body: "## Skills\n\n- **Languages:** TypeScript, JavaScript, Python, Go\n- **Frontend:** React, Next.js, Tailwind CSS\n- **Backend:** Node.js, Express, REST APIs\n- **Data:** MongoDB, Redis, SQL\n- **Tooling:** Git, Docker, AWS, CI/CD"},
			{ID: "projects", Title: "Projects", Body: "## Projects\n\n### Portfolio\nA scroll-synchronized site whose background follows the section you are reading.\n\n### Dashboards\nReal-time operational views for network infrastructure."},
			{ID: "experience", Title: "Experience", Body: "## Experience\n\n### Software Engineer\nProduct engineering across frontend and backend services.\n\n### Junior Developer\nInternal tools and customer-facing web applications."},
			{ID: "contact", Title: "Contact", Body: "## Contact\n\nLet's start a conversation.\n\nAlways up for a good conversation over coffee. Press **y** to copy a link to this section."},
		},
	}
}
