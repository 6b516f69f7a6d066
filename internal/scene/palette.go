package scene

// ParticleColorCount is the size of every palette's particle colour set.
const ParticleColorCount = 5

// Gradient is a two- or three-stop linear gradient. Via is zero when the
// gradient has only two stops.
type Gradient struct {
	From Stop `yaml:"from"`
	Via  Stop `yaml:"via,omitempty"`
	To   Stop `yaml:"to"`
}

// HasVia reports whether the gradient has a middle stop.
func (g Gradient) HasVia() bool {
	return !g.Via.IsZero()
}

// Stops returns the gradient stops in order.
func (g Gradient) Stops() []Stop {
	if g.HasVia() {
		return []Stop{g.From, g.Via, g.To}
	}
	return []Stop{g.From, g.To}
}

// Palette is the immutable colour bundle for one (Section, ColorMode) pair.
// It is a plain value: arrays rather than slices so copies never alias.
type Palette struct {
	Section   Section                    `yaml:"section"`
	Mode      ColorMode                  `yaml:"mode"`
	Primary   Gradient                   `yaml:"primary"`
	Accent1   Gradient                   `yaml:"accent1"`
	Accent2   Gradient                   `yaml:"accent2"`
	Particles [ParticleColorCount]string `yaml:"particles,flow"`
}

type paletteDef struct {
	primary, accent1, accent2 string
	particles                 [ParticleColorCount]string
}

// paletteDefs is shared by every rendering tier so animated and static
// backgrounds never diverge.
var paletteDefs = map[Section][2]paletteDef{
	SectionHome: {
		ModeDark: {
			primary:   "from-blue-950 via-slate-800 to-black",
			accent1:   "from-blue-500/10 to-purple-500/10",
			accent2:   "from-pink-500/10 to-blue-500/10",
			particles: [ParticleColorCount]string{"#3b82f6", "#8b5cf6", "#ec4899", "#06b6d4", "#059669"},
		},
		ModeLight: {
			primary:   "from-blue-100 via-blue-50 to-pink-50",
			accent1:   "from-blue-300/20 to-purple-300/20",
			accent2:   "from-pink-300/20 to-blue-300/20",
			particles: [ParticleColorCount]string{"#1d4ed8", "#7c3aed", "#db2777", "#0891b2", "#059669"},
		},
	},
	SectionSkills: {
		ModeDark: {
			primary:   "from-slate-900 via-blue-900 to-slate-900",
			accent1:   "from-blue-500/10 to-sky-500/10",
			accent2:   "from-cyan-500/10 to-blue-500/10",
			particles: [ParticleColorCount]string{"#60a5fa", "#38bdf8", "#22d3ee", "#06b6d4", "#10b981"},
		},
		ModeLight: {
			primary:   "from-blue-50 via-sky-50 to-cyan-50",
			accent1:   "from-blue-300/20 to-sky-300/20",
			accent2:   "from-cyan-300/20 to-blue-300/20",
			particles: [ParticleColorCount]string{"#3b82f6", "#0ea5e9", "#06b6d4", "#0891b2", "#059669"},
		},
	},
	SectionProjects: {
		ModeDark: {
			primary:   "from-slate-900 via-blue-900 to-purple-900/40",
			accent1:   "from-blue-500/10 to-purple-500/10",
			accent2:   "from-purple-500/10 to-blue-500/10",
			particles: [ParticleColorCount]string{"#60a5fa", "#a78bfa", "#c084fc", "#06b6d4", "#818cf8"},
		},
		ModeLight: {
			primary:   "from-slate-50 via-blue-50 to-purple-50",
			accent1:   "from-blue-300/20 to-purple-300/20",
			accent2:   "from-purple-300/20 to-blue-300/20",
			particles: [ParticleColorCount]string{"#3b82f6", "#8b5cf6", "#a855f7", "#0891b2", "#6366f1"},
		},
	},
	SectionExperience: {
		ModeDark: {
			primary:   "from-slate-900 via-slate-800 to-blue-900",
			accent1:   "from-slate-500/10 to-blue-500/10",
			accent2:   "from-blue-500/10 to-slate-500/10",
			particles: [ParticleColorCount]string{"#94a3b8", "#60a5fa", "#e2e8f0", "#06b6d4", "#f1f5f9"},
		},
		ModeLight: {
			primary:   "from-slate-50 via-blue-50/50 to-gray-50",
			accent1:   "from-slate-300/20 to-blue-300/20",
			accent2:   "from-blue-300/20 to-slate-300/20",
			particles: [ParticleColorCount]string{"#475569", "#3b82f6", "#64748b", "#0891b2", "#374151"},
		},
	},
	SectionContact: {
		ModeDark: {
			primary:   "from-blue-600 via-slate-900 to-blue-900",
			accent1:   "from-green-500/10 to-blue-500/10",
			accent2:   "from-blue-500/10 to-cyan-500/10",
			particles: [ParticleColorCount]string{"#34d399", "#60a5fa", "#22d3ee", "#10b981", "#38bdf8"},
		},
		ModeLight: {
			primary:   "from-green-50 via-blue-50 to-cyan-50",
			accent1:   "from-green-300/20 to-blue-300/20",
			accent2:   "from-blue-300/20 to-cyan-300/20",
			particles: [ParticleColorCount]string{"#10b981", "#3b82f6", "#06b6d4", "#059669", "#0ea5e9"},
		},
	},
}

// palettes is computed once; Resolve hands out copies.
var palettes = buildPalettes()

func buildPalettes() map[Section][2]Palette {
	table := make(map[Section][2]Palette, len(paletteDefs))
	for section, modes := range paletteDefs {
		var entry [2]Palette
		for _, mode := range []ColorMode{ModeDark, ModeLight} {
			def := modes[mode]
			entry[mode] = Palette{
				Section:   section,
				Mode:      mode,
				Primary:   mustGradient(def.primary),
				Accent1:   mustGradient(def.accent1),
				Accent2:   mustGradient(def.accent2),
				Particles: def.particles,
			}
		}
		table[section] = entry
	}
	return table
}

// Resolve returns the palette for a section and colour mode. Unknown sections
// resolve to the home palette and unknown modes to dark.
func Resolve(section Section, mode ColorMode) Palette {
	entry, ok := palettes[section]
	if !ok {
		entry = palettes[SectionHome]
	}
	if mode != ModeLight {
		mode = ModeDark
	}
	return entry[mode]
}

// AllPalettes returns every palette in section order, dark before light.
func AllPalettes() []Palette {
	result := make([]Palette, 0, len(palettes)*2)
	for _, section := range Sections() {
		result = append(result, Resolve(section, ModeDark), Resolve(section, ModeLight))
	}
	return result
}
