package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// tailwindShades lists the 50..950 scale for every colour family used by
// the section palettes.
var tailwindShades = map[string][11]string{
	"slate":  {"#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8", "#64748b", "#475569", "#334155", "#1e293b", "#0f172a", "#020617"},
	"gray":   {"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"},
	"blue":   {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"},
	"sky":    {"#f0f9ff", "#e0f2fe", "#bae6fd", "#7dd3fc", "#38bdf8", "#0ea5e9", "#0284c7", "#0369a1", "#075985", "#0c4a6e", "#082f49"},
	"cyan":   {"#ecfeff", "#cffafe", "#a5f3fc", "#67e8f9", "#22d3ee", "#06b6d4", "#0891b2", "#0e7490", "#155e75", "#164e63", "#083344"},
	"green":  {"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"},
	"purple": {"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87", "#3b0764"},
	"pink":   {"#fdf2f8", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d", "#9d174d", "#831843", "#500724"},
}

var shadeIndex = map[int]int{50: 0, 100: 1, 200: 2, 300: 3, 400: 4, 500: 5, 600: 6, 700: 7, 800: 8, 900: 9, 950: 10}

// Stop is one colour stop of a gradient.
type Stop struct {
	Token string  `yaml:"token"`
	Hex   string  `yaml:"hex"`
	Alpha float64 `yaml:"alpha"`
}

// IsZero reports whether the stop is unset.
func (s Stop) IsZero() bool {
	return s.Token == ""
}

// TailwindHex returns the hex value for a "family-shade" token such as
// "blue-500".
func TailwindHex(family string, shade int) (string, bool) {
	shades, ok := tailwindShades[family]
	if !ok {
		return "", false
	}
	idx, ok := shadeIndex[shade]
	if !ok {
		return "", false
	}
	return shades[idx], true
}

// ParseStop resolves a colour token with optional opacity suffix, e.g.
// "blue-300/20", "purple-900/40", "black".
func ParseStop(token string) (Stop, error) {
	token = strings.TrimSpace(token)
	name, alphaPart, hasAlpha := strings.Cut(token, "/")
	alpha := 1.0
	if hasAlpha {
		pct, err := strconv.Atoi(alphaPart)
		if err != nil || pct < 0 || pct > 100 {
			return Stop{}, fmt.Errorf("invalid opacity in %q", token)
		}
		alpha = float64(pct) / 100
	}

	switch name {
	case "black":
		return Stop{Token: token, Hex: "#000000", Alpha: alpha}, nil
	case "white":
		return Stop{Token: token, Hex: "#ffffff", Alpha: alpha}, nil
	case "transparent":
		return Stop{Token: token, Hex: "#000000", Alpha: 0}, nil
	}

	idx := strings.LastIndex(name, "-")
	if idx <= 0 {
		return Stop{}, fmt.Errorf("invalid colour token %q", token)
	}
	shade, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return Stop{}, fmt.Errorf("invalid shade in %q", token)
	}
	hex, ok := TailwindHex(name[:idx], shade)
	if !ok {
		return Stop{}, fmt.Errorf("unknown colour %q", token)
	}
	return Stop{Token: token, Hex: hex, Alpha: alpha}, nil
}

// ParseGradient reads a utility class list such as
// "from-blue-950 via-slate-800 to-black".
func ParseGradient(classes string) (Gradient, error) {
	var g Gradient
	for _, class := range strings.Fields(classes) {
		prefix, token, ok := strings.Cut(class, "-")
		if !ok {
			return Gradient{}, fmt.Errorf("invalid gradient class %q", class)
		}
		stop, err := ParseStop(token)
		if err != nil {
			return Gradient{}, err
		}
		switch prefix {
		case "from":
			g.From = stop
		case "via":
			g.Via = stop
		case "to":
			g.To = stop
		default:
			return Gradient{}, fmt.Errorf("invalid gradient class %q", class)
		}
	}
	if g.From.IsZero() || g.To.IsZero() {
		return Gradient{}, fmt.Errorf("gradient %q needs from and to stops", classes)
	}
	return g, nil
}

func mustGradient(classes string) Gradient {
	g, err := ParseGradient(classes)
	if err != nil {
		panic(err)
	}
	return g
}
