package scene

import (
	"fmt"
	"strings"
)

// Section identifies one named scrollable region of the page.
type Section int

const (
	SectionHome Section = iota
	SectionSkills
	SectionProjects
	SectionExperience
	SectionContact
)

var sectionNames = [...]string{
	SectionHome:       "home",
	SectionSkills:     "skills",
	SectionProjects:   "projects",
	SectionExperience: "experience",
	SectionContact:    "contact",
}

// Sections returns the fixed document order of all sections.
func Sections() []Section {
	return []Section{SectionHome, SectionSkills, SectionProjects, SectionExperience, SectionContact}
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	return s >= SectionHome && s <= SectionContact
}

// String returns the anchor name of the section.
func (s Section) String() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// Anchor returns the in-page permalink for the section, e.g. "#skills".
func (s Section) Anchor() string {
	return "#" + s.String()
}

// Title returns the navigation label of the section.
func (s Section) Title() string {
	name := s.String()
	if !s.Valid() {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Next returns the following section, wrapping from contact back to home.
func (s Section) Next() Section {
	if !s.Valid() {
		return SectionHome
	}
	return (s + 1) % Section(len(sectionNames))
}

// ParseSection resolves an anchor name ("skills" or "#skills") to a Section.
func ParseSection(name string) (Section, error) {
	trimmed := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
	for i, candidate := range sectionNames {
		if candidate == trimmed {
			return Section(i), nil
		}
	}
	return SectionHome, fmt.Errorf("unknown section %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Section) UnmarshalText(text []byte) error {
	parsed, err := ParseSection(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ColorMode is the externally owned light/dark theme flag.
type ColorMode int

const (
	ModeDark ColorMode = iota
	ModeLight
)

// String returns "light" or "dark".
func (m ColorMode) String() string {
	if m == ModeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the opposite mode.
func (m ColorMode) Toggle() ColorMode {
	if m == ModeLight {
		return ModeDark
	}
	return ModeLight
}

// ParseColorMode resolves "light" or "dark".
func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	default:
		return ModeDark, fmt.Errorf("unknown color mode %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ColorMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
