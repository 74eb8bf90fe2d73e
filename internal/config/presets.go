package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/galleryvr/internal/layout"
)

// Preset is a named set of room parameters for one archetype.
type Preset struct {
	Radius  float64
	Spacing float64
	Height  float64
}

// Parameters the viewer uses for each archetype when a gallery does not
// override them.
var archetypePresets = map[layout.Archetype]Preset{
	layout.Circular: {Radius: 5.5, Spacing: 2, Height: 1.6},
	layout.Corridor: {Radius: 5.5, Spacing: 2, Height: 1.6},
	layout.Grid:     {Radius: 9.5, Spacing: 3, Height: 1.6},
}

var Presets = map[layout.Archetype]map[string]Preset{
	layout.Circular: {
		"standard": archetypePresets[layout.Circular],
		"intimate": {Radius: 3.5, Spacing: 2, Height: 1.5},
		"rotunda":  {Radius: 12, Spacing: 2, Height: 2.2},
	},
	layout.Corridor: {
		"standard": archetypePresets[layout.Corridor],
		"narrow":   {Radius: 2.5, Spacing: 2.5, Height: 1.6},
		"hall":     {Radius: 8, Spacing: 4, Height: 2},
	},
	layout.Grid: {
		"standard": archetypePresets[layout.Grid],
		"salon":    {Radius: 6, Spacing: 1.5, Height: 1.2},
		"mural":    {Radius: 14, Spacing: 4.5, Height: 1.6},
	},
}

// ArchetypePreset returns the standard parameters for a, falling back to the
// engine defaults for an unknown archetype.
func ArchetypePreset(a layout.Archetype) Preset {
	if p, ok := archetypePresets[a]; ok {
		return p
	}
	d := layout.StandardDefaults()
	return Preset{Radius: d.Radius, Spacing: d.Spacing, Height: d.Height}
}

func GetPreset(a layout.Archetype, name string) (Preset, error) {
	ps, ok := Presets[a]
	if !ok {
		return Preset{}, fmt.Errorf("%w: archetype %q", ErrUnknownPreset, a)
	}
	p, ok := ps[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets(a))
	}
	return p, nil
}

// ListPresets returns the preset names for a in sorted order, or nil when a
// has none.
func ListPresets(a layout.Archetype) []string {
	ps, ok := Presets[a]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset parameters onto l.
func (p Preset) Apply(l *LayoutConfig) {
	l.Radius = p.Radius
	l.Spacing = p.Spacing
	l.Height = p.Height
}
