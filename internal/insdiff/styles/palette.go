package styles

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/x/exp/charmtone"
)

// Palette holds the colors used to draw instruction diffs, as hex strings.
type Palette struct {
	Name         string
	Text         string
	Deemphasized string // line numbers, addresses
	Emphasized   string // symbols
	Mismatch     string // replaced opcodes
	Insert       string
	Delete       string
	Replace      string
	// Rotation colors branch arrows and mismatched arguments by index.
	Rotation []string
}

// RotationColor returns the rotation color for idx.
func (p Palette) RotationColor(idx int) string {
	if idx < 0 {
		idx = -idx
	}
	return p.Rotation[idx%len(p.Rotation)]
}

// Charm is the default palette.
var Charm = Palette{
	Name:         "charm",
	Text:         charmtone.Smoke.Hex(),
	Deemphasized: charmtone.Squid.Hex(),
	Emphasized:   charmtone.Zest.Hex(),
	Mismatch:     charmtone.Coral.Hex(),
	Insert:       charmtone.Guac.Hex(),
	Delete:       charmtone.Coral.Hex(),
	Replace:      charmtone.Malibu.Hex(),
	Rotation: []string{
		charmtone.Malibu.Hex(),
		charmtone.Cheeky.Hex(),
		charmtone.Guac.Hex(),
		charmtone.Zest.Hex(),
		charmtone.Charple.Hex(),
		charmtone.Julep.Hex(),
		charmtone.Butter.Hex(),
		charmtone.Zinc.Hex(),
	},
}

// VSCodeDark follows the VS Code dark theme.
var VSCodeDark = Palette{
	Name:         "vscode",
	Text:         "#D4D4D4",
	Deemphasized: "#858585",
	Emphasized:   "#DCDCAA",
	Mismatch:     "#F44747",
	Insert:       "#6A9955",
	Delete:       "#F44747",
	Replace:      "#569CD6",
	Rotation: []string{
		"#4FC1FF",
		"#CE9178",
		"#B5CEA8",
		"#C586C0",
		"#9CDCFE",
		"#EACD53",
		"#4EC9B0",
		"#D7BA7D",
	},
}

var palettes = map[string]Palette{
	Charm.Name:      Charm,
	VSCodeDark.Name: VSCodeDark,
}

// PaletteByName returns a palette by name. An empty name selects Charm.
func PaletteByName(name string) (Palette, error) {
	if name == "" {
		return Charm, nil
	}
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (available: %v)", name, PaletteNames())
	}
	return p, nil
}

// PaletteNames lists the palette names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
