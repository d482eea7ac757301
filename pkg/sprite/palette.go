package sprite

import (
	"slices"
	"strings"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Palette is a named list of icon fill colors.
type Palette struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"` // hex strings, e.g. "#2d6a4f"
}

// Built-in palettes. "woodland" mirrors the greens of the reference
// infographic; the others are seasonal variations.
var palettes = map[string]Palette{
	"woodland": {
		Name:   "woodland",
		Colors: []string{"#1b4332", "#2d6a4f", "#40916c", "#52b788"},
	},
	"autumn": {
		Name:   "autumn",
		Colors: []string{"#7f4f24", "#bc6c25", "#dda15e", "#606c38"},
	},
	"winter": {
		Name:   "winter",
		Colors: []string{"#344e41", "#3a5a40", "#588157", "#a3b18a"},
	},
}

// DefaultPalette is used when no palette is configured.
const DefaultPalette = "woodland"

// PaletteByName looks up a built-in palette.
// Returns CONFIG_ERROR for unknown names.
func PaletteByName(name string) (Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeConfig, "unknown palette %q (valid: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

// PaletteNames lists the built-in palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
