package manager

import (
	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/palette"
	huekitplugin "github.com/jmylchreest/huekit/pkg/plugin"
)

// lightThreshold matches the perceptual brightness cut used for swatch text.
const lightThreshold = 0.5

// ToPaletteData flattens a palette into the wire form sent to plugins,
// precomputing RGB, HSL, WCAG luminance and the positional role.
func ToPaletteData(p palette.Palette, args map[string]any, dryRun bool) huekitplugin.PaletteData {
	data := huekitplugin.PaletteData{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category.String(),
		Colours:    make([]huekitplugin.Colour, len(p.Colors)),
		PluginArgs: args,
		DryRun:     dryRun,
	}

	for i, c := range p.Colors {
		rgb := c.RGB()
		hsl := rgb.HSL()
		role, _ := palette.RoleAt(i)
		data.Colours[i] = huekitplugin.Colour{
			Index:     i,
			Hex:       c.Hex,
			Name:      c.Name,
			Role:      string(role),
			RGB:       huekitplugin.RGBColour{R: rgb.R, G: rgb.G, B: rgb.B},
			HSL:       huekitplugin.HSLColour{H: hsl.H, S: hsl.S, L: hsl.L},
			Luminance: colour.Luminance(rgb.R, rgb.G, rgb.B),
			IsLight:   colour.PerceivedBrightness(rgb) > lightThreshold,
		}
	}
	return data
}

// FromPaletteData rebuilds a palette from its wire form. Unknown
// categories decode to palette.UseCaseUnknown.
func FromPaletteData(data huekitplugin.PaletteData) palette.Palette {
	p := palette.Palette{
		ID:     data.ID,
		Name:   data.Name,
		Colors: make([]colour.Color, len(data.Colours)),
	}
	_ = p.Category.UnmarshalText([]byte(data.Category))
	for i, c := range data.Colours {
		p.Colors[i] = colour.Color{Hex: c.Hex, Name: c.Name}
	}
	return p
}
