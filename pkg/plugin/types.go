package plugin

// PaletteData is the palette sent to exporter plugins.
type PaletteData struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Colours    []Colour       `json:"colours"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
	DryRun     bool           `json:"dry_run"`
}

// Colour is one palette entry with derived values precomputed for plugins.
type Colour struct {
	Index     int       `json:"index"`
	Hex       string    `json:"hex"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	RGB       RGBColour `json:"rgb"`
	HSL       HSLColour `json:"hsl"`
	Luminance float64   `json:"luminance"`
	IsLight   bool      `json:"is_light"`
}

// RGBColour represents an RGB colour.
type RGBColour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColour holds integer hue in degrees and saturation/lightness in percent.
type HSLColour struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ByRole returns the colour carrying the given role.
func (p PaletteData) ByRole(role string) (Colour, bool) {
	for _, c := range p.Colours {
		if c.Role == role {
			return c, true
		}
	}
	return Colour{}, false
}
