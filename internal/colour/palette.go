// Package colour provides the colour model used by huekit: hex, RGB and HSL
// conversions, WCAG contrast grading, and the curated colour name tables.
package colour

import (
	"fmt"
	"image/color"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HSL converts the colour to rounded HSL.
func (rgb RGB) HSL() HSL {
	return RGBToHSL(rgb.R, rgb.G, rgb.B)
}

// RGBA converts the colour to an opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// HSL is a hue/saturation/lightness triple with integer components.
// H is in degrees [0, 360), S and L are percentages [0, 100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the HSL triple as "hsl(h, s%, l%)".
func (hsl HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L)
}

// Hex converts the triple back to a hex string.
func (hsl HSL) Hex() string {
	return HSLToHex(float64(hsl.H), float64(hsl.S), float64(hsl.L))
}

// Color is a named swatch. Hex is canonical, Name is cosmetic.
type Color struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// RGB returns the colour's channels, or black if Hex is malformed.
func (c Color) RGB() RGB {
	return HexToRGB(c.Hex)
}

// HSL returns the colour's rounded HSL triple.
func (c Color) HSL() HSL {
	return c.RGB().HSL()
}

// String returns "Name (#rrggbb)".
func (c Color) String() string {
	if c.Name == "" {
		return c.Hex
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Hex)
}
