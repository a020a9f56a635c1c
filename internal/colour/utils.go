package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned by ParseHex for anything other than six hex digits
// with an optional leading '#'.
var ErrInvalidHex = errors.New("invalid hex colour")

// ParseHex parses "#rrggbb" or "rrggbb" (case-insensitive).
func ParseHex(hex string) (RGB, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HexToRGB parses a hex colour permissively. Malformed input yields black
// rather than an error; use ParseHex when the caller needs to know.
func HexToRGB(hex string) RGB {
	rgb, err := ParseHex(hex)
	if err != nil {
		return RGB{}
	}
	return rgb
}

// NormaliseHex returns the lower-case "#rrggbb" form of a valid hex colour.
func NormaliseHex(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// RGBToHSL converts 8-bit channels to HSL with the hue rounded to whole
// degrees and saturation/lightness rounded to whole percent.
func RGBToHSL(r, g, b uint8) HSL {
	h, s, l := rgbToHSL(RGB{R: r, G: g, B: b})
	hue := int(math.Round(h))
	if hue >= 360 {
		hue -= 360
	}
	return HSL{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Saturation.
	if delta == 0 {
		s = 0
		h = 0
		return
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	// Hue.
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return
}

// HSLToHex converts HSL to a lower-case "#rrggbb" string.
// h is in degrees (any value, wrapped onto the wheel), s and l are percentages.
// Each channel is rounded and clamped to [0, 255].
func HSLToHex(h, s, l float64) string {
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100
	a := s * math.Min(l, 1-l)

	channel := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		if k < 0 {
			k += 12
		}
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return uint8(clamp(math.Round(255*v), 0, 255))
	}

	return RGB{R: channel(0), G: channel(8), B: channel(4)}.Hex()
}

// NormaliseHue wraps any integer angle onto [0, 360).
func NormaliseHue(h int) int {
	return ((h % 360) + 360) % 360
}

// HueDistance calculates the angular distance between two hues on the color wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
