package colour

import (
	"strings"

	"github.com/muesli/termenv"
)

const defaultWidth = 8

// Swatch returns a solid block of the colour, width cells wide, rendered for
// the given terminal profile. Profiles without colour support yield spaces.
func Swatch(hex string, width int, profile termenv.Profile) string {
	if width <= 0 {
		width = defaultWidth
	}
	return profile.String(strings.Repeat(" ", width)).
		Background(profile.Color(hex)).
		String()
}

// SwatchWithText returns a colour block with text centred over it. The text
// colour comes from ContrastColor so it stays readable.
func SwatchWithText(hex, text string, width int, profile termenv.Profile) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Pad or truncate text to fit width.
	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return profile.String(displayText).
		Foreground(profile.Color(ContrastColor(hex))).
		Background(profile.Color(hex)).
		String()
}

// FormatColour renders a palette entry as "<swatch> #rrggbb  Name".
func FormatColour(c Color, profile termenv.Profile) string {
	var b strings.Builder
	if profile != termenv.Ascii {
		b.WriteString(Swatch(c.Hex, defaultWidth, profile))
		b.WriteString(" ")
	}
	b.WriteString(c.Hex)
	if c.Name != "" {
		b.WriteString("  ")
		b.WriteString(c.Name)
	}
	return b.String()
}
