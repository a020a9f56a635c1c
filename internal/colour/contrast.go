package colour

import "math"

// Text colours returned by ContrastColor.
const (
	Black = "#000000"
	White = "#FFFFFF"
)

// ContrastColor picks black or white text for a swatch using perceptual
// brightness (0.299R + 0.587G + 0.114B). It deliberately does not use the
// WCAG luminance that ContrastRatio grades with.
func ContrastColor(hex string) string {
	if PerceivedBrightness(HexToRGB(hex)) > 0.5 {
		return Black
	}
	return White
}

// PerceivedBrightness returns the weighted channel average in [0, 1].
func PerceivedBrightness(rgb RGB) float64 {
	return (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(r, g, b uint8) float64 {
	return 0.2126*gammaCorrect(float64(r)/255) +
		0.7152*gammaCorrect(float64(g)/255) +
		0.0722*gammaCorrect(float64(b)/255)
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two hex colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(hex1, hex2 string) float64 {
	c1 := HexToRGB(hex1)
	c2 := HexToRGB(hex2)
	l1 := Luminance(c1.R, c1.G, c1.B)
	l2 := Luminance(c2.R, c2.G, c2.B)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Level is the normal-text WCAG grade of a contrast ratio.
type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "Fail"
)

// WCAG 2.0 contrast thresholds.
const (
	ThresholdAAA      = 7.0
	ThresholdAA       = 4.5
	ThresholdAALarge  = 3.0
	ThresholdAAALarge = 4.5
)

// WCAGLevel grades a ratio against the normal-text thresholds.
func WCAGLevel(ratio float64) Level {
	switch {
	case ratio >= ThresholdAAA:
		return LevelAAA
	case ratio >= ThresholdAA:
		return LevelAA
	default:
		return LevelFail
	}
}

// Rating reports each WCAG criterion independently.
type Rating struct {
	AA       bool `json:"aa"`
	AALarge  bool `json:"aaLarge"`
	AAA      bool `json:"aaa"`
	AAALarge bool `json:"aaaLarge"`
}

// Rate evaluates a ratio against the normal and large text thresholds.
func Rate(ratio float64) Rating {
	return Rating{
		AA:       ratio >= ThresholdAA,
		AALarge:  ratio >= ThresholdAALarge,
		AAA:      ratio >= ThresholdAAA,
		AAALarge: ratio >= ThresholdAAALarge,
	}
}

// ContrastReport is the result of checking a foreground against a background.
type ContrastReport struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	Level      Level   `json:"level"`
	Rating     Rating  `json:"rating"`
}

// Check grades foreground text on a background.
func Check(foreground, background string) ContrastReport {
	ratio := ContrastRatio(foreground, background)
	return ContrastReport{
		Foreground: foreground,
		Background: background,
		Ratio:      ratio,
		Level:      WCAGLevel(ratio),
		Rating:     Rate(ratio),
	}
}

// Swap returns the report with foreground and background exchanged.
// The ratio is symmetric so only the labels move.
func (r ContrastReport) Swap() ContrastReport {
	r.Foreground, r.Background = r.Background, r.Foreground
	return r
}
