package palette

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/huekit/internal/harmony"
	"github.com/jmylchreest/huekit/internal/random"
)

// UseCase is the category a palette is generated for.
type UseCase int

const (
	// UseCaseUnknown is what unrecognised tags decode to. It generates with
	// the fallback configuration.
	UseCaseUnknown UseCase = iota
	Branding
	UIDesign
	Interior
	Fashion
	Nature
	Minimal
	Vibrant
	Pastel
)

// ErrUnknownUseCase is returned by ParseUseCase for unrecognised tags.
var ErrUnknownUseCase = errors.New("unknown use case")

// Info describes a use case for pickers.
type Info struct {
	UseCase     UseCase `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

var useCases = []Info{
	{Branding, "Branding", "✦", "Corporate & brand identity"},
	{UIDesign, "UI Design", "◐", "Apps & digital products"},
	{Interior, "Interior", "⬡", "Home & space design"},
	{Fashion, "Fashion", "◇", "Clothing & accessories"},
	{Nature, "Nature", "❋", "Earth-inspired tones"},
	{Minimal, "Minimal", "○", "Clean & sophisticated"},
	{Vibrant, "Vibrant", "◉", "Bold & energetic"},
	{Pastel, "Pastel", "◌", "Soft & dreamy"},
}

var useCaseTags = map[UseCase]string{
	UseCaseUnknown: "unknown",
	Branding:       "branding",
	UIDesign:       "ui-design",
	Interior:       "interior",
	Fashion:        "fashion",
	Nature:         "nature",
	Minimal:        "minimal",
	Vibrant:        "vibrant",
	Pastel:         "pastel",
}

// UseCases returns the catalogue of known use cases in display order.
func UseCases() []Info {
	out := make([]Info, len(useCases))
	copy(out, useCases)
	return out
}

func (u UseCase) String() string {
	if tag, ok := useCaseTags[u]; ok {
		return tag
	}
	return useCaseTags[UseCaseUnknown]
}

// ParseUseCase resolves a tag such as "ui-design".
func ParseUseCase(tag string) (UseCase, error) {
	for u, t := range useCaseTags {
		if t == tag && u != UseCaseUnknown {
			return u, nil
		}
	}
	return UseCaseUnknown, fmt.Errorf("%w: %q", ErrUnknownUseCase, tag)
}

// MarshalText implements encoding.TextMarshaler.
func (u UseCase) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown tags decode to
// UseCaseUnknown rather than failing.
func (u *UseCase) UnmarshalText(text []byte) error {
	parsed, err := ParseUseCase(string(text))
	if err != nil {
		*u = UseCaseUnknown
		return nil
	}
	*u = parsed
	return nil
}

// Range is a percentage band. Values are drawn uniformly from [Min, Max);
// Contains accepts both ends.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the band, inclusive at both ends.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) draw(rng random.Source) float64 {
	return random.Between(rng, r.Min, r.Max)
}

// Config drives generation for a use case. With two schemes a coin flip
// picks between them.
type Config struct {
	Schemes    []harmony.Scheme `json:"schemes"`
	Saturation Range            `json:"saturation"`
	Lightness  Range            `json:"lightness"`
}

func (c Config) scheme(rng random.Source) harmony.Scheme {
	if len(c.Schemes) > 1 && !random.CoinFlip(rng) {
		return c.Schemes[1]
	}
	return c.Schemes[0]
}

var configs = map[UseCase]Config{
	Branding: {Schemes: []harmony.Scheme{harmony.Complementary, harmony.Analogous}, Saturation: Range{50, 80}, Lightness: Range{35, 65}},
	UIDesign: {Schemes: []harmony.Scheme{harmony.Analogous}, Saturation: Range{40, 70}, Lightness: Range{40, 85}},
	Interior: {Schemes: []harmony.Scheme{harmony.Analogous}, Saturation: Range{20, 50}, Lightness: Range{45, 75}},
	Fashion:  {Schemes: []harmony.Scheme{harmony.Triadic, harmony.SplitComplementary}, Saturation: Range{45, 85}, Lightness: Range{35, 70}},
	Nature:   {Schemes: []harmony.Scheme{harmony.Analogous}, Saturation: Range{30, 60}, Lightness: Range{40, 70}},
	Minimal:  {Schemes: []harmony.Scheme{harmony.Analogous}, Saturation: Range{5, 25}, Lightness: Range{50, 95}},
	Vibrant:  {Schemes: []harmony.Scheme{harmony.Triadic}, Saturation: Range{75, 100}, Lightness: Range{45, 60}},
	Pastel:   {Schemes: []harmony.Scheme{harmony.Analogous}, Saturation: Range{40, 70}, Lightness: Range{75, 90}},
}

var fallbackConfig = Config{
	Schemes:    []harmony.Scheme{harmony.Analogous},
	Saturation: Range{40, 70},
	Lightness:  Range{40, 70},
}

// ConfigFor returns the generation settings for a use case.
func ConfigFor(u UseCase) Config {
	if c, ok := configs[u]; ok {
		return c
	}
	return fallbackConfig
}
