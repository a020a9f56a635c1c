package gradient

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/harmony"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/random"
)

// ErrPaletteTooSmall is returned when a palette has fewer than two colours.
var ErrPaletteTooSmall = errors.New("palette needs at least 2 colours for a gradient")

const (
	randomStops       = 3
	maxPaletteStops   = 4
	saturationMin     = 60
	saturationMax     = 90
	lightnessMin      = 50
	lightnessMax      = 70
	paletteNameSuffix = " Gradient"
)

var randomDirections = []Direction{ToRight, ToBottom, ToBottomRight, ToTopRight}

// Builder creates gradients from an injected random source. Names and ids
// come from a palette generator sharing the same stream.
type Builder struct {
	rng   random.Source
	names *palette.Generator
}

// NewBuilder returns a builder over rng. A nil rng uses a randomly seeded source.
func NewBuilder(rng random.Source) *Builder {
	if rng == nil {
		rng = random.NewRandom()
	}
	return &Builder{rng: rng, names: palette.NewGenerator(rng)}
}

// Random builds a three stop linear gradient from an analogous or
// complementary harmony.
func (b *Builder) Random() Gradient {
	baseHue := b.rng.IntN(360)
	scheme := harmony.Complementary
	if random.CoinFlip(b.rng) {
		scheme = harmony.Analogous
	}
	hues := harmony.Hues(baseHue, randomStops, scheme, b.rng)
	positions := evenPositions(len(hues))

	stops := make([]Stop, len(hues))
	for i, h := range hues {
		s := random.Between(b.rng, saturationMin, saturationMax)
		l := random.Between(b.rng, lightnessMin, lightnessMax)
		stops[i] = Stop{Color: colour.HSLToHex(float64(h), s, l), Position: positions[i]}
	}

	return Gradient{
		ID:        b.names.ID(),
		Name:      b.names.Name(),
		Type:      Linear,
		Direction: random.Pick(b.rng, randomDirections),
		Stops:     stops,
	}
}

// FromPalette builds a linear gradient from the first four colours of p.
func (b *Builder) FromPalette(p palette.Palette) (Gradient, error) {
	if len(p.Colors) < MinStops {
		return Gradient{}, fmt.Errorf("%w: got %d", ErrPaletteTooSmall, len(p.Colors))
	}
	colors := p.Colors[:min(len(p.Colors), maxPaletteStops)]
	positions := evenPositions(len(colors))

	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = Stop{Color: c.Hex, Position: positions[i]}
	}

	return Gradient{
		ID:        b.names.ID(),
		Name:      p.Name + paletteNameSuffix,
		Type:      Linear,
		Direction: ToRight,
		Stops:     stops,
	}, nil
}
