package palette

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/harmony"
	"github.com/jmylchreest/huekit/internal/random"
)

var (
	adjectives = []string{
		"Serene", "Bold", "Dreamy", "Crisp", "Warm", "Cool", "Mystic", "Sunset",
		"Ocean", "Forest", "Urban", "Nordic", "Tropical", "Desert", "Midnight",
		"Dawn", "Autumn", "Spring", "Winter", "Summer", "Cosmic", "Earthen",
	}
	nouns = []string{
		"Horizon", "Whisper", "Echo", "Wave", "Breeze", "Glow", "Shadow", "Light",
		"Mood", "Vibe", "Essence", "Spirit", "Soul", "Dream", "Vision", "Aura",
	}
)

// Generator draws palettes from an injected source. It holds no state beyond
// the source, so a Generator over a Locked source is safe for concurrent use.
type Generator struct {
	rng random.Source
}

// NewGenerator returns a generator over rng. A nil rng uses a randomly
// seeded source.
func NewGenerator(rng random.Source) *Generator {
	if rng == nil {
		rng = random.NewRandom()
	}
	return &Generator{rng: rng}
}

// Source returns the generator's random source, for builders that should
// share its stream.
func (g *Generator) Source() random.Source {
	return g.rng
}

// Generate builds a palette for the use case.
func (g *Generator) Generate(u UseCase) Palette {
	cfg := ConfigFor(u)
	baseHue := g.rng.IntN(360)
	name := g.Name()
	scheme := cfg.scheme(g.rng)

	hues := harmony.Hues(baseHue, Size, scheme, g.rng)
	colors := make([]colour.Color, 0, Size)
	for _, h := range hues {
		s, l := g.shade(cfg)
		colors = append(colors, colour.Color{
			Hex:  colour.HSLToHex(float64(h), s, l),
			Name: colour.NameFor(float64(h), s, g.rng),
		})
	}

	return Palette{
		ID:       g.ID(),
		Name:     name,
		Colors:   colors,
		Category: u,
	}
}

func (g *Generator) shade(cfg Config) (s, l float64) {
	s = cfg.Saturation.draw(g.rng)
	l = cfg.Lightness.draw(g.rng)
	return s, l
}

// Name returns a two word "<Adjective> <Noun>" label.
func (g *Generator) Name() string {
	return fmt.Sprintf("%s %s", random.Pick(g.rng, adjectives), random.Pick(g.rng, nouns))
}

// ID returns a version 4 UUID drawn from the generator's source, so seeded
// runs reproduce their ids.
func (g *Generator) ID() string {
	id, err := uuid.NewRandomFromReader(random.Reader(g.rng))
	if err != nil {
		// The reader never fails.
		return uuid.NewString()
	}
	return id.String()
}

// Regenerate draws a fresh palette for prev's category and keeps the locked
// colours from prev.
func (g *Generator) Regenerate(prev Palette, locks Locks) (Palette, error) {
	return Splice(prev, g.Generate(prev.Category), locks)
}
