// Package harmony generates sets of hues with fixed colour-wheel
// relationships.
package harmony

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/random"
)

// Scheme is a harmony rule. The zero value, Random, has no relationship
// between hues and is what unrecognised scheme names decode to.
type Scheme int

const (
	Random Scheme = iota
	Analogous
	Complementary
	Triadic
	SplitComplementary
)

// ErrUnknownScheme is returned by ParseScheme for unrecognised names.
var ErrUnknownScheme = errors.New("unknown harmony scheme")

var schemeNames = map[Scheme]string{
	Random:             "random",
	Analogous:          "analogous",
	Complementary:      "complementary",
	Triadic:            "triadic",
	SplitComplementary: "split-complementary",
}

// Schemes returns the schemes with a defined hue relationship.
func Schemes() []Scheme {
	return []Scheme{Analogous, Complementary, Triadic, SplitComplementary}
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return schemeNames[Random]
}

// ParseScheme resolves a scheme tag such as "split-complementary".
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return Random, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown tags decode to
// Random so documents written by newer versions still load.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		*s = Random
		return nil
	}
	*s = parsed
	return nil
}

// Step sizes, in degrees.
const (
	analogousStep     = 25
	complementaryStep = 15
	triadicDrift      = 15
	splitStep         = 30
)

// Hues returns count hues in [0, 360) related to base by scheme. rng is only
// consulted for Random; a nil rng falls back to a fresh non-deterministic
// source.
func Hues(base, count int, scheme Scheme, rng random.Source) []int {
	if count <= 0 {
		return []int{}
	}

	hues := make([]int, 0, max(count, 3))
	switch scheme {
	case Analogous:
		for i := range count {
			hues = append(hues, base+(i-count/2)*analogousStep)
		}
	case Complementary:
		hues = append(hues, base, base+180)
		for i := 2; i < count; i++ {
			step := complementaryStep
			if i%2 != 0 {
				step = -complementaryStep
			}
			hues = append(hues, base+step*(i/2))
		}
	case Triadic:
		for i := range count {
			hues = append(hues, base+(i%3)*120+(i/3)*triadicDrift)
		}
	case SplitComplementary:
		hues = append(hues, base, base+150, base+210)
		for i := 3; i < count; i++ {
			hues = append(hues, base+i*splitStep)
		}
	default:
		if rng == nil {
			rng = random.NewRandom()
		}
		for range count {
			hues = append(hues, rng.IntN(360))
		}
	}

	hues = hues[:count]
	for i, h := range hues {
		hues[i] = colour.NormaliseHue(h)
	}
	return hues
}
