package colour

import (
	"slices"

	"github.com/jmylchreest/huekit/internal/random"
)

// Category is a coarse hue bucket used to pick a human label.
type Category string

const (
	CategoryRed     Category = "red"
	CategoryOrange  Category = "orange"
	CategoryYellow  Category = "yellow"
	CategoryGreen   Category = "green"
	CategoryCyan    Category = "cyan"
	CategoryBlue    Category = "blue"
	CategoryPurple  Category = "purple"
	CategoryPink    Category = "pink"
	CategoryNeutral Category = "neutral"
)

// NeutralSaturation is the saturation (percent) below which a colour is
// named from the neutral list regardless of hue.
const NeutralSaturation = 10

var colourNames = map[Category][]string{
	CategoryRed:     {"Crimson", "Ruby", "Scarlet", "Coral", "Rose", "Cherry", "Vermillion", "Carmine"},
	CategoryOrange:  {"Amber", "Tangerine", "Peach", "Apricot", "Copper", "Rust", "Terracotta", "Sienna"},
	CategoryYellow:  {"Gold", "Honey", "Lemon", "Canary", "Saffron", "Mustard", "Sunflower", "Buttercup"},
	CategoryGreen:   {"Sage", "Olive", "Forest", "Mint", "Emerald", "Jade", "Moss", "Fern"},
	CategoryCyan:    {"Teal", "Aqua", "Turquoise", "Seafoam", "Cyan", "Caribbean", "Lagoon", "Marine"},
	CategoryBlue:    {"Azure", "Cobalt", "Navy", "Sapphire", "Sky", "Ocean", "Denim", "Indigo"},
	CategoryPurple:  {"Lavender", "Violet", "Plum", "Amethyst", "Grape", "Mauve", "Orchid", "Iris"},
	CategoryPink:    {"Blush", "Salmon", "Fuchsia", "Magenta", "Rose", "Peony", "Flamingo", "Bubblegum"},
	CategoryNeutral: {"Charcoal", "Slate", "Stone", "Cloud", "Ivory", "Sand", "Pearl", "Smoke"},
}

// CategoryForHue buckets a hue in degrees.
func CategoryForHue(h float64) Category {
	switch {
	case h < 15 || h >= 345:
		return CategoryRed
	case h < 45:
		return CategoryOrange
	case h < 70:
		return CategoryYellow
	case h < 160:
		return CategoryGreen
	case h < 200:
		return CategoryCyan
	case h < 260:
		return CategoryBlue
	case h < 300:
		return CategoryPurple
	default:
		return CategoryPink
	}
}

// CategoryFor returns the naming bucket for a hue and saturation (percent).
func CategoryFor(h, s float64) Category {
	if s < NeutralSaturation {
		return CategoryNeutral
	}
	return CategoryForHue(h)
}

// Names returns a copy of the label list for a category.
func Names(c Category) []string {
	return slices.Clone(colourNames[c])
}

// NameFor draws a random label for a colour from its bucket's list.
func NameFor(h, s float64, rng random.Source) string {
	return random.Pick(rng, colourNames[CategoryFor(h, s)])
}
