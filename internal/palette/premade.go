package palette

import (
	"slices"

	"github.com/jmylchreest/huekit/internal/colour"
)

func curated(id, name string, category UseCase, colors ...colour.Color) Palette {
	return Palette{ID: id, Name: name, Category: category, Colors: colors}
}

var premade = []Palette{
	curated("sunset-vibes", "Sunset Vibes", Vibrant,
		colour.Color{Hex: "#FF6B6B", Name: "Coral"},
		colour.Color{Hex: "#FEC89A", Name: "Peach"},
		colour.Color{Hex: "#FFD93D", Name: "Gold"},
		colour.Color{Hex: "#6BCB77", Name: "Mint"},
		colour.Color{Hex: "#4D96FF", Name: "Sky"},
	),
	curated("ocean-depths", "Ocean Depths", Nature,
		colour.Color{Hex: "#0A2647", Name: "Deep Navy"},
		colour.Color{Hex: "#144272", Name: "Ocean"},
		colour.Color{Hex: "#205295", Name: "Azure"},
		colour.Color{Hex: "#2C74B3", Name: "Cerulean"},
		colour.Color{Hex: "#36AEE0", Name: "Sky Blue"},
	),
	curated("forest-morning", "Forest Morning", Nature,
		colour.Color{Hex: "#1A4D2E", Name: "Forest"},
		colour.Color{Hex: "#4F6F52", Name: "Sage"},
		colour.Color{Hex: "#739072", Name: "Moss"},
		colour.Color{Hex: "#A3B899", Name: "Lichen"},
		colour.Color{Hex: "#E9F5DB", Name: "Morning Dew"},
	),
	curated("berry-bliss", "Berry Bliss", Vibrant,
		colour.Color{Hex: "#9B2335", Name: "Raspberry"},
		colour.Color{Hex: "#C41E3A", Name: "Cardinal"},
		colour.Color{Hex: "#E75480", Name: "Pink"},
		colour.Color{Hex: "#FF85A2", Name: "Blush"},
		colour.Color{Hex: "#FFB6C1", Name: "Rose"},
	),
	curated("midnight-luxe", "Midnight Luxe", Branding,
		colour.Color{Hex: "#1A1A2E", Name: "Midnight"},
		colour.Color{Hex: "#16213E", Name: "Navy"},
		colour.Color{Hex: "#0F3460", Name: "Indigo"},
		colour.Color{Hex: "#E94560", Name: "Ruby"},
		colour.Color{Hex: "#F5F5F5", Name: "Pearl"},
	),
	curated("earthy-tones", "Earthy Tones", Interior,
		colour.Color{Hex: "#5C4033", Name: "Espresso"},
		colour.Color{Hex: "#8B7355", Name: "Taupe"},
		colour.Color{Hex: "#C4A77D", Name: "Sand"},
		colour.Color{Hex: "#DDD5B7", Name: "Cream"},
		colour.Color{Hex: "#F5F1E3", Name: "Ivory"},
	),
	curated("cotton-candy", "Cotton Candy", Pastel,
		colour.Color{Hex: "#FFD1DC", Name: "Pink"},
		colour.Color{Hex: "#E2CFF4", Name: "Lavender"},
		colour.Color{Hex: "#BFEFFF", Name: "Sky"},
		colour.Color{Hex: "#C1FFD7", Name: "Mint"},
		colour.Color{Hex: "#FFF5BA", Name: "Butter"},
	),
	curated("neon-nights", "Neon Nights", Vibrant,
		colour.Color{Hex: "#FF00FF", Name: "Magenta"},
		colour.Color{Hex: "#00FFFF", Name: "Cyan"},
		colour.Color{Hex: "#FF6EC7", Name: "Hot Pink"},
		colour.Color{Hex: "#7DF9FF", Name: "Electric Blue"},
		colour.Color{Hex: "#39FF14", Name: "Neon Green"},
	),
	curated("minimalist-mono", "Minimalist Mono", Minimal,
		colour.Color{Hex: "#111111", Name: "Onyx"},
		colour.Color{Hex: "#444444", Name: "Charcoal"},
		colour.Color{Hex: "#888888", Name: "Gray"},
		colour.Color{Hex: "#CCCCCC", Name: "Silver"},
		colour.Color{Hex: "#F8F8F8", Name: "Snow"},
	),
	curated("autumn-harvest", "Autumn Harvest", Nature,
		colour.Color{Hex: "#8B4513", Name: "Saddle"},
		colour.Color{Hex: "#CD853F", Name: "Peru"},
		colour.Color{Hex: "#DAA520", Name: "Goldenrod"},
		colour.Color{Hex: "#D2691E", Name: "Chocolate"},
		colour.Color{Hex: "#F4A460", Name: "Sandy"},
	),
	curated("tech-startup", "Tech Startup", UIDesign,
		colour.Color{Hex: "#6366F1", Name: "Indigo"},
		colour.Color{Hex: "#8B5CF6", Name: "Violet"},
		colour.Color{Hex: "#A855F7", Name: "Purple"},
		colour.Color{Hex: "#1E293B", Name: "Slate"},
		colour.Color{Hex: "#F8FAFC", Name: "Ghost"},
	),
	curated("vintage-rose", "Vintage Rose", Fashion,
		colour.Color{Hex: "#8E6B5E", Name: "Mocha"},
		colour.Color{Hex: "#C9ADA7", Name: "Dusty Rose"},
		colour.Color{Hex: "#E8D5D1", Name: "Blush"},
		colour.Color{Hex: "#F2E9E4", Name: "Cream"},
		colour.Color{Hex: "#9A8C98", Name: "Lavender Gray"},
	),
}

// Premade returns the curated palettes. The result is a deep copy.
func Premade() []Palette {
	out := make([]Palette, len(premade))
	for i, p := range premade {
		out[i] = p.Clone()
	}
	return out
}

// PremadeByID looks up a curated palette.
func PremadeByID(id string) (Palette, bool) {
	i := slices.IndexFunc(premade, func(p Palette) bool { return p.ID == id })
	if i < 0 {
		return Palette{}, false
	}
	return premade[i].Clone(), true
}

// Filter selects what Explore returns.
type Filter struct {
	// Curated limits the result to the premade list.
	Curated bool
	// UseCase, when set, keeps only palettes of that category.
	UseCase UseCase
}

// ParseFilter accepts "all", "curated" or a use case tag.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return Filter{}, nil
	case "curated":
		return Filter{Curated: true}, nil
	}
	u, err := ParseUseCase(s)
	if err != nil {
		return Filter{}, err
	}
	return Filter{UseCase: u}, nil
}

// GeneratedPerUseCase is how many fresh palettes Explore adds per use case.
const GeneratedPerUseCase = 2

// Explore returns the curated palettes followed by freshly generated ones,
// GeneratedPerUseCase for each use case, narrowed by the filter.
func Explore(g *Generator, f Filter) []Palette {
	out := Premade()
	if !f.Curated {
		for _, info := range useCases {
			if f.UseCase != UseCaseUnknown && info.UseCase != f.UseCase {
				continue
			}
			for range GeneratedPerUseCase {
				out = append(out, g.Generate(info.UseCase))
			}
		}
	}
	if f.UseCase != UseCaseUnknown {
		out = slices.DeleteFunc(out, func(p Palette) bool { return p.Category != f.UseCase })
	}
	return out
}
