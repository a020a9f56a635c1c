package gradient

import (
	"errors"
	"slices"
	"testing"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/random"
)

func threeStops() Gradient {
	return Gradient{
		Type:      Linear,
		Direction: ToRight,
		Stops: []Stop{
			{Color: "#ff0000", Position: 100},
			{Color: "#00ff00", Position: 0},
			{Color: "#0000ff", Position: 50},
		},
	}
}

func TestCSS(t *testing.T) {
	tests := []struct {
		name string
		g    Gradient
		want string
	}{
		{
			name: "linear sorts stops",
			g:    threeStops(),
			want: "linear-gradient(to right, #00ff00 0%, #0000ff 50%, #ff0000 100%)",
		},
		{
			name: "radial ignores direction",
			g:    WithType(threeStops(), Radial),
			want: "radial-gradient(circle, #00ff00 0%, #0000ff 50%, #ff0000 100%)",
		},
		{
			name: "conic",
			g:    WithType(threeStops(), Conic),
			want: "conic-gradient(from 0deg, #00ff00 0%, #0000ff 50%, #ff0000 100%)",
		},
		{
			name: "unknown type falls back to linear",
			g:    WithDirection(WithType(threeStops(), Type("spiral")), ToTopLeft),
			want: "linear-gradient(to top left, #00ff00 0%, #0000ff 50%, #ff0000 100%)",
		},
		{
			name: "fractional positions",
			g: Gradient{Type: Linear, Direction: ToBottom, Stops: []Stop{
				{Color: "#111111", Position: 0},
				{Color: "#222222", Position: 33.333333333333336},
				{Color: "#333333", Position: 62.5},
			}},
			want: "linear-gradient(to bottom, #111111 0%, #222222 33.333333333333336%, #333333 62.5%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CSS(tt.g); got != tt.want {
				t.Errorf("CSS() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCSSDoesNotMutate(t *testing.T) {
	g := threeStops()
	_ = CSS(g)
	if g.Stops[0].Position != 100 {
		t.Error("CSS() reordered the caller's stops")
	}
}

func TestDeclaration(t *testing.T) {
	want := "background: linear-gradient(to right, #00ff00 0%, #0000ff 50%, #ff0000 100%);"
	if got := Declaration(threeStops()); got != want {
		t.Errorf("Declaration() = %s", got)
	}
}

func TestRandom(t *testing.T) {
	b := NewBuilder(random.New(12))
	for i := 0; i < 100; i++ {
		g := b.Random()
		if err := g.Validate(); err != nil {
			t.Fatalf("Random() invalid: %v", err)
		}
		if len(g.Stops) != 3 || g.Type != Linear {
			t.Fatalf("Random() = %+v, want three linear stops", g)
		}
		want := []float64{0, 50, 100}
		for j, s := range g.Stops {
			if s.Position != want[j] {
				t.Errorf("stop %d position = %v, want %v", j, s.Position, want[j])
			}
			if _, err := colour.ParseHex(s.Color); err != nil {
				t.Errorf("stop %d colour %q: %v", j, s.Color, err)
			}
		}
		if !slices.Contains(randomDirections, g.Direction) {
			t.Errorf("Random() direction = %q", g.Direction)
		}
		if g.Name == "" || g.ID == "" {
			t.Errorf("Random() missing name or id: %+v", g)
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := NewBuilder(random.New(5)).Random()
	b := NewBuilder(random.New(5)).Random()
	if CSS(a) != CSS(b) || a.ID != b.ID || a.Name != b.Name {
		t.Errorf("same seed produced different gradients: %+v vs %+v", a, b)
	}
}

func TestFromPalette(t *testing.T) {
	p, _ := palette.PremadeByID("sunset-vibes")
	g, err := NewBuilder(random.New(1)).FromPalette(p)
	if err != nil {
		t.Fatalf("FromPalette() error = %v", err)
	}
	if g.Name != "Sunset Vibes Gradient" || g.Direction != ToRight || g.Type != Linear {
		t.Errorf("FromPalette() = %+v", g)
	}
	want := "linear-gradient(to right, #FF6B6B 0%, #FEC89A 33.33333333333333%, #FFD93D 66.66666666666666%, #6BCB77 100%)"
	if got := CSS(g); got != want {
		t.Errorf("CSS(FromPalette()) = %s, want %s", got, want)
	}

	two := palette.Palette{Name: "Duo", Colors: p.Colors[:2]}
	if g, err := NewBuilder(random.New(1)).FromPalette(two); err != nil || len(g.Stops) != 2 || g.Stops[1].Position != 100 {
		t.Errorf("FromPalette(two) = %+v, %v", g, err)
	}

	one := palette.Palette{Colors: p.Colors[:1]}
	if _, err := NewBuilder(random.New(1)).FromPalette(one); !errors.Is(err, ErrPaletteTooSmall) {
		t.Errorf("FromPalette(one) error = %v, want ErrPaletteTooSmall", err)
	}
}

func TestAddStop(t *testing.T) {
	g := threeStops()
	g.Stops[2].Position = 90

	got, err := AddStop(g)
	if err != nil {
		t.Fatalf("AddStop() error = %v", err)
	}
	last := got.Stops[len(got.Stops)-1]
	if last.Color != "#888888" || last.Position != 100 {
		t.Errorf("AddStop() appended %+v, want #888888 at 100", last)
	}
	if len(g.Stops) != 3 {
		t.Error("AddStop() mutated its input")
	}

	got, _ = AddStop(Gradient{Stops: []Stop{{"#000000", 0}, {"#ffffff", 30}}})
	if got.Stops[2].Position != 50 {
		t.Errorf("AddStop() position = %v, want 50", got.Stops[2].Position)
	}

	full := got
	for len(full.Stops) < MaxStops {
		full, _ = AddStop(full)
	}
	if _, err := AddStop(full); !errors.Is(err, ErrTooManyStops) {
		t.Errorf("AddStop(full) error = %v, want ErrTooManyStops", err)
	}
}

func TestRemoveStop(t *testing.T) {
	got, err := RemoveStop(threeStops(), 1)
	if err != nil {
		t.Fatalf("RemoveStop() error = %v", err)
	}
	if len(got.Stops) != 2 || got.Stops[1].Color != "#0000ff" {
		t.Errorf("RemoveStop() = %+v", got.Stops)
	}
	if _, err := RemoveStop(got, 0); !errors.Is(err, ErrTooFewStops) {
		t.Errorf("RemoveStop(two) error = %v, want ErrTooFewStops", err)
	}
	if _, err := RemoveStop(threeStops(), 3); !errors.Is(err, ErrStopIndex) {
		t.Errorf("RemoveStop(3) error = %v, want ErrStopIndex", err)
	}
}

func TestSetStopColor(t *testing.T) {
	got, err := SetStopColor(threeStops(), 0, "ABCDEF")
	if err != nil || got.Stops[0].Color != "#abcdef" {
		t.Errorf("SetStopColor() = %+v, %v", got.Stops[0], err)
	}
	if _, err := SetStopColor(threeStops(), 0, "#abc"); !errors.Is(err, colour.ErrInvalidHex) {
		t.Errorf("SetStopColor(short) error = %v, want ErrInvalidHex", err)
	}
	if _, err := SetStopColor(threeStops(), -1, "#abcdef"); !errors.Is(err, ErrStopIndex) {
		t.Errorf("SetStopColor(-1) error = %v, want ErrStopIndex", err)
	}
}

func TestSetStopPosition(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 42, want: 42},
		{in: -10, want: 0},
		{in: 250, want: 100},
	}
	for _, tt := range tests {
		got, err := SetStopPosition(threeStops(), 1, tt.in)
		if err != nil {
			t.Fatalf("SetStopPosition(%v) error = %v", tt.in, err)
		}
		if got.Stops[1].Position != tt.want {
			t.Errorf("SetStopPosition(%v) = %v, want %v", tt.in, got.Stops[1].Position, tt.want)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("SetStopPosition(%v) left gradient invalid: %v", tt.in, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		stops []Stop
		want  error
	}{
		{name: "ok", stops: threeStops().Stops},
		{name: "one stop", stops: []Stop{{"#000000", 0}}, want: ErrTooFewStops},
		{name: "six stops", stops: make([]Stop, 6), want: ErrTooManyStops},
		{name: "position high", stops: []Stop{{"#000000", 0}, {"#ffffff", 101}}, want: ErrStopPosition},
		{name: "position low", stops: []Stop{{"#000000", -1}, {"#ffffff", 50}}, want: ErrStopPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Gradient{Stops: tt.stops}.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, err := ParseType("conic"); err != nil {
		t.Errorf("ParseType(conic) error = %v", err)
	}
	if _, err := ParseType("diamond"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("ParseType(diamond) error = %v", err)
	}
	if len(Directions()) != 8 {
		t.Errorf("Directions() = %d, want 8", len(Directions()))
	}
	if _, err := ParseDirection("to bottom left"); err != nil {
		t.Errorf("ParseDirection() error = %v", err)
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrDirection) {
		t.Errorf("ParseDirection(sideways) error = %v", err)
	}
}
