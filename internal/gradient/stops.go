package gradient

import (
	"fmt"
	"math"
	"slices"

	"github.com/jmylchreest/huekit/internal/colour"
)

const (
	newStopColor = "#888888"
	newStopStep  = 20
)

// AddStop appends a grey stop 20% past the last stop, capped at 100.
func AddStop(g Gradient) (Gradient, error) {
	if len(g.Stops) >= MaxStops {
		return g, ErrTooManyStops
	}
	pos := 0.0
	if n := len(g.Stops); n > 0 {
		pos = min(g.Stops[n-1].Position+newStopStep, 100)
	}
	out := g.Clone()
	out.Stops = append(out.Stops, Stop{Color: newStopColor, Position: pos})
	return out, nil
}

// RemoveStop drops stop i, keeping at least MinStops.
func RemoveStop(g Gradient, i int) (Gradient, error) {
	if err := checkIndex(g, i); err != nil {
		return g, err
	}
	if len(g.Stops) <= MinStops {
		return g, ErrTooFewStops
	}
	out := g.Clone()
	out.Stops = slices.Delete(out.Stops, i, i+1)
	return out, nil
}

// SetStopColor recolours stop i.
func SetStopColor(g Gradient, i int, hex string) (Gradient, error) {
	if err := checkIndex(g, i); err != nil {
		return g, err
	}
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return g, err
	}
	out := g.Clone()
	out.Stops[i].Color = rgb.Hex()
	return out, nil
}

// SetStopPosition moves stop i, clamping to [0, 100].
func SetStopPosition(g Gradient, i int, pos float64) (Gradient, error) {
	if err := checkIndex(g, i); err != nil {
		return g, err
	}
	if math.IsNaN(pos) {
		return g, ErrStopPosition
	}
	out := g.Clone()
	out.Stops[i].Position = max(0, min(pos, 100))
	return out, nil
}

// WithType returns g rendered with a different function.
func WithType(g Gradient, t Type) Gradient {
	out := g.Clone()
	out.Type = t
	return out
}

// WithDirection returns g pointing a different way.
func WithDirection(g Gradient, d Direction) Gradient {
	out := g.Clone()
	out.Direction = d
	return out
}

func checkIndex(g Gradient, i int) error {
	if i < 0 || i >= len(g.Stops) {
		return fmt.Errorf("%w: %d", ErrStopIndex, i)
	}
	return nil
}
