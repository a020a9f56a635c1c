// Package gradient builds linear, radial and conic gradients from random
// harmonies or existing palettes and renders them as CSS.
package gradient

import (
	"errors"
	"fmt"
	"slices"
)

// Stop bounds.
const (
	MinStops = 2
	MaxStops = 5
)

var (
	ErrTooManyStops = errors.New("gradient cannot have more than 5 stops")
	ErrTooFewStops  = errors.New("gradient needs at least 2 stops")
	ErrStopIndex    = errors.New("stop index out of range")
	ErrStopPosition = errors.New("stop position must be within [0, 100]")
	ErrUnknownType  = errors.New("unknown gradient type")
	ErrDirection    = errors.New("unknown gradient direction")
)

// Type is the CSS gradient function.
type Type string

const (
	Linear Type = "linear"
	Radial Type = "radial"
	Conic  Type = "conic"
)

// Types lists the supported gradient types.
func Types() []Type {
	return []Type{Linear, Radial, Conic}
}

// ParseType validates a type name.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if slices.Contains(Types(), t) {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Direction is a CSS linear-gradient direction keyword.
type Direction string

const (
	ToRight       Direction = "to right"
	ToLeft        Direction = "to left"
	ToBottom      Direction = "to bottom"
	ToTop         Direction = "to top"
	ToBottomRight Direction = "to bottom right"
	ToBottomLeft  Direction = "to bottom left"
	ToTopRight    Direction = "to top right"
	ToTopLeft     Direction = "to top left"
)

// Directions lists the eight supported directions.
func Directions() []Direction {
	return []Direction{ToRight, ToLeft, ToBottom, ToTop, ToBottomRight, ToBottomLeft, ToTopRight, ToTopLeft}
}

// ParseDirection validates a direction keyword.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if slices.Contains(Directions(), d) {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrDirection, s)
}

// Stop is a colour at a percentage along the gradient.
type Stop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Gradient describes a CSS gradient. Direction only applies to Linear.
// Stops are kept in the order they were added; rendering sorts a copy.
type Gradient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Direction Direction `json:"direction"`
	Stops     []Stop    `json:"stops"`
}

// Validate checks the stop count and positions.
func (g Gradient) Validate() error {
	switch {
	case len(g.Stops) < MinStops:
		return fmt.Errorf("%w: got %d", ErrTooFewStops, len(g.Stops))
	case len(g.Stops) > MaxStops:
		return fmt.Errorf("%w: got %d", ErrTooManyStops, len(g.Stops))
	}
	for i, s := range g.Stops {
		if s.Position < 0 || s.Position > 100 {
			return fmt.Errorf("stop %d: %w: %v", i, ErrStopPosition, s.Position)
		}
	}
	return nil
}

// Clone returns a copy with its own stop storage.
func (g Gradient) Clone() Gradient {
	g.Stops = slices.Clone(g.Stops)
	return g
}

// evenPositions spreads n stops across [0, 100].
func evenPositions(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(n-1) * 100
	}
	return out
}
