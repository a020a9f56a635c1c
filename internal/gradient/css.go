package gradient

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// CSS renders the gradient as a CSS image expression. Stops are sorted by
// position on a copy; g is not modified. Unknown types render as linear.
func CSS(g Gradient) string {
	stops := slices.Clone(g.Stops)
	slices.SortStableFunc(stops, func(a, b Stop) int {
		return cmp.Compare(a.Position, b.Position)
	})

	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.Color + " " + strconv.FormatFloat(s.Position, 'f', -1, 64) + "%"
	}
	list := strings.Join(parts, ", ")

	switch g.Type {
	case Radial:
		return "radial-gradient(circle, " + list + ")"
	case Conic:
		return "conic-gradient(from 0deg, " + list + ")"
	default:
		return "linear-gradient(" + string(g.Direction) + ", " + list + ")"
	}
}

// Declaration renders a complete CSS background declaration.
func Declaration(g Gradient) string {
	return "background: " + CSS(g) + ";"
}
