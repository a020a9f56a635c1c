// Package palette builds five-colour palettes from a use case using the
// harmony rules, and carries the curated list and lock/splice helpers that
// callers use to iterate on a palette.
package palette

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/huekit/internal/colour"
)

// Size is the number of colours in every palette.
const Size = 5

var (
	// ErrPaletteSize is returned when a palette does not hold exactly Size colours.
	ErrPaletteSize = errors.New("palette must have exactly 5 colours")
	// ErrColourIndex is returned for an index outside the palette.
	ErrColourIndex = errors.New("colour index out of range")
)

// Role is the positional meaning of a palette colour in previews.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleDark      Role = "dark"
	RoleMuted     Role = "muted"
	RoleLight     Role = "light"
)

var roles = [Size]Role{RolePrimary, RoleSecondary, RoleDark, RoleMuted, RoleLight}

// Palette is an ordered set of named colours. Order is significant.
type Palette struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Colors   []colour.Color `json:"colors"`
	Category UseCase        `json:"category"`
}

// Hex returns the colour hexes in order.
func (p Palette) Hex() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex
	}
	return out
}

// RoleAt returns the role of the colour at index i.
func RoleAt(i int) (Role, bool) {
	if i < 0 || i >= Size {
		return "", false
	}
	return roles[i], true
}

// Roles maps each preview role to its colour. Palettes shorter than Size
// leave the trailing roles unset.
func (p Palette) Roles() map[Role]colour.Color {
	out := make(map[Role]colour.Color, Size)
	for i, c := range p.Colors {
		if i >= Size {
			break
		}
		out[roles[i]] = c
	}
	return out
}

// Validate checks the palette has Size colours with parseable hexes.
func (p Palette) Validate() error {
	if len(p.Colors) != Size {
		return fmt.Errorf("%w: got %d", ErrPaletteSize, len(p.Colors))
	}
	for i, c := range p.Colors {
		if _, err := colour.ParseHex(c.Hex); err != nil {
			return fmt.Errorf("colour %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a copy that shares no colour storage with p.
func (p Palette) Clone() Palette {
	p.Colors = append([]colour.Color(nil), p.Colors...)
	return p
}

// SetColor returns a copy of p with colour i replaced by hex. The colour
// keeps its name and position.
func SetColor(p Palette, i int, hex string) (Palette, error) {
	if i < 0 || i >= len(p.Colors) {
		return p, fmt.Errorf("%w: %d", ErrColourIndex, i)
	}
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return p, err
	}
	out := p.Clone()
	out.Colors[i].Hex = rgb.Hex()
	return out, nil
}

// Extracted wraps colours pulled from an image as a palette.
func Extracted(id string, colors []colour.Color) (Palette, error) {
	p := Palette{
		ID:       id,
		Name:     "Extracted Palette",
		Colors:   append([]colour.Color(nil), colors...),
		Category: Nature,
	}
	if len(p.Colors) != Size {
		return Palette{}, fmt.Errorf("%w: got %d", ErrPaletteSize, len(p.Colors))
	}
	return p, nil
}
