package palette

import (
	"errors"
	"fmt"
)

// ErrLockCount is returned when a lock list does not match the palette size.
var ErrLockCount = errors.New("lock list must have one entry per colour")

// Locks marks palette positions that survive regeneration.
type Locks [Size]bool

// LocksFrom converts a slice of flags, as decoded from a request.
func LocksFrom(flags []bool) (Locks, error) {
	var l Locks
	if len(flags) != Size {
		return l, fmt.Errorf("%w: got %d", ErrLockCount, len(flags))
	}
	copy(l[:], flags)
	return l, nil
}

// Count returns the number of locked positions.
func (l Locks) Count() int {
	n := 0
	for _, locked := range l {
		if locked {
			n++
		}
	}
	return n
}

// Splice merges two palettes position by position: locked positions keep
// prev's colour, the rest take next's. Identity comes from prev; name and
// category from next.
func Splice(prev, next Palette, locks Locks) (Palette, error) {
	if len(prev.Colors) != Size || len(next.Colors) != Size {
		return Palette{}, ErrPaletteSize
	}
	out := next.Clone()
	out.ID = prev.ID
	for i, locked := range locks {
		if locked {
			out.Colors[i] = prev.Colors[i]
		}
	}
	return out, nil
}
