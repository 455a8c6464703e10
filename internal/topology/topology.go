// Package topology orders displays along the horizontal axis and resolves the
// neighbour of a display in a given direction.
package topology

import (
	"sort"

	"github.com/1broseidon/winomove/internal/platform"
)

// Ordered returns a copy of displays sorted by left edge. Displays sharing a
// left edge keep their discovery order.
func Ordered(displays []platform.Display) []platform.Display {
	ordered := make([]platform.Display, len(displays))
	copy(ordered, displays)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Bounds.X < ordered[j].Bounds.X
	})
	return ordered
}

// Adjacent returns the display immediately left or right of current.
//
// The walk is clamped: the leftmost display has no left neighbour and the
// rightmost has no right neighbour, so current is returned. If current is no
// longer part of the live topology (matched by exact bounds, e.g. it was just
// unplugged) current is returned unchanged, which makes the move a no-op.
func Adjacent(current platform.Display, dir platform.Direction, all []platform.Display) platform.Display {
	if len(all) == 0 {
		return current
	}

	ordered := Ordered(all)

	idx := -1
	for i := range ordered {
		if ordered[i].Bounds == current.Bounds {
			idx = i
			break
		}
	}
	if idx < 0 {
		return current
	}

	switch dir {
	case platform.DirLeft:
		if idx > 0 {
			idx--
		}
	case platform.DirRight:
		if idx < len(ordered)-1 {
			idx++
		}
	}

	return ordered[idx]
}
