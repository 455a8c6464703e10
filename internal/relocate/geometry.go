package relocate

import "github.com/1broseidon/winomove/internal/platform"

// Offset is a window's top-left relative to its display origin.
type Offset struct {
	DX int
	DY int
}

// OffsetWithin returns the position of r relative to the origin of display.
func OffsetWithin(r platform.Rect, display platform.Rect) Offset {
	return Offset{DX: r.X - display.X, DY: r.Y - display.Y}
}

// Project places a window of the given size at offset from the origin of
// display. Size is carried over unchanged.
func Project(offset Offset, width, height int, display platform.Rect) platform.Rect {
	return platform.Rect{
		X:      display.X + offset.DX,
		Y:      display.Y + offset.DY,
		Width:  width,
		Height: height,
	}
}

// Translate maps r from the source display's frame onto the target display's
// frame, preserving relative position and size.
func Translate(r platform.Rect, source, target platform.Rect) platform.Rect {
	return Project(OffsetWithin(r, source), r.Width, r.Height, target)
}
