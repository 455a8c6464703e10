package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// FrameExtents are the window manager decoration sizes around a client.
type FrameExtents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Outer converts a client rectangle in root coordinates to the rectangle of
// its frame.
func (e FrameExtents) Outer(x, y, width, height int) (int, int, int, int) {
	return x - e.Left, y - e.Top, width + e.Left + e.Right, height + e.Top + e.Bottom
}

// ClientSize returns the client size inside a frame of the given size.
func (e FrameExtents) ClientSize(width, height int) (int, int) {
	return max(width-e.Left-e.Right, 1), max(height-e.Top-e.Bottom, 1)
}

// GetFrameExtents returns the window decoration sizes, or zeros when the
// window manager does not publish _NET_FRAME_EXTENTS.
func (c *Connection) GetFrameExtents(windowID xproto.Window) FrameExtents {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil || extents == nil {
		return FrameExtents{}
	}
	return FrameExtents{
		Left:   int(extents.Left),
		Right:  int(extents.Right),
		Top:    int(extents.Top),
		Bottom: int(extents.Bottom),
	}
}

// FrameGeometry returns the outer frame rectangle of a client window in root
// coordinates.
func (c *Connection) FrameGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	x, y, width, height, err = c.WindowGeometry(windowID)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	x, y, width, height = c.GetFrameExtents(windowID).Outer(x, y, width, height)
	return x, y, width, height, nil
}

// MoveResizeFrame places the frame of a client at x, y with the given outer
// size. _NET_MOVERESIZE_WINDOW with NorthWest gravity takes the frame corner
// but the client size, so the extents are subtracted from the size only.
func (c *Connection) MoveResizeFrame(windowID xproto.Window, x, y, width, height int) error {
	w, h := c.GetFrameExtents(windowID).ClientSize(width, height)
	return c.MoveResizeWindow(windowID, x, y, w, h)
}
