package platform

import "errors"

var (
	// ErrUnsupported is returned on platforms without a window-system backend.
	ErrUnsupported = errors.New("platform not supported")

	// ErrNoWindow is returned when a window handle no longer resolves.
	ErrNoWindow = errors.New("window is gone or invalid")
)

// WindowID is an opaque window handle. The OS owns the window; a WindowID is
// never released by this program.
type WindowID uintptr

// DisplayID is an opaque display handle.
type DisplayID uintptr

// Rect describes a rectangular region in virtual-screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectFromEdges builds a Rect from left/top/right/bottom edges.
func RectFromEdges(left, top, right, bottom int) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Display describes a physical display.
type Display struct {
	ID     DisplayID
	Name   string
	Bounds Rect
}

// WindowStyle holds the style bits the eligibility policy inspects.
type WindowStyle struct {
	HasCaption bool
	ToolWindow bool
}

// Direction is a horizontal move direction. Topology is one dimensional.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// WindowInspector answers the read-only window queries used to decide whether
// a window may be moved.
type WindowInspector interface {
	RootWindow(id WindowID) WindowID
	WindowStyle(id WindowID) (WindowStyle, error)
	WindowPID(id WindowID) (uint32, error)
	WindowRect(id WindowID) (Rect, error)
	CurrentPID() uint32
}

// Backend abstracts the window-system operations needed to move the
// foreground window between displays.
type Backend interface {
	WindowInspector

	Displays() ([]Display, error)
	DisplayForWindow(id WindowID) (Display, error)
	ForegroundWindow() WindowID
	MoveResize(id WindowID, bounds Rect) error
	Redraw(id WindowID) error

	// Close releases the connection to the window system.
	Close() error
}
