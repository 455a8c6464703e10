//go:build linux

package platform

import (
	"fmt"
	"os"

	"github.com/1broseidon/winomove/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend maps X11/EWMH state onto the Backend interface. Decoration and
// utility status come from _NET_WM_WINDOW_TYPE, ownership from
// WM_TRANSIENT_FOR, and displays from RandR CRTCs. Window rectangles are
// outer frame rectangles, like GetWindowRect on Windows.
type LinuxBackend struct {
	conn *x11.Connection
	pid  uint32
}

var _ Backend = (*LinuxBackend)(nil)

// Open connects to the X server named by $DISPLAY.
func Open() (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn, pid: uint32(os.Getpid())}, nil
}

// Close closes the X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
	return nil
}

func (b *LinuxBackend) CurrentPID() uint32 { return b.pid }

func (b *LinuxBackend) ForegroundWindow() WindowID {
	win, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0
	}
	return WindowID(win)
}

func (b *LinuxBackend) RootWindow(id WindowID) WindowID {
	if id == 0 {
		return 0
	}
	return WindowID(b.conn.TransientRoot(xproto.Window(id)))
}

func (b *LinuxBackend) WindowStyle(id WindowID) (WindowStyle, error) {
	class, err := b.conn.ClassifyWindow(xproto.Window(id))
	if err != nil {
		return WindowStyle{}, err
	}
	return WindowStyle{HasCaption: class.Decorated, ToolWindow: class.Utility}, nil
}

func (b *LinuxBackend) WindowPID(id WindowID) (uint32, error) {
	return b.conn.WindowPID(xproto.Window(id))
}

func (b *LinuxBackend) WindowRect(id WindowID) (Rect, error) {
	x, y, w, h, err := b.conn.FrameGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			// CRTC indexes start at zero; shift so a valid display is never 0.
			ID:   DisplayID(m.ID + 1),
			Name: m.Name,
			Bounds: Rect{
				X:      m.X,
				Y:      m.Y,
				Width:  m.Width,
				Height: m.Height,
			},
		})
	}
	return displays, nil
}

// DisplayForWindow picks the display with the largest overlap, falling back
// to the closest one, as MonitorFromWindow does with MONITOR_DEFAULTTONEAREST.
func (b *LinuxBackend) DisplayForWindow(id WindowID) (Display, error) {
	rect, err := b.WindowRect(id)
	if err != nil {
		return Display{}, err
	}
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	d, ok := NearestDisplay(rect, displays)
	if !ok {
		return Display{}, fmt.Errorf("no display for window 0x%x: %w", uint32(id), ErrNoWindow)
	}
	return d, nil
}

func (b *LinuxBackend) MoveResize(id WindowID, bounds Rect) error {
	return b.conn.MoveResizeFrame(xproto.Window(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) Redraw(id WindowID) error {
	return b.conn.ClearWindow(xproto.Window(id))
}
