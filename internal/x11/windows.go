package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// maxTransientDepth bounds WM_TRANSIENT_FOR walks; clients can create cycles.
const maxTransientDepth = 16

// WindowClass is the decoration class of a client derived from its EWMH type.
type WindowClass struct {
	Decorated bool
	Utility   bool
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// ClearWindow repaints the whole window by generating Expose events.
func (c *Connection) ClearWindow(windowID xproto.Window) error {
	return xproto.ClearAreaChecked(c.XUtil.Conn(), true, windowID, 0, 0, 0, 0).Check()
}

// ClassifyWindow reports whether a window carries a title bar and whether it
// is a utility surface (tool palette, toolbar, torn-off menu).
func (c *Connection) ClassifyWindow(windowID xproto.Window) (WindowClass, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return WindowClass{}, fmt.Errorf("failed to get window attributes: %w", err)
	}
	if attrs.OverrideRedirect {
		return WindowClass{}, nil
	}

	// A missing _NET_WM_WINDOW_TYPE means a normal window.
	types, _ := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	return classifyTypes(types), nil
}

// classifyTypes maps _NET_WM_WINDOW_TYPE values to a WindowClass. The first
// recognized type wins; no recognized type means a normal window.
func classifyTypes(types []string) WindowClass {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return WindowClass{Decorated: true}
		case "_NET_WM_WINDOW_TYPE_UTILITY",
			"_NET_WM_WINDOW_TYPE_TOOLBAR",
			"_NET_WM_WINDOW_TYPE_MENU":
			return WindowClass{Decorated: true, Utility: true}
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP",
			"_NET_WM_WINDOW_TYPE_POPUP_MENU",
			"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
			"_NET_WM_WINDOW_TYPE_COMBO",
			"_NET_WM_WINDOW_TYPE_DND":
			return WindowClass{}
		}
	}
	return WindowClass{Decorated: true}
}

// TransientRoot follows WM_TRANSIENT_FOR up to the top-level owner.
func (c *Connection) TransientRoot(windowID xproto.Window) xproto.Window {
	current := windowID
	for i := 0; i < maxTransientDepth; i++ {
		owner, err := icccm.WmTransientForGet(c.XUtil, current)
		if err != nil || owner == 0 || owner == c.Root || owner == current {
			return current
		}
		current = owner
	}
	return current
}

// WindowPID returns the _NET_WM_PID of a window.
func (c *Connection) WindowPID(windowID xproto.Window) (uint32, error) {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0, err
	}
	return uint32(pid), nil
}

// WindowGeometry returns the window geometry translated to root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// GetActiveWindow returns _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ModifierMask returns the live modifier state from the pointer query.
func (c *Connection) ModifierMask() (uint16, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, err
	}
	return pointer.Mask, nil
}
