package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	// Keybind must be initialized before any key grab is connected.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// CreateWakeWindow creates an unmapped input-only window that reports
// property changes to this connection. Wake uses it to get an event onto a
// blocked event reader.
func (c *Connection) CreateWakeWindow() (xproto.Window, error) {
	conn := c.XUtil.Conn()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(conn, 0, wid, c.Root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly, 0,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

// Wake touches a property on a wake window, which delivers a PropertyNotify
// to this connection.
func (c *Connection) Wake(wakeWindow xproto.Window) error {
	return xproto.ChangePropertyChecked(c.XUtil.Conn(), xproto.PropModeReplace,
		wakeWindow, xproto.AtomWmName, xproto.AtomString, 8, 0, nil).Check()
}
