//go:build windows

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetAncestor              = user32.NewProc("GetAncestor")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procSetWindowPos             = user32.NewProc("SetWindowPos")
	procRedrawWindow             = user32.NewProc("RedrawWindow")
	procMonitorFromWindow        = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW          = user32.NewProc("GetMonitorInfoW")
	procEnumDisplayMonitors      = user32.NewProc("EnumDisplayMonitors")
)

const (
	gaRoot = 2

	gwlStyle   = -16
	gwlExStyle = -20

	swpNoZOrder      = 0x0004
	swpFrameChanged  = 0x0020
	monitorToNearest = 0x00000002

	rdwInvalidate   = 0x0001
	rdwErase        = 0x0004
	rdwAllChildren  = 0x0080
	rdwUpdateNow    = 0x0100
	rdwFrame        = 0x0400
	rdwFullRepaint  = rdwInvalidate | rdwErase | rdwFrame | rdwAllChildren | rdwUpdateNow
	cchDeviceName   = 32
	monitorInfoSize = uint32(unsafe.Sizeof(monitorInfoExW{}))
)

type rect32 struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

func (r rect32) toRect() Rect {
	return RectFromEdges(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

type monitorInfoExW struct {
	Size    uint32
	Monitor rect32
	Work    rect32
	Flags   uint32
	Device  [cchDeviceName]uint16
}

// WindowsBackend talks to user32 directly. Handles are passed through as
// opaque values and never closed.
type WindowsBackend struct {
	pid uint32
}

var _ Backend = (*WindowsBackend)(nil)

// Open returns the Win32 backend.
func Open() (Backend, error) {
	if err := procSetWindowPos.Find(); err != nil {
		return nil, fmt.Errorf("user32 unavailable: %w", err)
	}
	return &WindowsBackend{pid: windows.GetCurrentProcessId()}, nil
}

func (b *WindowsBackend) Close() error { return nil }

func (b *WindowsBackend) CurrentPID() uint32 { return b.pid }

func (b *WindowsBackend) ForegroundWindow() WindowID {
	r, _, _ := procGetForegroundWindow.Call()
	return WindowID(r)
}

func (b *WindowsBackend) RootWindow(id WindowID) WindowID {
	r, _, _ := procGetAncestor.Call(uintptr(id), gaRoot)
	return WindowID(r)
}

// WindowStyle reads the style words. GetWindowLongW returns 0 both for a
// failed call and for a window with no style bits, and both mean the window
// is not movable, so 0 is taken at face value.
func (b *WindowsBackend) WindowStyle(id WindowID) (WindowStyle, error) {
	return decodeWin32Style(windowLong(id, gwlStyle), windowLong(id, gwlExStyle)), nil
}

func windowLong(id WindowID, index int32) uint32 {
	r, _, _ := procGetWindowLongW.Call(uintptr(id), uintptr(index))
	return uint32(r)
}

func (b *WindowsBackend) WindowPID(id WindowID) (uint32, error) {
	var pid uint32
	r, _, err := procGetWindowThreadProcessId.Call(uintptr(id), uintptr(unsafe.Pointer(&pid)))
	if r == 0 {
		return 0, fmt.Errorf("GetWindowThreadProcessId: %w", err)
	}
	return pid, nil
}

func (b *WindowsBackend) WindowRect(id WindowID) (Rect, error) {
	var rc rect32
	r, _, err := procGetWindowRect.Call(uintptr(id), uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return Rect{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return rc.toRect(), nil
}

func (b *WindowsBackend) MoveResize(id WindowID, bounds Rect) error {
	r, _, err := procSetWindowPos.Call(
		uintptr(id),
		0,
		uintptr(int32(bounds.X)),
		uintptr(int32(bounds.Y)),
		uintptr(int32(bounds.Width)),
		uintptr(int32(bounds.Height)),
		swpNoZOrder|swpFrameChanged,
	)
	if r == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

func (b *WindowsBackend) Redraw(id WindowID) error {
	r, _, err := procRedrawWindow.Call(uintptr(id), 0, 0, rdwFullRepaint)
	if r == 0 {
		return fmt.Errorf("RedrawWindow: %w", err)
	}
	return nil
}

func (b *WindowsBackend) DisplayForWindow(id WindowID) (Display, error) {
	hmon, _, _ := procMonitorFromWindow.Call(uintptr(id), monitorToNearest)
	if hmon == 0 {
		return Display{}, ErrNoWindow
	}
	return monitorInfo(hmon)
}

func monitorInfo(hmon uintptr) (Display, error) {
	mi := monitorInfoExW{Size: monitorInfoSize}
	r, _, err := procGetMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&mi)))
	if r == 0 {
		return Display{}, fmt.Errorf("GetMonitorInfoW: %w", err)
	}
	return Display{
		ID:     DisplayID(hmon),
		Name:   windows.UTF16ToString(mi.Device[:]),
		Bounds: mi.Monitor.toRect(),
	}, nil
}

// The enumeration callback is created once; each call collects into the
// slice published through enumTarget while enumMu is held.
var (
	enumMu       sync.Mutex
	enumTarget   *[]uintptr
	enumCallback = windows.NewCallback(func(hmon, hdc, rc, data uintptr) uintptr {
		*enumTarget = append(*enumTarget, hmon)
		return 1
	})
)

// Displays enumerates monitors in discovery order. Monitors whose info can no
// longer be read are skipped.
func (b *WindowsBackend) Displays() ([]Display, error) {
	enumMu.Lock()
	var handles []uintptr
	enumTarget = &handles
	r, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	enumTarget = nil
	enumMu.Unlock()
	if r == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors: %w", err)
	}

	displays := make([]Display, 0, len(handles))
	for _, hmon := range handles {
		d, err := monitorInfo(hmon)
		if err != nil {
			continue
		}
		displays = append(displays, d)
	}
	return displays, nil
}
