// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"sync"

	"github.com/1broseidon/winomove/internal/platform"
)

// Window is the fake state of a single window.
type Window struct {
	Root     platform.WindowID
	Style    platform.WindowStyle
	StyleErr error
	PID      uint32
	PIDErr   error
	Rect     platform.Rect
	RectErr  error
}

// Move records a MoveResize call.
type Move struct {
	ID     platform.WindowID
	Bounds platform.Rect
}

// Backend is a mutable fake window system. The zero value has no windows and
// no displays.
type Backend struct {
	mu sync.Mutex

	Windows    map[platform.WindowID]*Window
	Screens    []platform.Display
	ScreensErr error
	Foreground platform.WindowID
	PID        uint32

	// Current overrides DisplayForWindow when set, e.g. to simulate a
	// display that disappeared after it was looked up.
	Current *platform.Display

	MoveErr   error
	RedrawErr error

	Moves   []Move
	Redraws []platform.WindowID
}

var _ platform.Backend = (*Backend)(nil)

// NormalWindow returns a titled window owned by a foreign process.
func NormalWindow(r platform.Rect) *Window {
	return &Window{
		Style: platform.WindowStyle{HasCaption: true},
		PID:   4242,
		Rect:  r,
	}
}

// AddWindow registers a window and returns its id.
func (b *Backend) AddWindow(id platform.WindowID, w *Window) platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Windows == nil {
		b.Windows = make(map[platform.WindowID]*Window)
	}
	b.Windows[id] = w
	return id
}

// Rect returns the current rectangle of a window.
func (b *Backend) Rect(id platform.WindowID) platform.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	if w, ok := b.Windows[id]; ok {
		return w.Rect
	}
	return platform.Rect{}
}

func (b *Backend) window(id platform.WindowID) (*Window, error) {
	w, ok := b.Windows[id]
	if !ok {
		return nil, platform.ErrNoWindow
	}
	return w, nil
}

func (b *Backend) RootWindow(id platform.WindowID) platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if w, ok := b.Windows[id]; ok {
		return w.Root
	}
	return 0
}

func (b *Backend) WindowStyle(id platform.WindowID) (platform.WindowStyle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.window(id)
	if err != nil {
		return platform.WindowStyle{}, err
	}
	return w.Style, w.StyleErr
}

func (b *Backend) WindowPID(id platform.WindowID) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.window(id)
	if err != nil {
		return 0, err
	}
	return w.PID, w.PIDErr
}

func (b *Backend) WindowRect(id platform.WindowID) (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.window(id)
	if err != nil {
		return platform.Rect{}, err
	}
	if w.RectErr != nil {
		return platform.Rect{}, w.RectErr
	}
	return w.Rect, nil
}

func (b *Backend) CurrentPID() uint32 {
	return b.PID
}

func (b *Backend) Displays() ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ScreensErr != nil {
		return nil, b.ScreensErr
	}
	out := make([]platform.Display, len(b.Screens))
	copy(out, b.Screens)
	return out, nil
}

func (b *Backend) DisplayForWindow(id platform.WindowID) (platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Current != nil {
		return *b.Current, nil
	}
	w, err := b.window(id)
	if err != nil {
		return platform.Display{}, err
	}
	d, ok := platform.NearestDisplay(w.Rect, b.Screens)
	if !ok {
		return platform.Display{}, platform.ErrNoWindow
	}
	return d, nil
}

func (b *Backend) ForegroundWindow() platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Foreground
}

func (b *Backend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Moves = append(b.Moves, Move{ID: id, Bounds: bounds})
	if b.MoveErr != nil {
		return b.MoveErr
	}
	w, err := b.window(id)
	if err != nil {
		return err
	}
	w.Rect = bounds
	return nil
}

func (b *Backend) Redraw(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Redraws = append(b.Redraws, id)
	return b.RedrawErr
}

func (b *Backend) Close() error {
	return nil
}

// MoveCount returns the number of MoveResize calls so far.
func (b *Backend) MoveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Moves)
}

// RedrawCount returns the number of Redraw calls so far.
func (b *Backend) RedrawCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Redraws)
}
