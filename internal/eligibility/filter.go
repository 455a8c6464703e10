// Package eligibility decides whether a window may be relocated.
//
// The foreground window reported by the OS can be the desktop, the shell, a
// popup or this program's own tray surface. The filter is the only thing that
// keeps relocation away from those.
package eligibility

import "github.com/1broseidon/winomove/internal/platform"

const (
	DefaultMinWidth  = 100
	DefaultMinHeight = 50
)

// Reason explains why a window was rejected.
type Reason int

const (
	Eligible Reason = iota
	NullHandle
	NoCaption
	ToolWindow
	OwnProcess
	NoGeometry
	TooSmall
)

func (r Reason) String() string {
	switch r {
	case Eligible:
		return "eligible"
	case NullHandle:
		return "null handle"
	case NoCaption:
		return "no title bar"
	case ToolWindow:
		return "tool window"
	case OwnProcess:
		return "owned by this process"
	case NoGeometry:
		return "rectangle unreadable"
	case TooSmall:
		return "below minimum size"
	default:
		return "unknown"
	}
}

// Filter applies the eligibility policy against live window state.
type Filter struct {
	Inspector platform.WindowInspector
	MinWidth  int
	MinHeight int
}

// New returns a Filter with the default minimum size.
func New(inspector platform.WindowInspector) *Filter {
	return &Filter{
		Inspector: inspector,
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
	}
}

// IsMovable reports whether the window may be relocated.
func (f *Filter) IsMovable(id platform.WindowID) bool {
	return f.Check(id) == Eligible
}

// Check runs the policy in order and returns the first disqualification.
func (f *Filter) Check(id platform.WindowID) Reason {
	if id == 0 {
		return NullHandle
	}

	// Child windows are judged by their top-level ancestor.
	target := id
	if root := f.Inspector.RootWindow(id); root != 0 {
		target = root
	}

	style, err := f.Inspector.WindowStyle(target)
	if err != nil || !style.HasCaption {
		return NoCaption
	}
	if style.ToolWindow {
		return ToolWindow
	}

	// An unreadable pid is treated as foreign; the rectangle check below
	// rejects windows that are actually gone.
	if pid, err := f.Inspector.WindowPID(target); err == nil && pid == f.Inspector.CurrentPID() {
		return OwnProcess
	}

	rect, err := f.Inspector.WindowRect(target)
	if err != nil {
		return NoGeometry
	}
	if rect.Width < f.MinWidth || rect.Height < f.MinHeight {
		return TooSmall
	}

	return Eligible
}
