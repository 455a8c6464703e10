// Package relocate moves a window between displays while keeping its offset
// from the display origin and its size.
package relocate

import (
	"log/slog"
	"time"

	"github.com/1broseidon/winomove/internal/eligibility"
	"github.com/1broseidon/winomove/internal/platform"
	"github.com/1broseidon/winomove/internal/topology"
)

const (
	// DefaultRedrawDelay is the settle time before each redraw.
	DefaultRedrawDelay = 50 * time.Millisecond

	// redrawAttempts is fixed: one redraw after the move and one more for
	// windows the compositor had not finished with.
	redrawAttempts = 2
)

// Outcome reports what a relocation request did.
type Outcome int

const (
	Moved Outcome = iota
	Ineligible
	NoGeometry
	NoDisplay
	SameDisplay
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ineligible:
		return "ineligible window"
	case NoGeometry:
		return "window rectangle unreadable"
	case NoDisplay:
		return "display lookup failed"
	case SameDisplay:
		return "no other display in that direction"
	default:
		return "unknown"
	}
}

// Config holds Relocator settings.
type Config struct {
	RedrawDelay time.Duration
	MinWidth    int
	MinHeight   int
	Logger      *slog.Logger
}

// Relocator moves the foreground window to the adjacent display.
type Relocator struct {
	backend     platform.Backend
	filter      *eligibility.Filter
	redrawDelay time.Duration
	logger      *slog.Logger

	// sleep is replaced in tests.
	sleep func(time.Duration)
}

// New creates a Relocator bound to backend.
func New(backend platform.Backend, cfg Config) *Relocator {
	filter := eligibility.New(backend)
	if cfg.MinWidth > 0 {
		filter.MinWidth = cfg.MinWidth
	}
	if cfg.MinHeight > 0 {
		filter.MinHeight = cfg.MinHeight
	}

	delay := cfg.RedrawDelay
	if delay <= 0 {
		delay = DefaultRedrawDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Relocator{
		backend:     backend,
		filter:      filter,
		redrawDelay: delay,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// MoveForeground moves the focused window one display in dir. Every failure
// is a silent no-op reported only through the returned Outcome.
func (r *Relocator) MoveForeground(dir platform.Direction) Outcome {
	window := r.backend.ForegroundWindow()

	if reason := r.filter.Check(window); reason != eligibility.Eligible {
		r.logger.Debug("window not movable", "window", window, "reason", reason)
		return Ineligible
	}

	current, err := r.backend.DisplayForWindow(window)
	if err != nil {
		r.logger.Debug("current display lookup failed", "window", window, "error", err)
		return NoDisplay
	}

	displays, err := r.backend.Displays()
	if err != nil {
		r.logger.Debug("display enumeration failed", "error", err)
		return NoDisplay
	}

	target := topology.Adjacent(current, dir, displays)
	outcome := r.Relocate(window, current, target)
	r.logger.Debug("relocation finished",
		"window", window,
		"direction", dir,
		"from", current.Name,
		"to", target.Name,
		"outcome", outcome,
	)
	return outcome
}

// Relocate moves window from the current display to the target display.
// Moving and redrawing are best effort; their errors are logged, not returned.
func (r *Relocator) Relocate(window platform.WindowID, current, target platform.Display) Outcome {
	rect, err := r.backend.WindowRect(window)
	if err != nil {
		return NoGeometry
	}

	if target.Bounds == current.Bounds {
		return SameDisplay
	}

	bounds := Translate(rect, current.Bounds, target.Bounds)
	if err := r.backend.MoveResize(window, bounds); err != nil {
		r.logger.Debug("move failed", "window", window, "error", err)
	}

	for i := 0; i < redrawAttempts; i++ {
		r.sleep(r.redrawDelay)
		if err := r.backend.Redraw(window); err != nil {
			r.logger.Debug("redraw failed", "window", window, "attempt", i+1, "error", err)
		}
	}

	return Moved
}
