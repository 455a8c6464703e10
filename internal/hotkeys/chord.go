package hotkeys

import (
	"log/slog"

	"github.com/1broseidon/winomove/internal/platform"
)

// Key is a platform-neutral key identity; only the arrows matter here.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
)

// KeyEvent is a single keyboard transition as seen by the low-level filter.
type KeyEvent struct {
	Key  Key
	Down bool
}

// Verdict tells the hook whether to forward an event down the chain.
type Verdict int

const (
	PassThrough Verdict = iota
	Consumed
)

func (v Verdict) String() string {
	if v == Consumed {
		return "consumed"
	}
	return "pass-through"
}

// ModifierState queries live modifier keys. Either physical side counts.
type ModifierState interface {
	SuperHeld() bool
	ShiftHeld() bool
}

// Mover performs the relocation for a matched chord.
type Mover interface {
	MoveForeground(dir platform.Direction)
}

// MoverFunc adapts a function to Mover.
type MoverFunc func(dir platform.Direction)

// MoveForeground calls f(dir).
func (f MoverFunc) MoveForeground(dir platform.Direction) { f(dir) }

// Interceptor recognizes Super+Shift+Left/Right.
type Interceptor struct {
	Modifiers ModifierState
	Mover     Mover
	Logger    *slog.Logger
}

// Handle decides the fate of one event. A matching key-down runs the move
// synchronously and consumes the arrow so the focused application never sees
// it. Everything else passes through untouched.
func (i *Interceptor) Handle(ev KeyEvent) Verdict {
	if !ev.Down {
		return PassThrough
	}

	var dir platform.Direction
	switch ev.Key {
	case KeyLeft:
		dir = platform.DirLeft
	case KeyRight:
		dir = platform.DirRight
	default:
		return PassThrough
	}

	// Modifier state is read live: it may have changed since the event was queued.
	if !i.Modifiers.SuperHeld() || !i.Modifiers.ShiftHeld() {
		return PassThrough
	}

	if i.Logger != nil {
		i.Logger.Debug("chord matched", "direction", dir)
	}
	i.Mover.MoveForeground(dir)
	return Consumed
}
