//go:build !windows && !linux

package hotkeys

import (
	"log/slog"

	"github.com/1broseidon/winomove/internal/platform"
)

// Hook is unavailable on this platform.
type Hook struct{}

// NewHook always fails with platform.ErrUnsupported.
func NewHook(logger *slog.Logger) (*Hook, error) {
	return nil, platform.ErrUnsupported
}

func (h *Hook) Modifiers() ModifierState { return nil }
func (h *Hook) Start(handler func(KeyEvent) Verdict) error { return platform.ErrUnsupported }
func (h *Hook) Stop() error { return ErrNotStarted }
