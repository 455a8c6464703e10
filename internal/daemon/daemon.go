// Package daemon wires the keyboard hook, the relocator and the tray
// indicator together and owns their lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/winomove/internal/config"
	"github.com/1broseidon/winomove/internal/hotkeys"
	"github.com/1broseidon/winomove/internal/platform"
	"github.com/1broseidon/winomove/internal/relocate"
)

// KeyboardHook is the installed interception point.
type KeyboardHook interface {
	Start(handler func(hotkeys.KeyEvent) hotkeys.Verdict) error
	Stop() error
	Modifiers() hotkeys.ModifierState
}

// Indicator is the tray icon. Run blocks until Close is called.
type Indicator interface {
	Run(onReady func())
	Dismissed() <-chan struct{}
	Close()
}

// Options holds the collaborators for Run.
type Options struct {
	Config    *config.Config
	Logger    *slog.Logger
	Backend   platform.Backend
	Hook      KeyboardHook
	Indicator Indicator

	// WatchInterval controls the display watcher. Zero uses
	// DefaultWatchInterval; negative disables it.
	WatchInterval time.Duration
}

// Run installs the hook, shows the indicator and blocks until the user quits
// from the tray or ctx is cancelled. The hook is removed before Run returns.
// A hook that cannot be installed is fatal.
func Run(ctx context.Context, opts Options) error {
	if opts.Backend == nil || opts.Hook == nil || opts.Indicator == nil {
		return errors.New("daemon: backend, hook and indicator are required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	relocator := relocate.New(opts.Backend, relocate.Config{
		RedrawDelay: cfg.RedrawDelay,
		MinWidth:    cfg.MinWindowWidth,
		MinHeight:   cfg.MinWindowHeight,
		Logger:      logger,
	})

	interceptor := &hotkeys.Interceptor{
		Modifiers: opts.Hook.Modifiers(),
		Mover: hotkeys.MoverFunc(func(dir platform.Direction) {
			outcome := relocator.MoveForeground(dir)
			logger.Debug("move handled", "direction", dir, "outcome", outcome)
		}),
		Logger: logger,
	}

	if err := opts.Hook.Start(interceptor.Handle); err != nil {
		logger.Error("failed to install keyboard hook", "error", err)
		return fmt.Errorf("failed to install keyboard hook: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.WatchInterval >= 0 {
		watcher := NewDisplayWatcher(WatcherConfig{
			Interval: opts.WatchInterval,
			Logger:   logger,
		}, opts.Backend.Displays)
		go watcher.Run(runCtx)
	}

	go func() {
		select {
		case <-runCtx.Done():
			logger.Debug("shutdown requested")
		case <-opts.Indicator.Dismissed():
			logger.Debug("quit selected")
		}
		opts.Indicator.Close()
	}()

	opts.Indicator.Run(func() {
		logger.Info("winomove started: Win+Shift+Left/Right moves the focused window")
	})
	cancel()

	if err := opts.Hook.Stop(); err != nil {
		logger.Warn("failed to remove keyboard hook", "error", err)
	}
	logger.Info("winomove stopped")
	return nil
}
