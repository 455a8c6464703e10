package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/winomove/internal/platform"
	"github.com/1broseidon/winomove/internal/topology"
)

// DefaultWatchInterval is how often the display topology is sampled.
const DefaultWatchInterval = 5 * time.Second

// DisplayLister returns the live displays.
type DisplayLister func() ([]platform.Display, error)

// WatcherConfig holds configuration for the display watcher.
type WatcherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// DisplayWatcher periodically samples the display topology and logs when it
// changes. Moves always query the live topology, so the watcher only reports.
type DisplayWatcher struct {
	interval time.Duration
	list     DisplayLister
	logger   *slog.Logger

	last  []platform.Rect
	known bool
}

// NewDisplayWatcher creates a watcher over list.
func NewDisplayWatcher(cfg WatcherConfig, list DisplayLister) *DisplayWatcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DisplayWatcher{
		interval: interval,
		list:     list,
		logger:   logger,
	}
}

// Run samples until ctx is cancelled.
func (w *DisplayWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check takes one sample and reports whether the layout differs from the
// previous one. The first successful sample only records the baseline.
func (w *DisplayWatcher) check() bool {
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("display watcher panic recovered", "error", err)
		}
	}()

	displays, err := w.list()
	if err != nil {
		w.logger.Debug("display watcher: failed to list displays", "error", err)
		return false
	}

	ordered := topology.Ordered(displays)
	layout := make([]platform.Rect, len(ordered))
	for i, d := range ordered {
		layout[i] = d.Bounds
	}

	if !w.known {
		w.known = true
		w.last = layout
		w.logger.Debug("display topology", "displays", len(layout))
		return false
	}
	if sameLayout(w.last, layout) {
		return false
	}

	w.logger.Info("display topology changed",
		"before", len(w.last),
		"after", len(layout))
	w.last = layout
	return true
}

func sameLayout(a, b []platform.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
