// Package tray shows the notification-area indicator. Its only control is a
// Quit item.
package tray

import (
	"log/slog"
	"sync"

	"fyne.io/systray"
)

// Indicator owns the tray icon. Run must be called from the main goroutine
// on platforms whose tray needs it.
type Indicator struct {
	title   string
	tooltip string
	logger  *slog.Logger

	dismissed   chan struct{}
	dismissOnce sync.Once

	mu      sync.Mutex
	ready   bool
	closing bool
}

// New returns an indicator that has not been shown yet.
func New(title, tooltip string, logger *slog.Logger) *Indicator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indicator{
		title:     title,
		tooltip:   tooltip,
		logger:    logger,
		dismissed: make(chan struct{}),
	}
}

// Run shows the icon and blocks until the indicator is closed. onReady is
// called once the icon is visible.
func (i *Indicator) Run(onReady func()) {
	systray.Run(func() { i.onReady(onReady) }, func() {})
}

// Dismissed is closed when the user picks Quit.
func (i *Indicator) Dismissed() <-chan struct{} {
	return i.dismissed
}

// Close removes the icon and makes Run return. Safe to call from any
// goroutine, more than once, and before Run has shown the icon.
func (i *Indicator) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closing {
		return
	}
	i.closing = true
	if i.ready {
		systray.Quit()
	}
}

func (i *Indicator) onReady(next func()) {
	icon, err := Icon()
	if err != nil {
		i.logger.Warn("tray icon unavailable", "error", err)
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTitle(i.title)
	systray.SetTooltip(i.tooltip)

	quit := systray.AddMenuItem("Quit", "Stop winomove")
	go func() {
		<-quit.ClickedCh
		i.logger.Debug("quit requested from tray")
		i.dismissOnce.Do(func() { close(i.dismissed) })
	}()

	i.mu.Lock()
	i.ready = true
	closing := i.closing
	i.mu.Unlock()

	if closing {
		systray.Quit()
		return
	}
	if next != nil {
		next()
	}
}
