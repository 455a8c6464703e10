//go:build linux

package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/winomove/internal/x11"
)

// chordBindings are passive grabs on the root window; a grabbed key press is
// delivered only to us, so the arrow never reaches the focused client.
var chordBindings = []struct {
	sequence string
	key      Key
}{
	{"Mod4-Shift-Left", KeyLeft},
	{"Mod4-Shift-Right", KeyRight},
}

var ignoreModsOnce sync.Once

// pointerModifiers reads live modifier state from a pointer query. X11 does
// not distinguish left and right modifiers in the state mask.
type pointerModifiers struct {
	conn *x11.Connection
}

func (m pointerModifiers) mask() uint16 {
	mask, err := m.conn.ModifierMask()
	if err != nil {
		return 0
	}
	return mask
}

func (m pointerModifiers) SuperHeld() bool { return m.mask()&xproto.ModMask4 != 0 }
func (m pointerModifiers) ShiftHeld() bool { return m.mask()&xproto.ModMaskShift != 0 }

// Hook grabs the chord keys on a dedicated X11 connection and dispatches
// them from the xevent loop.
type Hook struct {
	conn    *x11.Connection
	wakeWin xproto.Window
	reg     Registration
	logger  *slog.Logger

	mu       sync.Mutex
	started  bool
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// NewHook opens the X11 connection used for key grabs.
func NewHook(logger *slog.Logger) (*Hook, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hook{
		conn:   conn,
		logger: logger,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Modifiers returns the live modifier state source.
func (h *Hook) Modifiers() ModifierState {
	return pointerModifiers{conn: h.conn}
}

// Start grabs the chord keys and starts the event loop.
func (h *Hook) Start(handler func(KeyEvent) Verdict) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyInstalled
	}
	h.started = true
	h.mu.Unlock()

	xu := h.conn.XUtil
	root := h.conn.Root

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	wakeWin, err := h.conn.CreateWakeWindow()
	if err != nil {
		close(h.done)
		h.conn.Close()
		return fmt.Errorf("failed to create wake window: %w", err)
	}
	h.wakeWin = wakeWin

	_, err = h.reg.Install(func() (Token, error) {
		for _, b := range chordBindings {
			key, sequence := b.key, b.sequence
			err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
				if h.dispatch(handler, KeyEvent{Key: key, Down: true}) != Consumed {
					h.logger.Debug("grabbed chord not consumed", "sequence", sequence, "keycode", ev.Detail)
				}
			}).Connect(xu, root, sequence, true)
			if err != nil {
				keybind.Detach(xu, root)
				return 0, fmt.Errorf("failed to grab %s: %w", sequence, err)
			}
		}
		return Token(root), nil
	})
	if err != nil {
		close(h.done)
		h.conn.Close()
		return fmt.Errorf("failed to install keyboard hook: %w", err)
	}

	go h.run()
	return nil
}

// Stop releases the grabs and ends the event loop. Safe to call repeatedly.
func (h *Hook) Stop() error {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	h.stopOnce.Do(func() {
		close(h.quit)
		<-h.done
	})
	return h.stopErr
}

// run serves the xevent loop until asked to quit.
func (h *Hook) run() {
	defer close(h.done)

	xu := h.conn.XUtil
	pingBefore, pingAfter, pingQuit := xevent.MainPing(xu)

	h.stopErr = eventLoop{
		before:      pingBefore,
		after:       pingAfter,
		quit:        pingQuit,
		requestQuit: func() { xevent.Quit(xu) },
		release: func() error {
			return h.reg.Uninstall(func(token Token) error {
				keybind.Detach(xu, xproto.Window(token))
				return nil
			})
		},
		wake:   func() error { return h.conn.Wake(h.wakeWin) },
		close:  h.conn.Close,
		logger: h.logger,
	}.serve(h.quit)
}

// eventLoop drives the consumer side of xevent.MainPing.
//
// The xevent reader blocks waiting for the next event and treats a closed
// connection as fatal, so quitting sets the quit flag and then produces one
// real event to wake the reader. The connection is closed only after the
// loop has acknowledged the quit.
type eventLoop struct {
	before <-chan struct{}
	after  <-chan struct{}
	quit   <-chan struct{}

	requestQuit func()
	release     func() error
	wake        func() error
	close       func()
	logger      *slog.Logger
}

func (l eventLoop) serve(stop <-chan struct{}) error {
	var releaseErr error
	for {
		select {
		case <-l.before:
			<-l.after
		case <-l.quit:
			l.close()
			return releaseErr
		case <-stop:
			stop = nil
			l.requestQuit()
			releaseErr = l.release()
			if err := l.wake(); err != nil {
				// Without a wake event the reader stays blocked; leave the
				// connection open rather than tripping its fatal path.
				l.logger.Warn("failed to wake X11 event loop", "error", err)
				return errors.Join(releaseErr, err)
			}
		}
	}
}

func (h *Hook) dispatch(handler func(KeyEvent) Verdict, ev KeyEvent) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("keyboard handler panic recovered", "error", r)
			verdict = PassThrough
		}
	}()
	return handler(ev)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	// Every combination of the lock masks, including none.
	ignore := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
