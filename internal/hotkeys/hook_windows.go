//go:build windows

package hotkeys

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL = 13

	wmKeyDown = 0x0100
	wmQuit    = 0x0012

	vkLeft   = 0x25
	vkRight  = 0x27
	vkLWin   = 0x5B
	vkRWin   = 0x5C
	vkLShift = 0xA0
	vkRShift = 0xA1
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type point struct {
	X int32
	Y int32
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
	Private uint32
}

// The OS calls a single hook procedure; it finds the live Hook through this
// pointer. Windows callbacks are a finite resource, so the procedure is
// created once per process.
var (
	activeHook   atomic.Pointer[Hook]
	callbackOnce sync.Once
	callbackPtr  uintptr
)

func hookCallback() uintptr {
	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(hookProc)
	})
	return callbackPtr
}

func hookProc(code, wParam, lParam uintptr) uintptr {
	h := activeHook.Load()
	if h == nil {
		r, _, _ := procCallNextHookEx.Call(0, code, wParam, lParam)
		return r
	}

	if int32(code) >= 0 && wParam == wmKeyDown {
		kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		if h.dispatch(KeyEvent{Key: keyFromVK(kb.VkCode), Down: true}) == Consumed {
			return 1
		}
	}

	return h.reg.Forward(func(token Token) uintptr {
		r, _, _ := procCallNextHookEx.Call(uintptr(token), code, wParam, lParam)
		return r
	})
}

func keyFromVK(vk uint32) Key {
	switch vk {
	case vkLeft:
		return KeyLeft
	case vkRight:
		return KeyRight
	default:
		return KeyOther
	}
}

// asyncModifiers reads the physical key state at call time.
type asyncModifiers struct{}

func keyHeld(vk uintptr) bool {
	r, _, _ := procGetAsyncKeyState.Call(vk)
	return int16(r) < 0
}

func (asyncModifiers) SuperHeld() bool { return keyHeld(vkLWin) || keyHeld(vkRWin) }
func (asyncModifiers) ShiftHeld() bool { return keyHeld(vkLShift) || keyHeld(vkRShift) }

// Hook is a WH_KEYBOARD_LL filter running on its own locked OS thread.
type Hook struct {
	reg     Registration
	logger  *slog.Logger
	handler func(KeyEvent) Verdict

	mu       sync.Mutex
	started  bool
	threadID atomic.Uint32
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
	loopErr  error
}

// NewHook prepares a low-level keyboard hook. Nothing is installed until Start.
func NewHook(logger *slog.Logger) (*Hook, error) {
	if err := procSetWindowsHookExW.Find(); err != nil {
		return nil, fmt.Errorf("user32 unavailable: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hook{
		logger: logger,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Modifiers returns the live modifier state source.
func (h *Hook) Modifiers() ModifierState {
	return asyncModifiers{}
}

// Start installs the hook and begins pumping messages on a dedicated thread.
// It returns once the hook is installed or installation failed.
func (h *Hook) Start(handler func(KeyEvent) Verdict) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyInstalled
	}
	h.started = true
	h.handler = handler
	h.mu.Unlock()

	ready := make(chan error, 1)
	go h.run(ready)
	return <-ready
}

// Stop ends the message loop and removes the hook. Safe to call repeatedly.
func (h *Hook) Stop() error {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	h.stopOnce.Do(func() {
		close(h.quit)
		if tid := h.threadID.Load(); tid != 0 {
			procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
		}
		<-h.done
		h.stopErr = h.loopErr
	})
	return h.stopErr
}

func (h *Hook) run(ready chan<- error) {
	// The hook is bound to the installing thread and only fires while that
	// thread pumps messages.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	h.threadID.Store(windows.GetCurrentThreadId())
	activeHook.Store(h)

	_, err := h.reg.Install(func() (Token, error) {
		r, _, callErr := procSetWindowsHookExW.Call(whKeyboardLL, hookCallback(), 0, 0)
		if r == 0 {
			return 0, fmt.Errorf("SetWindowsHookExW: %w", callErr)
		}
		return Token(r), nil
	})
	if err != nil {
		activeHook.CompareAndSwap(h, nil)
		ready <- fmt.Errorf("failed to install keyboard hook: %w", err)
		return
	}
	ready <- nil
	h.logger.Debug("keyboard hook installed", "thread", h.threadID.Load())

	loopErr := h.pump()

	uninstallErr := h.reg.Uninstall(func(token Token) error {
		r, _, callErr := procUnhookWindowsHookEx.Call(uintptr(token))
		if r == 0 {
			return fmt.Errorf("UnhookWindowsHookEx: %w", callErr)
		}
		return nil
	})
	activeHook.CompareAndSwap(h, nil)

	if loopErr == nil {
		loopErr = uninstallErr
	}
	h.loopErr = loopErr
	h.logger.Debug("keyboard hook removed")
}

// pump polls the quit signal without blocking, then blocks on the thread's
// message queue. Stop posts WM_QUIT to wake the blocking side.
func (h *Hook) pump() error {
	var m msg
	for {
		select {
		case <-h.quit:
			return nil
		default:
		}

		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		case 0:
			return nil
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// dispatch shields the OS input pipeline from handler panics.
func (h *Hook) dispatch(ev KeyEvent) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("keyboard handler panic recovered", "error", r)
			verdict = PassThrough
		}
	}()
	return h.handler(ev)
}
