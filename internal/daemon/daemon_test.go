package daemon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/winomove/internal/config"
	"github.com/1broseidon/winomove/internal/hotkeys"
	"github.com/1broseidon/winomove/internal/logging"
	"github.com/1broseidon/winomove/internal/platform"
	"github.com/1broseidon/winomove/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heldModifiers struct{}

func (heldModifiers) SuperHeld() bool { return true }
func (heldModifiers) ShiftHeld() bool { return true }

type fakeHook struct {
	startErr error

	mu      sync.Mutex
	handler func(hotkeys.KeyEvent) hotkeys.Verdict
	starts  int
	stops   int
}

func (h *fakeHook) Start(handler func(hotkeys.KeyEvent) hotkeys.Verdict) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
	if h.startErr != nil {
		return h.startErr
	}
	h.handler = handler
	return nil
}

func (h *fakeHook) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stops++
	return nil
}

func (h *fakeHook) Modifiers() hotkeys.ModifierState { return heldModifiers{} }

func (h *fakeHook) press(key hotkeys.Key) hotkeys.Verdict {
	h.mu.Lock()
	handler := h.handler
	h.mu.Unlock()
	return handler(hotkeys.KeyEvent{Key: key, Down: true})
}

type fakeIndicator struct {
	during func()

	dismissed chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
	runs      int
	ready     bool
}

func newFakeIndicator() *fakeIndicator {
	return &fakeIndicator{
		dismissed: make(chan struct{}),
		closed:    make(chan struct{}),
	}
}

func (f *fakeIndicator) Run(onReady func()) {
	f.runs++
	if onReady != nil {
		onReady()
		f.ready = true
	}
	if f.during != nil {
		f.during()
	}
	<-f.closed
}

func (f *fakeIndicator) Dismissed() <-chan struct{} { return f.dismissed }

func (f *fakeIndicator) Close() {
	f.closeOnce.Do(func() { close(f.closed) })
}

func twoDisplayBackend() (*platformtest.Backend, platform.WindowID) {
	b := &platformtest.Backend{
		PID: 1,
		Screens: []platform.Display{
			{ID: 1, Bounds: platform.RectFromEdges(0, 0, 1920, 1080)},
			{ID: 2, Bounds: platform.RectFromEdges(1920, 0, 3840, 1080)},
		},
	}
	id := b.AddWindow(0x10, platformtest.NormalWindow(platform.RectFromEdges(100, 100, 900, 700)))
	b.Windows[id].Root = id
	b.Foreground = id
	return b, id
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.RedrawDelay = time.Millisecond
	return cfg
}

func runAsync(ctx context.Context, opts Options) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- Run(ctx, opts) }()
	return errCh
}

func waitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	backend, _ := twoDisplayBackend()
	hook := &fakeHook{}
	ind := newFakeIndicator()

	ctx, cancel := context.WithCancel(context.Background())
	ind.during = cancel

	err := waitErr(t, runAsync(ctx, Options{
		Config:        testConfig(),
		Logger:        logging.Discard(),
		Backend:       backend,
		Hook:          hook,
		Indicator:     ind,
		WatchInterval: -1,
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, hook.starts)
	assert.Equal(t, 1, hook.stops)
	assert.True(t, ind.ready)
}

func TestRun_StopsOnQuitFromTray(t *testing.T) {
	backend, _ := twoDisplayBackend()
	hook := &fakeHook{}
	ind := newFakeIndicator()
	ind.during = func() { close(ind.dismissed) }

	err := waitErr(t, runAsync(context.Background(), Options{
		Config:        testConfig(),
		Logger:        logging.Discard(),
		Backend:       backend,
		Hook:          hook,
		Indicator:     ind,
		WatchInterval: -1,
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, hook.stops)
}

func TestRun_HookInstallFailureIsFatal(t *testing.T) {
	backend, _ := twoDisplayBackend()
	boom := errors.New("access denied")
	hook := &fakeHook{startErr: boom}
	ind := newFakeIndicator()

	err := Run(context.Background(), Options{
		Config:    testConfig(),
		Logger:    logging.Discard(),
		Backend:   backend,
		Hook:      hook,
		Indicator: ind,
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, ind.runs, "tray must not be shown without a hook")
	assert.Zero(t, hook.stops)
}

func TestRun_ChordMovesForegroundWindow(t *testing.T) {
	backend, id := twoDisplayBackend()
	hook := &fakeHook{}
	ind := newFakeIndicator()

	ctx, cancel := context.WithCancel(context.Background())
	var verdict hotkeys.Verdict
	ind.during = func() {
		verdict = hook.press(hotkeys.KeyRight)
		cancel()
	}

	err := waitErr(t, runAsync(ctx, Options{
		Config:        testConfig(),
		Logger:        logging.Discard(),
		Backend:       backend,
		Hook:          hook,
		Indicator:     ind,
		WatchInterval: -1,
	}))
	require.NoError(t, err)

	assert.Equal(t, hotkeys.Consumed, verdict)
	assert.Equal(t, platform.RectFromEdges(2020, 100, 2820, 700), backend.Rect(id))
	assert.Equal(t, 2, backend.RedrawCount())
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	backend, _ := twoDisplayBackend()
	cfg := testConfig()
	cfg.MinWindowWidth = 0

	err := Run(context.Background(), Options{
		Config:    cfg,
		Backend:   backend,
		Hook:      &fakeHook{},
		Indicator: newFakeIndicator(),
	})
	var verr *config.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRun_RequiresCollaborators(t *testing.T) {
	err := Run(context.Background(), Options{})
	assert.Error(t, err)
}
