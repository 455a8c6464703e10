//go:build linux

package hotkeys

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winomove/internal/logging"
)

// xReader mimics the producer side of xevent.MainPing: it blocks for the next
// event, pings around each one, and reports the quit flag at the top of the
// loop. A closed connection while blocked is what xgbutil treats as fatal.
type xReader struct {
	before chan struct{}
	after  chan struct{}
	quit   chan struct{}
	events chan struct{}

	quitting  atomic.Bool
	fatal     atomic.Bool
	closeOnce sync.Once
	exited    chan struct{}
}

func newXReader() *xReader {
	return &xReader{
		before: make(chan struct{}),
		after:  make(chan struct{}),
		quit:   make(chan struct{}),
		events: make(chan struct{}, 4),
		exited: make(chan struct{}),
	}
}

func (r *xReader) run() {
	defer close(r.exited)
	for {
		if r.quitting.Load() {
			r.quit <- struct{}{}
			return
		}
		if _, ok := <-r.events; !ok {
			r.fatal.Store(true)
			return
		}
		r.before <- struct{}{}
		r.after <- struct{}{}
	}
}

func (r *xReader) closeConn() {
	r.closeOnce.Do(func() { close(r.events) })
}

type loopCalls struct {
	mu    sync.Mutex
	order []string
}

func (c *loopCalls) add(name string) {
	c.mu.Lock()
	c.order = append(c.order, name)
	c.mu.Unlock()
}

func (c *loopCalls) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

func newTestLoop(r *xReader, calls *loopCalls, wakeErr error) eventLoop {
	return eventLoop{
		before: r.before,
		after:  r.after,
		quit:   r.quit,
		requestQuit: func() {
			calls.add("quit")
			r.quitting.Store(true)
		},
		release: func() error {
			calls.add("release")
			return nil
		},
		wake: func() error {
			calls.add("wake")
			if wakeErr != nil {
				return wakeErr
			}
			r.events <- struct{}{}
			return nil
		},
		close: func() {
			calls.add("close")
			r.closeConn()
		},
		logger: logging.Discard(),
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestEventLoop_StopWakesReaderWithoutClosingFirst(t *testing.T) {
	r := newXReader()
	go r.run()

	calls := &loopCalls{}
	stop := make(chan struct{})
	done := make(chan struct{})
	var serveErr error
	go func() {
		defer close(done)
		serveErr = newTestLoop(r, calls, nil).serve(stop)
	}()

	// A grabbed key press is served normally.
	r.events <- struct{}{}

	close(stop)
	waitClosed(t, done, "serve to return")
	waitClosed(t, r.exited, "reader to exit")

	require.NoError(t, serveErr)
	assert.False(t, r.fatal.Load(), "connection closed under a blocked reader")
	assert.Equal(t, []string{"quit", "release", "wake", "close"}, calls.list())
}

func TestEventLoop_WakeFailureLeavesConnectionOpen(t *testing.T) {
	r := newXReader()
	go r.run()

	calls := &loopCalls{}
	stop := make(chan struct{})
	close(stop)

	boom := errors.New("bad window")
	err := newTestLoop(r, calls, boom).serve(stop)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"quit", "release", "wake"}, calls.list())
	assert.False(t, r.fatal.Load())
}
