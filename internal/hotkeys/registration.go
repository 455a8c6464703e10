package hotkeys

import (
	"errors"
	"sync"
)

var (
	// ErrAlreadyInstalled is returned by a second Install on the same slot.
	ErrAlreadyInstalled = errors.New("keyboard filter already installed")

	// ErrNotStarted is returned by Stop on a hook that never started.
	ErrNotStarted = errors.New("keyboard hook not started")
)

// Token is the OS registration handle of an installed filter.
type Token uintptr

// Registration owns the single process-wide filter token. Install happens
// before any callback can observe the token; Uninstall releases it at most
// once.
type Registration struct {
	mu        sync.RWMutex
	token     Token
	attempted bool
	installed bool
}

// Install runs install once and stores the resulting token. Later calls
// return ErrAlreadyInstalled without calling install, including after a
// failed first attempt.
func (r *Registration) Install(install func() (Token, error)) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.attempted {
		return 0, ErrAlreadyInstalled
	}
	r.attempted = true

	token, err := install()
	if err != nil {
		return 0, err
	}
	r.token = token
	r.installed = true
	return token, nil
}

// Forward passes the current token to next. After Uninstall the token is
// zero, which the OS chain functions accept.
func (r *Registration) Forward(next func(Token) uintptr) uintptr {
	r.mu.RLock()
	token := r.token
	r.mu.RUnlock()
	return next(token)
}

// Installed reports whether a token is currently held.
func (r *Registration) Installed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.installed
}

// Uninstall releases the token through uninstall exactly once. Calls on an
// empty slot are no-ops.
func (r *Registration) Uninstall(uninstall func(Token) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.installed {
		return nil
	}
	token := r.token
	r.token = 0
	r.installed = false
	return uninstall(token)
}
