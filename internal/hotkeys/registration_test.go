package hotkeys

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_InstallOnce(t *testing.T) {
	var reg Registration
	calls := 0
	install := func() (Token, error) {
		calls++
		return Token(0xBEEF), nil
	}

	token, err := reg.Install(install)
	require.NoError(t, err)
	assert.Equal(t, Token(0xBEEF), token)
	assert.True(t, reg.Installed())

	_, err = reg.Install(install)
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
	assert.Equal(t, 1, calls)
}

func TestRegistration_FailedInstallIsNotRetried(t *testing.T) {
	var reg Registration
	boom := errors.New("rejected")

	_, err := reg.Install(func() (Token, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, reg.Installed())

	_, err = reg.Install(func() (Token, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrAlreadyInstalled)

	// Nothing to release.
	released := 0
	require.NoError(t, reg.Uninstall(func(Token) error { released++; return nil }))
	assert.Zero(t, released)
}

func TestRegistration_UninstallIsIdempotent(t *testing.T) {
	var reg Registration
	_, err := reg.Install(func() (Token, error) { return Token(7), nil })
	require.NoError(t, err)

	var released []Token
	uninstall := func(tok Token) error {
		released = append(released, tok)
		return nil
	}

	require.NoError(t, reg.Uninstall(uninstall))
	require.NoError(t, reg.Uninstall(uninstall))
	require.NoError(t, reg.Uninstall(uninstall))

	assert.Equal(t, []Token{7}, released)
	assert.False(t, reg.Installed())
}

func TestRegistration_UninstallWithoutInstall(t *testing.T) {
	var reg Registration
	called := false
	assert.NoError(t, reg.Uninstall(func(Token) error { called = true; return nil }))
	assert.False(t, called)
}

func TestRegistration_UninstallErrorStillClearsSlot(t *testing.T) {
	var reg Registration
	_, err := reg.Install(func() (Token, error) { return Token(3), nil })
	require.NoError(t, err)

	boom := errors.New("already gone")
	assert.ErrorIs(t, reg.Uninstall(func(Token) error { return boom }), boom)
	assert.NoError(t, reg.Uninstall(func(Token) error {
		t.Fatal("token released twice")
		return nil
	}))
}

func TestRegistration_ForwardSeesCurrentToken(t *testing.T) {
	var reg Registration
	_, err := reg.Install(func() (Token, error) { return Token(42), nil })
	require.NoError(t, err)

	got := reg.Forward(func(tok Token) uintptr { return uintptr(tok) })
	assert.Equal(t, uintptr(42), got)

	require.NoError(t, reg.Uninstall(func(Token) error { return nil }))
	got = reg.Forward(func(tok Token) uintptr { return uintptr(tok) })
	assert.Zero(t, got)
}

func TestRegistration_ConcurrentForwardAndUninstall(t *testing.T) {
	var reg Registration
	_, err := reg.Install(func() (Token, error) { return Token(9), nil })
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Forward(func(tok Token) uintptr {
					if tok != 0 && tok != 9 {
						t.Errorf("unexpected token %d", tok)
					}
					return 0
				})
			}
		}()
	}

	var mu sync.Mutex
	releases := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Uninstall(func(Token) error {
				mu.Lock()
				releases++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, releases)
}
