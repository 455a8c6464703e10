//go:build !linux && !windows

package platform

// Open reports that no window-system backend exists for this platform.
func Open() (Backend, error) {
	return nil, ErrUnsupported
}
