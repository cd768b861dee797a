//go:build !windows

package aivoice

func defaultLoader() Loader {
	return NewCOMLoader(ProgID)
}

// NewCOMLoader returns a Loader that always fails with
// ErrUnsupportedPlatform; COM activation only exists on Windows.
func NewCOMLoader(progID string) Loader {
	return LoaderFunc(func(string) (Dispatcher, error) {
		return nil, ErrUnsupportedPlatform
	})
}
