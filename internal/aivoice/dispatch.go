package aivoice

// Dispatcher is the late-bound view of the host's TtsControl object.
//
// Implementations forward member access to the external object and return
// whatever it produced. Errors raised by the host are returned as-is; the
// binding never inspects or rewraps them.
type Dispatcher interface {
	// Get reads a property.
	Get(name string) (any, error)

	// Put writes a property.
	Put(name string, value any) error

	// Call invokes a method and returns its result (nil for void methods).
	Call(name string, args ...any) (any, error)

	// Close releases the underlying object.
	Close() error
}

// Loader produces a Dispatcher for the control library.
//
// reference is the library path without its ".dll" extension, resolved
// from the editor install directory.
type Loader interface {
	Load(reference string) (Dispatcher, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(reference string) (Dispatcher, error)

// Load calls f(reference).
func (f LoaderFunc) Load(reference string) (Dispatcher, error) {
	return f(reference)
}
