package aivoice

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrLibraryNotFound is matched by errors returned from New when the
	// control library is missing from the editor directory.
	ErrLibraryNotFound = errors.New("A.I.VOICE Editor API library not found")

	// ErrUnsupportedPlatform is returned by the default loader outside Windows.
	ErrUnsupportedPlatform = errors.New("A.I.VOICE Editor automation requires Windows")

	// ErrClosed is returned when a Control is used after Close.
	ErrClosed = errors.New("control is closed")
)

// LibraryNotFoundError reports the library path that failed the existence check.
type LibraryNotFoundError struct {
	Path string
}

func (e *LibraryNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrLibraryNotFound, e.Path)
}

// Is reports ErrLibraryNotFound and fs.ErrNotExist as matches.
func (e *LibraryNotFoundError) Is(target error) bool {
	return target == ErrLibraryNotFound || target == fs.ErrNotExist
}

// ConversionError is returned when a host value cannot be converted to the
// Go type a member is declared with.
type ConversionError struct {
	Member string
	Value  any
	Want   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: cannot convert %T(%v) to %s", e.Member, e.Value, e.Value, e.Want)
}
