// Package aivoice binds the A.I.VOICE Editor automation API.
//
// Control mirrors the host's TtsControl object: every property and method is
// forwarded to the host in a single call, converting values at the boundary
// and nothing else. The host owns all state; Control keeps no cache and
// enforces no transitions.
//
// After Connect the host drops the connection on its own if no API call is
// made for ten minutes. Callers that hold a Control longer than that must
// either call into it periodically or reconnect on demand.
package aivoice

import (
	"os"
	"strings"
	"sync/atomic"
)

const (
	// LibraryName is the control library reference, without extension.
	LibraryName = "AI.Talk.Editor.Api"

	// LibraryFile is the file that must exist in the editor directory.
	LibraryFile = LibraryName + ".dll"

	// ProgID is the COM class of the host's control object.
	ProgID = "AI.Talk.Editor.Api.TtsControl"

	// DefaultInstallSubdir is appended to %ProgramW6432% when no editor
	// directory is given.
	DefaultInstallSubdir = `\AI\AIVoice\AIVoiceEditor\`
)

// Control forwards calls to the host's TtsControl object.
type Control struct {
	editorDir string
	obj       Dispatcher
	closed    atomic.Bool
}

type options struct {
	editorDir  string
	loader     Loader
	fileExists func(path string) bool
}

// Option configures New.
type Option func(*options)

// WithEditorDir sets the editor install directory. An empty string selects
// the default location.
func WithEditorDir(dir string) Option {
	return func(o *options) { o.editorDir = dir }
}

// WithLoader replaces the default COM loader.
func WithLoader(l Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithFileCheck replaces the existence check performed on the library file.
func WithFileCheck(fn func(path string) bool) Option {
	return func(o *options) { o.fileExists = fn }
}

// New resolves the editor directory, checks the control library is present
// and loads the control object.
func New(opts ...Option) (*Control, error) {
	o := options{
		fileExists: isFile,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = defaultLoader()
	}

	dir := ResolveEditorDir(o.editorDir)
	libPath := dir + LibraryFile
	if !o.fileExists(libPath) {
		return nil, &LibraryNotFoundError{Path: libPath}
	}

	obj, err := o.loader.Load(dir + LibraryName)
	if err != nil {
		return nil, err
	}

	return &Control{editorDir: dir, obj: obj}, nil
}

// ResolveEditorDir returns dir with exactly one trailing backslash, or the
// default install directory when dir is empty.
func ResolveEditorDir(dir string) string {
	if dir == "" {
		return os.Getenv("ProgramW6432") + DefaultInstallSubdir
	}
	return strings.TrimRight(dir, `\`) + `\`
}

// EditorDir returns the normalized editor directory.
func (c *Control) EditorDir() string {
	return c.editorDir
}

// Close releases the control object. Further calls fail with ErrClosed.
func (c *Control) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.obj.Close()
}

func (c *Control) get(name string) (any, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.obj.Get(name)
}

func (c *Control) put(name string, value any) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.obj.Put(name, value)
}

func (c *Control) call(name string, args ...any) (any, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.obj.Call(name, args...)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
