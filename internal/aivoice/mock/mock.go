// Package mock provides an in-memory stand-in for the host's TtsControl
// object.
//
// Dispatcher keeps properties in a map and answers method calls from
// configurable results, recording every access so tests can assert on what
// was forwarded to the host.
//
//	d := mock.NewDispatcher()
//	d.Props["Status"] = "Idle"
//	d.Results["GetPlayTime"] = int32(1200)
//	ctrl, _ := aivoice.New(aivoice.WithLoader(d.Loader()), aivoice.WithFileCheck(mock.AnyFile))
package mock

import (
	"sync"

	"github.com/emmett/aivoice/internal/aivoice"
)

// Op is the kind of recorded access.
type Op string

const (
	OpGet  Op = "get"
	OpPut  Op = "put"
	OpCall Op = "call"
)

// Access records one Get, Put or Call.
type Access struct {
	Op   Op
	Name string
	Args []any
}

// Dispatcher is a mock implementation of aivoice.Dispatcher.
type Dispatcher struct {
	mu sync.Mutex

	// Props backs Get and Put.
	Props map[string]any

	// Results is returned by Call, keyed by method name.
	Results map[string]any

	// Errors, when set for a member name, is returned instead of a value.
	Errors map[string]error

	// Hooks run on Call before the result is looked up, letting a test
	// mutate Props (e.g. Play switching Status to Busy).
	Hooks map[string]func(d *Dispatcher, args []any)

	// Accesses records every access in order.
	Accesses []Access

	// LoadedRefs records every reference passed to the Loader.
	LoadedRefs []string

	// Closed is set by Close.
	Closed bool
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Props:   make(map[string]any),
		Results: make(map[string]any),
		Errors:  make(map[string]error),
		Hooks:   make(map[string]func(d *Dispatcher, args []any)),
	}
}

// Loader returns a Loader handing out d and recording the reference.
func (d *Dispatcher) Loader() aivoice.Loader {
	return aivoice.LoaderFunc(func(reference string) (aivoice.Dispatcher, error) {
		d.mu.Lock()
		d.LoadedRefs = append(d.LoadedRefs, reference)
		d.mu.Unlock()
		return d, nil
	})
}

// AnyFile is a file check that accepts every path.
func AnyFile(string) bool { return true }

func (d *Dispatcher) Get(name string) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Accesses = append(d.Accesses, Access{Op: OpGet, Name: name})
	if err := d.Errors[name]; err != nil {
		return nil, err
	}
	return d.Props[name], nil
}

func (d *Dispatcher) Put(name string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Accesses = append(d.Accesses, Access{Op: OpPut, Name: name, Args: []any{value}})
	if err := d.Errors[name]; err != nil {
		return err
	}
	d.Props[name] = value
	return nil
}

func (d *Dispatcher) Call(name string, args ...any) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Accesses = append(d.Accesses, Access{Op: OpCall, Name: name, Args: args})
	if err := d.Errors[name]; err != nil {
		return nil, err
	}
	if hook := d.Hooks[name]; hook != nil {
		hook(d, args)
	}
	return d.Results[name], nil
}

func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// Calls returns the recorded method calls named name.
func (d *Dispatcher) Calls(name string) []Access {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Access
	for _, a := range d.Accesses {
		if a.Op == OpCall && a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// Last returns the most recent access, or the zero Access.
func (d *Dispatcher) Last() Access {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Accesses) == 0 {
		return Access{}
	}
	return d.Accesses[len(d.Accesses)-1]
}

// Prop returns a property value under the lock.
func (d *Dispatcher) Prop(name string) any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Props[name]
}

// SetProp sets a property value under the lock.
func (d *Dispatcher) SetProp(name string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Props[name] = value
}

// Reset clears the recorded accesses.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Accesses = nil
}
