//go:build windows

package aivoice

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"golang.org/x/sys/windows"
)

var (
	oleaut32                  = windows.NewLazySystemDLL("oleaut32.dll")
	procSafeArrayCreateVector = oleaut32.NewProc("SafeArrayCreateVector")
	procSafeArrayPutElement   = oleaut32.NewProc("SafeArrayPutElement")
	procSafeArrayDestroy      = oleaut32.NewProc("SafeArrayDestroy")
)

const sFalse = 1

func defaultLoader() Loader {
	return NewCOMLoader(ProgID)
}

// NewCOMLoader returns a Loader that activates progID through COM.
//
// Activation goes through the class registered for progID. The reference
// passed to Load, the library path New checked for existence, only appears
// in error messages. If the registered class comes from a different install
// than the checked directory, the object activated is the registered one.
//
// The object lives in a single-threaded apartment owned by one goroutine
// locked to its OS thread; every member access is marshaled onto that
// thread, so the returned Dispatcher may be used from any goroutine.
func NewCOMLoader(progID string) Loader {
	return LoaderFunc(func(reference string) (Dispatcher, error) {
		obj := &comObject{
			calls:  make(chan func()),
			done:   make(chan struct{}),
			exited: make(chan struct{}),
		}
		ready := make(chan error, 1)
		go obj.run(progID, ready)
		if err := <-ready; err != nil {
			return nil, fmt.Errorf("load %s (%s): %w", progID, reference, err)
		}
		return obj, nil
	})
}

type comObject struct {
	disp   *ole.IDispatch
	calls  chan func()
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func (o *comObject) run(progID string, ready chan<- error) {
	defer close(o.exited)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			ready <- fmt.Errorf("CoInitializeEx: %w", err)
			return
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		ready <- err
		return
	}
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ready <- err
		return
	}
	o.disp = disp
	ready <- nil

	for {
		select {
		case fn := <-o.calls:
			fn()
		case <-o.done:
			disp.Release()
			return
		}
	}
}

type comResult struct {
	value any
	err   error
}

func (o *comObject) exec(fn func() (any, error)) (any, error) {
	ch := make(chan comResult, 1)
	select {
	case o.calls <- func() {
		v, err := fn()
		ch <- comResult{value: v, err: err}
	}:
	case <-o.done:
		return nil, ErrClosed
	}
	r := <-ch
	return r.value, r.err
}

func (o *comObject) Get(name string) (any, error) {
	return o.exec(func() (any, error) {
		v, err := oleutil.GetProperty(o.disp, name)
		if err != nil {
			return nil, err
		}
		defer v.Clear()
		return variantValue(v), nil
	})
}

func (o *comObject) Put(name string, value any) error {
	_, err := o.exec(func() (any, error) {
		args, release, err := comArgs([]any{value})
		if err != nil {
			return nil, err
		}
		defer release()
		v, err := oleutil.PutProperty(o.disp, name, args...)
		if err != nil {
			return nil, err
		}
		v.Clear()
		return nil, nil
	})
	return err
}

func (o *comObject) Call(name string, args ...any) (any, error) {
	return o.exec(func() (any, error) {
		params, release, err := comArgs(args)
		if err != nil {
			return nil, err
		}
		defer release()
		v, err := oleutil.CallMethod(o.disp, name, params...)
		if err != nil {
			return nil, err
		}
		defer v.Clear()
		return variantValue(v), nil
	})
}

func (o *comObject) Close() error {
	o.once.Do(func() {
		close(o.done)
		<-o.exited
	})
	return nil
}

// variantValue copies a result VARIANT into Go values. Arrays become []any.
func variantValue(v *ole.VARIANT) any {
	if v.VT&ole.VT_ARRAY != 0 {
		sa := v.ToArray()
		if sa == nil {
			return nil
		}
		return sa.ToValueArray()
	}
	return v.Value()
}

// comArgs converts argument types oleutil cannot marshal on its own.
func comArgs(args []any) ([]any, func(), error) {
	var cleanups []func()
	release := func() {
		for _, fn := range cleanups {
			fn()
		}
	}
	out := make([]any, len(args))
	for i, arg := range args {
		arr, ok := arg.([]int32)
		if !ok {
			out[i] = arg
			continue
		}
		v, destroy, err := int32ArrayVariant(arr)
		if err != nil {
			release()
			return nil, nil, err
		}
		cleanups = append(cleanups, destroy)
		out[i] = v
	}
	return out, release, nil
}

func int32ArrayVariant(values []int32) (*ole.VARIANT, func(), error) {
	sa, _, _ := procSafeArrayCreateVector.Call(uintptr(ole.VT_I4), 0, uintptr(len(values)))
	if sa == 0 {
		return nil, nil, errors.New("SafeArrayCreateVector failed")
	}
	destroy := func() { procSafeArrayDestroy.Call(sa) }
	for i := range values {
		idx := int32(i)
		hr, _, _ := procSafeArrayPutElement.Call(sa, uintptr(unsafe.Pointer(&idx)), uintptr(unsafe.Pointer(&values[i])))
		if hr != 0 {
			destroy()
			return nil, nil, ole.NewError(hr)
		}
	}
	v := ole.NewVariant(ole.VT_ARRAY|ole.VT_I4, int64(sa))
	return &v, destroy, nil
}
