// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/halmod/halmod/pkg/hwmodule"
)

// ErrDoubleClose is returned by a fake library closed more than once.
var ErrDoubleClose = errors.New("library closed twice")

type (
	// FakeModule scripts how a path behaves when opened by a FakeLinker.
	FakeModule struct {
		// Descriptor is returned for hwmodule.InfoSymbol. Nil means the symbol is absent.
		Descriptor *hwmodule.Descriptor
		// OpenErr makes Open fail.
		OpenErr error
		// CloseErr is returned from Close (after the reference is released).
		CloseErr error
	}

	// FakeLinker is an in-memory hwmodule.Linker. Like the dynamic linker, it
	// shares one reference-counted mapping per path: every Open of a path bumps
	// its count and every Close drops it. It records the order of Open calls.
	FakeLinker struct {
		mu      sync.Mutex
		modules map[string]FakeModule
		refs    map[string]int
		calls   []string
		opens   int
		closes  int
	}

	fakeLibrary struct {
		linker *FakeLinker
		path   string
		desc   *hwmodule.Descriptor

		mu       sync.Mutex
		closed   bool
		closeErr error
	}
)

// NewFakeLinker returns an empty FakeLinker; unknown paths fail to open.
func NewFakeLinker() *FakeLinker {
	return &FakeLinker{
		modules: make(map[string]FakeModule),
		refs:    make(map[string]int),
	}
}

// Add registers the behavior for path and returns f for chaining.
func (f *FakeLinker) Add(path string, m FakeModule) *FakeLinker {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modules[path] = m
	return f
}

// AddModule registers a well-formed module at path that reports id.
func (f *FakeLinker) AddModule(path, id string) *FakeLinker {
	return f.Add(path, FakeModule{Descriptor: &hwmodule.Descriptor{
		Tag:              hwmodule.HardwareModuleTag,
		ModuleAPIVersion: hwmodule.MakeAPIVersion(1, 0),
		HALAPIVersion:    hwmodule.MakeAPIVersion(1, 0),
		ID:               id,
		Name:             id + " module",
		Author:           "halmod tests",
	}})
}

// Open implements hwmodule.Linker.
func (f *FakeLinker) Open(path string) (hwmodule.Library, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, path)
	m, ok := f.modules[path]
	if !ok {
		return nil, fmt.Errorf("%s: cannot open shared object file: No such file or directory", path)
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}

	f.refs[path]++
	f.opens++
	lib := &fakeLibrary{linker: f, path: path, closeErr: m.CloseErr}
	if m.Descriptor != nil {
		d := *m.Descriptor
		lib.desc = &d
	}
	return lib, nil
}

// Calls returns the paths passed to Open, in order.
func (f *FakeLinker) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Opens returns the number of successful Open calls.
func (f *FakeLinker) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

// Closes returns the number of Close calls that released a reference.
func (f *FakeLinker) Closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// Outstanding returns the number of references still held across all paths.
func (f *FakeLinker) Outstanding() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens - f.closes
}

// Refs returns the reference count of the mapping for path.
func (f *FakeLinker) Refs(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refs[path]
}

func (f *FakeLinker) release(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs[path]--
	f.closes++
	if f.refs[path] == 0 {
		delete(f.refs, path)
	}
}

func (l *fakeLibrary) Descriptor(symbol string) (*hwmodule.Descriptor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, fmt.Errorf("%s: library already closed", l.path)
	}
	if symbol != hwmodule.InfoSymbol || l.desc == nil {
		return nil, fmt.Errorf("%s: undefined symbol: %s", l.path, symbol)
	}
	d := *l.desc
	return &d, nil
}

func (l *fakeLibrary) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrDoubleClose
	}
	l.closed = true
	l.mu.Unlock()

	l.linker.release(l.path)
	return l.closeErr
}
