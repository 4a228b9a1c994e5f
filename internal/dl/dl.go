// SPDX-License-Identifier: MPL-2.0

// Package dl provides hwmodule.Linker implementations backed by the platform
// dynamic linker (dlopen/dlsym/dlclose through purego) and by the Go plugin
// runtime.
package dl

import (
	"errors"
	"fmt"
	"sync"

	"github.com/halmod/halmod/pkg/hwmodule"
)

var (
	// ErrUnsupportedPlatform is returned by Open on platforms without a dynamic linker binding.
	ErrUnsupportedPlatform = errors.New("dynamic module loading is not supported on this platform")
	// ErrNullModuleID is returned when a descriptor symbol exists but its id field is NULL.
	ErrNullModuleID = errors.New("module descriptor has a NULL id")
	// ErrLibraryClosed is returned by Descriptor after Close.
	ErrLibraryClosed = errors.New("library is closed")
)

type (
	// Linker opens native shared libraries with RTLD_NOW|RTLD_LOCAL: undefined
	// symbols are resolved before Open returns and the library's exports are
	// not added to the global symbol namespace. The platform linker shares
	// and reference-counts repeated opens of the same file.
	Linker struct {
		mode int
	}

	// nativeLibrary is an open dlopen handle.
	nativeLibrary struct {
		path   string
		handle uintptr

		mu     sync.Mutex
		closed bool
	}
)

var _ hwmodule.Linker = (*Linker)(nil)

// NewLinker returns the native linker for the current platform.
func NewLinker() *Linker {
	return &Linker{mode: defaultMode}
}

// Open implements hwmodule.Linker.
func (l *Linker) Open(path string) (hwmodule.Library, error) {
	handle, err := dlopen(path, l.mode)
	if err != nil {
		return nil, err
	}
	return &nativeLibrary{path: path, handle: handle}, nil
}

// Descriptor implements hwmodule.Library.
func (l *nativeLibrary) Descriptor(symbol string) (*hwmodule.Descriptor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLibraryClosed
	}
	addr, err := dlsym(l.handle, symbol)
	if err != nil {
		return nil, err
	}
	if addr == 0 {
		return nil, fmt.Errorf("%s: symbol %s resolved to NULL", l.path, symbol)
	}
	return decodeDescriptor(addr)
}

// Close implements hwmodule.Library. Only the first call releases the handle.
func (l *nativeLibrary) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return dlclose(l.handle)
}
