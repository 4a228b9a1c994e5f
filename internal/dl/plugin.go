// SPDX-License-Identifier: MPL-2.0

package dl

import (
	"fmt"
	"sync"

	"github.com/halmod/halmod/pkg/hwmodule"
)

type (
	// PluginLinker opens modules built with -buildmode=plugin. Such a module
	// exports its descriptor as a package-level variable:
	//
	//	var HMI = hwmodule.Descriptor{ID: "sensors", Name: "Sensors"}
	//
	// The Go runtime never unloads plugins, so Close only invalidates the
	// returned Library.
	PluginLinker struct{}

	pluginLibrary struct {
		path   string
		lookup func(string) (any, error)

		mu     sync.Mutex
		closed bool
	}
)

var _ hwmodule.Linker = PluginLinker{}

// NewPluginLinker returns a linker for Go plugin modules.
func NewPluginLinker() PluginLinker {
	return PluginLinker{}
}

// Open implements hwmodule.Linker.
func (PluginLinker) Open(path string) (hwmodule.Library, error) {
	lookup, err := openPlugin(path)
	if err != nil {
		return nil, err
	}
	return &pluginLibrary{path: path, lookup: lookup}, nil
}

// Descriptor implements hwmodule.Library.
func (l *pluginLibrary) Descriptor(symbol string) (*hwmodule.Descriptor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLibraryClosed
	}
	sym, err := l.lookup(symbol)
	if err != nil {
		return nil, err
	}
	return descriptorFromSymbol(l.path, symbol, sym)
}

// Close implements hwmodule.Library.
func (l *pluginLibrary) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

func descriptorFromSymbol(path, symbol string, sym any) (*hwmodule.Descriptor, error) {
	var d *hwmodule.Descriptor
	switch v := sym.(type) {
	case *hwmodule.Descriptor:
		d = v
	case **hwmodule.Descriptor:
		if v != nil {
			d = *v
		}
	default:
		return nil, fmt.Errorf("%s: symbol %s has type %T, want *hwmodule.Descriptor", path, symbol, sym)
	}
	if d == nil {
		return nil, fmt.Errorf("%s: symbol %s is nil", path, symbol)
	}
	out := *d
	return &out, nil
}
