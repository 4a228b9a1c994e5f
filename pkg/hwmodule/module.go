// SPDX-License-Identifier: MPL-2.0

package hwmodule

import "sync"

// Module is a successfully loaded module: the open library handle together
// with the descriptor it exported. The caller owns the Module and must Close it.
// The descriptor is only meaningful while the library is open, so Descriptor
// returns nil once the Module has been closed.
type Module struct {
	id   string
	path string
	lib  Library
	desc *Descriptor

	mu       sync.RWMutex
	closed   bool
	once     sync.Once
	closeErr error
}

func newModule(id, path string, lib Library, desc *Descriptor) *Module {
	return &Module{id: id, path: path, lib: lib, desc: desc}
}

// ID returns the identifier the module was requested by.
func (m *Module) ID() string { return m.id }

// Path returns the library file the module was loaded from.
func (m *Module) Path() string { return m.path }

// Descriptor returns a copy of the module descriptor, or nil after Close.
func (m *Module) Descriptor() *Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil
	}
	d := *m.desc
	return &d
}

// Closed reports whether Close has been called.
func (m *Module) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Close releases the library handle. It is safe to call more than once; later
// calls return the result of the first.
func (m *Module) Close() error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		m.closeErr = m.lib.Close()
	})
	return m.closeErr
}
