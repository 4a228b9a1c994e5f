// SPDX-License-Identifier: MPL-2.0

package hwmodule

type (
	// Linker opens module libraries. Implementations must resolve undefined
	// symbols eagerly and must not make the library's own symbols globally
	// visible. Opening the same file twice is expected to share one
	// reference-counted mapping; Linker must be safe for concurrent use.
	Linker interface {
		Open(path string) (Library, error)
	}

	// Library is an open module library. Close releases the caller's reference;
	// descriptors obtained from the library must not be used afterwards.
	Library interface {
		// Descriptor resolves symbol and decodes the module descriptor it names.
		// A missing symbol returns an error.
		Descriptor(symbol string) (*Descriptor, error)
		Close() error
	}

	// PropertySource supplies variant values. ok is false when the key is unset.
	// A non-nil error reports a lookup failure; the Resolver treats it like an
	// unset key.
	PropertySource interface {
		Property(key string) (value string, ok bool, err error)
	}

	// PropertyFunc adapts a function to PropertySource.
	PropertyFunc func(key string) (string, bool, error)
)

// Property calls f(key).
func (f PropertyFunc) Property(key string) (string, bool, error) {
	return f(key)
}

// NoProperties is a PropertySource with every key unset. A Resolver using it
// only ever tries the default variant.
var NoProperties PropertySource = PropertyFunc(func(string) (string, bool, error) {
	return "", false, nil
})
