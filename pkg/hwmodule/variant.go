// SPDX-License-Identifier: MPL-2.0

package hwmodule

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultVariant is both the terminal sentinel key and the variant value it
	// resolves to. It never goes through the PropertySource.
	DefaultVariant = "default"

	// BoardKey selects a board-specific implementation.
	BoardKey = "ro.product.board"
	// ArchKey selects an architecture-specific implementation.
	ArchKey = "ro.arch"
)

var defaultOnly = []string{DefaultVariant}

// VariantKeys is the ordered, immutable list of property keys consulted when
// resolving a module. The last entry is always DefaultVariant, so every
// resolution ends with a candidate that does not depend on configuration.
type VariantKeys struct {
	keys []string
}

// DefaultVariantKeys returns the deployment key order: board, architecture,
// default.
func DefaultVariantKeys() VariantKeys {
	return VariantKeys{keys: []string{BoardKey, ArchKey, DefaultVariant}}
}

// NewVariantKeys builds a key list from the given property keys, most specific
// first. DefaultVariant is appended when missing; it is rejected anywhere but in
// the last position. Empty and duplicate keys are rejected.
func NewVariantKeys(keys ...string) (VariantKeys, error) {
	out := make([]string, 0, len(keys)+1)
	seen := make(map[string]struct{}, len(keys))
	for i, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			return VariantKeys{}, &InvalidVariantKeysError{Reason: fmt.Sprintf("key %d is empty", i)}
		}
		if key == DefaultVariant && i != len(keys)-1 {
			return VariantKeys{}, &InvalidVariantKeysError{Reason: fmt.Sprintf("%q must be the last key (found at %d)", DefaultVariant, i)}
		}
		if _, dup := seen[key]; dup {
			return VariantKeys{}, &InvalidVariantKeysError{Reason: fmt.Sprintf("duplicate key %q", key)}
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	if len(out) == 0 || out[len(out)-1] != DefaultVariant {
		out = append(out, DefaultVariant)
	}
	return VariantKeys{keys: out}, nil
}

// Keys returns a copy of the ordered key list.
func (v VariantKeys) Keys() []string {
	return slices.Clone(v.list())
}

// list returns the key slice without copying. Callers must not modify it.
func (v VariantKeys) list() []string {
	if len(v.keys) == 0 {
		return defaultOnly
	}
	return v.keys
}

// Len returns the number of keys including the default sentinel.
func (v VariantKeys) Len() int {
	return len(v.list())
}

// String returns the keys joined by commas.
func (v VariantKeys) String() string {
	return strings.Join(v.Keys(), ",")
}

// IsDefault reports whether key is the terminal sentinel.
func IsDefault(key string) bool {
	return key == DefaultVariant
}
