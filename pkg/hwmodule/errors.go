// SPDX-License-Identifier: MPL-2.0

package hwmodule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLoad is the sentinel error wrapped by LoadError.
	ErrLoad = errors.New("module library load failed")
	// ErrMissingDescriptor is the sentinel error wrapped by MissingDescriptorError.
	ErrMissingDescriptor = errors.New("module descriptor symbol not found")
	// ErrIdentityMismatch is the sentinel error wrapped by IdentityMismatchError.
	ErrIdentityMismatch = errors.New("module id mismatch")
	// ErrModuleNotFound is the sentinel error wrapped by ModuleNotFoundError.
	ErrModuleNotFound = errors.New("module not found")
	// ErrPathTooLong is the sentinel error wrapped by PathTooLongError.
	ErrPathTooLong = errors.New("candidate path too long")
	// ErrInvalidModuleID is returned when a module id is empty or malformed.
	ErrInvalidModuleID = errors.New("invalid module id")
	// ErrInvalidVariantKeys is the sentinel error wrapped by InvalidVariantKeysError.
	ErrInvalidVariantKeys = errors.New("invalid variant keys")
	// ErrModuleClosed is returned by operations on a Module after Close.
	ErrModuleClosed = errors.New("module closed")
)

type (
	// LoadError is returned when the linker cannot open a candidate library
	// (missing file, malformed binary, unresolved symbol). It wraps ErrLoad and
	// the underlying linker diagnostic.
	LoadError struct {
		Path string
		Err  error
	}

	// MissingDescriptorError is returned when an opened library does not export
	// the descriptor symbol. It wraps ErrMissingDescriptor.
	MissingDescriptorError struct {
		Path   string
		Symbol string
		Err    error
	}

	// IdentityMismatchError is returned when a library's descriptor reports an id
	// other than the one requested. It wraps ErrIdentityMismatch.
	IdentityMismatchError struct {
		Path string
		Want string
		Got  string
	}

	// PathTooLongError is returned when a candidate path does not fit in MaxPathLen.
	// It wraps ErrPathTooLong.
	PathTooLongError struct {
		Path  string
		Limit int
	}

	// ModuleNotFoundError is returned when every variant has been tried without
	// success. Attempts records each candidate in the order it was tried.
	// It wraps ErrModuleNotFound.
	ModuleNotFoundError struct {
		ID       string
		Attempts []Attempt
	}

	// InvalidVariantKeysError is returned by NewVariantKeys for a malformed key list.
	// It wraps ErrInvalidVariantKeys.
	InvalidVariantKeysError struct {
		Reason string
	}

	// Attempt records the outcome of one candidate tried by the Resolver.
	Attempt struct {
		Key     string `json:"key" toml:"key"`
		Variant string `json:"variant" toml:"variant"`
		Path    string `json:"path" toml:"path"`
		Err     error  `json:"-" toml:"-"`
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the linker diagnostic.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// Error implements the error interface.
func (e *MissingDescriptorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: couldn't find symbol %s: %v", e.Path, e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s: couldn't find symbol %s", e.Path, e.Symbol)
}

// Unwrap returns both the sentinel and the lookup diagnostic, if any.
func (e *MissingDescriptorError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingDescriptor}
	}
	return []error{ErrMissingDescriptor, e.Err}
}

// Error implements the error interface.
func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("%s: id=%q != hmi->id=%q", e.Path, e.Want, e.Got)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *IdentityMismatchError) Unwrap() error {
	return ErrIdentityMismatch
}

// Error implements the error interface.
func (e *PathTooLongError) Error() string {
	return fmt.Sprintf("candidate path %q is %d bytes (limit %d)", e.Path, len(e.Path), e.Limit)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *PathTooLongError) Unwrap() error {
	return ErrPathTooLong
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("module %q not found: no candidates", e.ID)
	}
	paths := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		paths = append(paths, a.Path)
	}
	return fmt.Sprintf("module %q not found (tried %s)", e.ID, strings.Join(paths, ", "))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *ModuleNotFoundError) Unwrap() error {
	return ErrModuleNotFound
}

// Error implements the error interface.
func (e *InvalidVariantKeysError) Error() string {
	return "invalid variant keys: " + e.Reason
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidVariantKeysError) Unwrap() error {
	return ErrInvalidVariantKeys
}
