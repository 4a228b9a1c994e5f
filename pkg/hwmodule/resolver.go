// SPDX-License-Identifier: MPL-2.0

package hwmodule

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// SkipUnset marks a key with no value in the PropertySource.
	SkipUnset SkipReason = "unset"
	// SkipLookupFailed marks a key whose lookup returned an error.
	SkipLookupFailed SkipReason = "lookup failed"
	// SkipInvalidValue marks a value that would leave the library root.
	SkipInvalidValue SkipReason = "invalid value"
)

type (
	// SkipReason explains why a variant key produced no candidate.
	SkipReason string

	// ResolverOptions configures a Resolver. Zero values select the deployment
	// defaults.
	ResolverOptions struct {
		// Linker opens candidate libraries. Required.
		Linker Linker
		// Properties supplies variant values. Nil means every key is unset.
		Properties PropertySource
		// Keys is the ordered variant key list. The zero value is DefaultVariantKeys().
		Keys VariantKeys
		// LibraryRoot defaults to DefaultLibraryRoot.
		LibraryRoot string
		// Extension defaults to DefaultExtension.
		Extension string
		// Logger defaults to a discarding logger.
		Logger *log.Logger
	}

	// Resolver finds the best module implementation for the running
	// configuration. All fields are fixed at construction, so a Resolver may be
	// shared between goroutines.
	Resolver struct {
		loader *Loader
		props  PropertySource
		keys   VariantKeys
		root   string
		ext    string
		logger *log.Logger
	}

	// Candidate describes one step of the variant walk without loading anything.
	Candidate struct {
		Key     string     `json:"key" toml:"key"`
		Variant string     `json:"variant,omitempty" toml:"variant,omitempty"`
		Path    string     `json:"path,omitempty" toml:"path,omitempty"`
		Skipped SkipReason `json:"skipped,omitempty" toml:"skipped,omitempty"`
		Err     error      `json:"-" toml:"-"`
	}
)

// ErrNoLinker is returned by NewResolver when ResolverOptions.Linker is nil.
var ErrNoLinker = errors.New("resolver requires a linker")

// NewResolver builds a Resolver from opts.
func NewResolver(opts ResolverOptions) (*Resolver, error) {
	if opts.Linker == nil {
		return nil, ErrNoLinker
	}
	if opts.Properties == nil {
		opts.Properties = NoProperties
	}
	if len(opts.Keys.keys) == 0 {
		opts.Keys = DefaultVariantKeys()
	}
	if opts.LibraryRoot == "" {
		opts.LibraryRoot = DefaultLibraryRoot
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Resolver{
		loader: NewLoader(opts.Linker, opts.Logger),
		props:  opts.Properties,
		keys:   opts.Keys,
		root:   opts.LibraryRoot,
		ext:    opts.Extension,
		logger: opts.Logger,
	}, nil
}

// Keys returns the variant keys the Resolver walks.
func (r *Resolver) Keys() VariantKeys { return r.keys }

// LibraryRoot returns the directory candidates are built under.
func (r *Resolver) LibraryRoot() string { return r.root }

// Extension returns the library file extension.
func (r *Resolver) Extension() string { return r.ext }

// GetModule is the public entry point: it resolves id and returns the loaded
// module or an error. It is equivalent to Resolve.
func (r *Resolver) GetModule(id string) (*Module, error) {
	return r.Resolve(id)
}

// Resolve tries each variant key in order and returns the first candidate that
// loads and reports id. Keys without a value are skipped without attempting a
// path. When nothing loads, the error is a *ModuleNotFoundError and no library
// remains open.
func (r *Resolver) Resolve(id string) (*Module, error) {
	if err := ValidateModuleID(id); err != nil {
		return nil, err
	}

	r.logger.Debug("get module: E", "id", id)

	var attempts []Attempt
	for _, key := range r.keys.list() {
		variant, skip := r.variant(key)
		if skip != "" {
			continue
		}

		path, err := CandidatePath(r.root, id, variant, r.ext)
		if err != nil {
			var tooLong *PathTooLongError
			if errors.As(err, &tooLong) {
				path = tooLong.Path
			}
			r.logger.Error("get module: bad candidate path", "id", id, "key", key, "error", err)
			attempts = append(attempts, Attempt{Key: key, Variant: variant, Path: path, Err: err})
			continue
		}

		mod, err := r.loader.Load(id, path)
		if err == nil {
			r.logger.Debug("get module: X", "id", id, "path", path, "key", key)
			return mod, nil
		}
		attempts = append(attempts, Attempt{Key: key, Variant: variant, Path: path, Err: err})
	}

	r.logger.Debug("get module: X", "id", id, "found", false, "attempts", len(attempts))
	return nil, &ModuleNotFoundError{ID: id, Attempts: attempts}
}

// Candidates reports the walk Resolve would perform for id, without opening
// any library.
func (r *Resolver) Candidates(id string) ([]Candidate, error) {
	if err := ValidateModuleID(id); err != nil {
		return nil, err
	}

	keys := r.keys.list()
	out := make([]Candidate, 0, len(keys))
	for _, key := range keys {
		c := Candidate{Key: key}
		variant, skip := r.variant(key)
		if skip != "" {
			c.Skipped = skip
			out = append(out, c)
			continue
		}
		c.Variant = variant

		path, err := CandidatePath(r.root, id, variant, r.ext)
		if err != nil {
			c.Err = err
		}
		c.Path = path
		out = append(out, c)
	}
	return out, nil
}

// variant returns the value for key, or a non-empty SkipReason when the key
// produces no candidate. Lookup errors are not retried.
func (r *Resolver) variant(key string) (string, SkipReason) {
	if IsDefault(key) {
		return DefaultVariant, ""
	}

	value, ok, err := r.props.Property(key)
	switch {
	case err != nil:
		r.logger.Warn("property lookup failed, skipping variant", "key", key, "error", err)
		return "", SkipLookupFailed
	case !ok || value == "":
		return "", SkipUnset
	case strings.ContainsAny(value, "/\x00"):
		r.logger.Warn("variant value contains a path separator, skipping", "key", key, "value", value)
		return "", SkipInvalidValue
	}
	return value, ""
}
