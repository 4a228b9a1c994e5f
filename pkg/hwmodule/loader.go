// SPDX-License-Identifier: MPL-2.0

package hwmodule

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Loader loads a single candidate library and validates its descriptor.
// A Loader holds no mutable state and is safe for concurrent use.
type Loader struct {
	linker Linker
	symbol string
	logger *log.Logger
}

// NewLoader returns a Loader that opens libraries through linker. A nil logger
// discards output.
func NewLoader(linker Linker, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		linker: linker,
		symbol: InfoSymbol,
		logger: logger,
	}
}

// Load opens path, resolves the InfoSymbol descriptor and checks that it
// reports id. On success the returned Module owns the library handle. On any
// failure after the library was opened, the handle is closed before Load
// returns; the error is a *LoadError, *MissingDescriptorError or
// *IdentityMismatchError.
func (l *Loader) Load(id, path string) (mod *Module, err error) {
	if err := ValidateModuleID(id); err != nil {
		return nil, err
	}

	l.logger.Debug("load: E", "id", id, "path", path)
	defer func() {
		l.logger.Debug("load: X", "id", id, "path", path, "ok", err == nil)
	}()

	lib, err := l.linker.Open(path)
	if err != nil {
		l.logger.Error("load: open failed", "module", path, "error", err)
		return nil, &LoadError{Path: path, Err: err}
	}
	if lib == nil {
		return nil, &LoadError{Path: path, Err: errors.New("linker returned no library")}
	}
	defer func() {
		if err == nil {
			return
		}
		if cerr := lib.Close(); cerr != nil {
			l.logger.Warn("load: close after failure", "path", path, "error", cerr)
		}
	}()

	desc, err := lib.Descriptor(l.symbol)
	if err != nil || desc == nil {
		l.logger.Error("load: couldn't find symbol", "symbol", l.symbol, "path", path)
		return nil, &MissingDescriptorError{Path: path, Symbol: l.symbol, Err: err}
	}

	if desc.ID != id {
		l.logger.Error("load: id mismatch", "id", id, "hmi.id", desc.ID, "path", path)
		return nil, &IdentityMismatchError{Path: path, Want: id, Got: desc.ID}
	}

	return newModule(id, path, lib, desc), nil
}
