// SPDX-License-Identifier: MPL-2.0

package hwmodule

import (
	"fmt"
	"strings"
)

const (
	// DefaultLibraryRoot is the directory module libraries are installed in.
	DefaultLibraryRoot = "/system/lib/hw"
	// DefaultExtension is the shared-library file extension, without the dot.
	DefaultExtension = "so"
	// MaxPathLen is PATH_MAX. It counts the terminating NUL the linker needs, so
	// the longest usable path is MaxPathLen-1 bytes.
	MaxPathLen = 4096
)

// CandidatePath builds "<root>/<id>.<variant>.<ext>". A result that does not
// fit in MaxPathLen is an error; paths are never truncated.
func CandidatePath(root, id, variant, ext string) (string, error) {
	var b strings.Builder
	b.Grow(len(root) + len(id) + len(variant) + len(ext) + 3)
	b.WriteString(strings.TrimRight(root, "/"))
	b.WriteByte('/')
	b.WriteString(id)
	b.WriteByte('.')
	b.WriteString(variant)
	b.WriteByte('.')
	b.WriteString(strings.TrimPrefix(ext, "."))

	path := b.String()
	if len(path) >= MaxPathLen {
		return "", &PathTooLongError{Path: path, Limit: MaxPathLen}
	}
	return path, nil
}

// ValidateModuleID rejects ids that are empty or would escape the library root.
func ValidateModuleID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return ErrInvalidModuleID
	case strings.ContainsAny(id, "/\x00"):
		return &invalidModuleIDError{id: id}
	}
	return nil
}

type invalidModuleIDError struct {
	id string
}

func (e *invalidModuleIDError) Error() string {
	return fmt.Sprintf("invalid module id %q: must not contain '/' or NUL", e.id)
}

func (e *invalidModuleIDError) Unwrap() error {
	return ErrInvalidModuleID
}
