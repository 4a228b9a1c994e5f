// SPDX-License-Identifier: MPL-2.0

//go:build darwin || freebsd || linux

package dl

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"

	"github.com/halmod/halmod/pkg/hwmodule"
)

const defaultMode = purego.RTLD_NOW | purego.RTLD_LOCAL

// hwModuleInfo mirrors the leading fields of the C hw_module_t structure.
// Only this prefix is read; the methods table and reserved area are ignored.
type hwModuleInfo struct {
	tag              uint32
	moduleAPIVersion uint16
	halAPIVersion    uint16
	id               *byte
	name             *byte
	author           *byte
}

func dlopen(path string, mode int) (uintptr, error) {
	return purego.Dlopen(path, mode)
}

func dlsym(handle uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(handle, symbol)
}

func dlclose(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

// decodeDescriptor copies the descriptor at addr into Go memory. The strings
// are copied so the result stays valid after the library is closed.
func decodeDescriptor(addr uintptr) (*hwmodule.Descriptor, error) {
	info := *(**hwModuleInfo)(unsafe.Pointer(&addr))
	if info.id == nil {
		return nil, ErrNullModuleID
	}
	return &hwmodule.Descriptor{
		Tag:              info.tag,
		ModuleAPIVersion: hwmodule.APIVersion(info.moduleAPIVersion),
		HALAPIVersion:    hwmodule.APIVersion(info.halAPIVersion),
		ID:               unix.BytePtrToString(info.id),
		Name:             unix.BytePtrToString(info.name),
		Author:           unix.BytePtrToString(info.author),
	}, nil
}
