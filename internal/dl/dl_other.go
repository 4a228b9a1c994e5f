// SPDX-License-Identifier: MPL-2.0

//go:build !(darwin || freebsd || linux)

package dl

import "github.com/halmod/halmod/pkg/hwmodule"

const defaultMode = 0

func dlopen(string, int) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func dlsym(uintptr, string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func dlclose(uintptr) error {
	return nil
}

func decodeDescriptor(uintptr) (*hwmodule.Descriptor, error) {
	return nil, ErrUnsupportedPlatform
}
