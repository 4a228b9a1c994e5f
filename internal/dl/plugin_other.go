// SPDX-License-Identifier: MPL-2.0

//go:build !(darwin || freebsd || linux)

package dl

func openPlugin(string) (func(string) (any, error), error) {
	return nil, ErrUnsupportedPlatform
}
