// SPDX-License-Identifier: MPL-2.0

//go:build darwin || freebsd || linux

package dl

import "plugin"

func openPlugin(path string) (func(string) (any, error), error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return func(name string) (any, error) {
		sym, err := p.Lookup(name)
		return sym, err
	}, nil
}
