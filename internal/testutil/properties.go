// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"slices"
	"sync"
)

// FakeProperties is a hwmodule.PropertySource backed by maps. Keys in Errors
// fail with the mapped error; keys absent from Values are unset. Lookups are
// recorded in order.
type FakeProperties struct {
	Values map[string]string
	Errors map[string]error

	mu      sync.Mutex
	lookups []string
}

// Property implements hwmodule.PropertySource.
func (p *FakeProperties) Property(key string) (string, bool, error) {
	p.mu.Lock()
	p.lookups = append(p.lookups, key)
	p.mu.Unlock()

	if err, ok := p.Errors[key]; ok {
		return "", false, err
	}
	v, ok := p.Values[key]
	return v, ok, nil
}

// Lookups returns the keys queried so far.
func (p *FakeProperties) Lookups() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.lookups)
}
