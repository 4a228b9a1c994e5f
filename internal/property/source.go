// SPDX-License-Identifier: MPL-2.0

package property

import (
	"strings"

	"github.com/halmod/halmod/pkg/hwmodule"
)

type (
	// Map is a static PropertySource. Empty values count as unset. Keys that
	// differ only in case should not be mixed; which one wins is unspecified.
	Map map[string]string

	// Chain consults sources in order and returns the first non-empty value.
	Chain []hwmodule.PropertySource
)

var (
	_ hwmodule.PropertySource = Map(nil)
	_ hwmodule.PropertySource = Chain(nil)
)

// Property implements hwmodule.PropertySource. Keys match case-insensitively,
// like FileSource keys.
func (m Map) Property(key string) (string, bool, error) {
	v, ok := m[key]
	if !ok {
		v, ok = m.fold(key)
	}
	if !ok {
		return "", false, nil
	}
	v = strings.TrimSpace(v)
	return v, v != "", nil
}

func (m Map) fold(key string) (string, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// ParseAssignments builds a Map from "key=value" strings such as repeated
// --prop flags. Later assignments win.
func ParseAssignments(assignments []string) (Map, error) {
	m := make(Map, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &AssignmentError{Value: a}
		}
		m[key] = value
	}
	return m, nil
}

// Property implements hwmodule.PropertySource. A source that fails does not
// stop the chain; its error is reported only if no later source has a value.
func (c Chain) Property(key string) (string, bool, error) {
	var firstErr error
	for _, src := range c {
		if src == nil {
			continue
		}
		v, ok, err := src.Property(key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok && v != "" {
			return v, true, nil
		}
	}
	return "", false, firstErr
}
