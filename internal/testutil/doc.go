// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test doubles and helpers shared across halmod's
// packages.
//
// FakeLinker stands in for the dynamic linker and counts open handles so tests
// can assert that every failed candidate was released. FakeProperties serves
// fixed property values and lookup errors. The Must* helpers fail the test on
// filesystem errors.
package testutil
