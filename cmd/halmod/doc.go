// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the halmod command line: get, paths, props and
// config. Commands are built around an App so tests can inject a fake linker
// and configuration provider.
package cmd
