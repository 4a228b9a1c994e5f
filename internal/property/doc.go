// SPDX-License-Identifier: MPL-2.0

// Package property implements hwmodule.PropertySource backends: build.prop
// style files read through Viper, static maps, and an ordered chain of sources.
//
// Property names are dotted ("ro.product.board"). Viper is configured with a
// "::" key delimiter so those dots are never treated as nesting.
package property
