// SPDX-License-Identifier: MPL-2.0

// Package config loads halmod's configuration using Viper with CUE as the file
// format.
//
// Configuration is read from ~/.config/halmod/config.cue (XDG_CONFIG_HOME on
// Linux, ~/Library/Application Support/halmod on macOS, %APPDATA%\halmod on
// Windows), falling back to ./config.cue. The file is validated against the
// embedded #Config schema before it is merged over the defaults, and
// HALMOD_* environment variables override both.
package config
