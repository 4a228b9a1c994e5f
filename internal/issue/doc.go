// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for fixing it. The Issue catalog holds longer Markdown guides,
// rendered with glamour, for the failures users hit most: a module that
// cannot be found, an unreadable config or property file, an unsupported
// platform and a malformed module id.
package issue
