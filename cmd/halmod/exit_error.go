// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

const (
	// ExitNotFound is returned when no candidate library could be loaded.
	ExitNotFound ExitCode = 1
	// ExitUsage is returned for invalid arguments, flags or configuration.
	ExitUsage ExitCode = 2
)

// ExitCode is a process exit status.
type ExitCode int

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitUsage, Err: err}
}
