// SPDX-License-Identifier: MPL-2.0

package property

import (
	"errors"
	"fmt"
)

// ErrInvalidAssignment is the sentinel error wrapped by AssignmentError.
var ErrInvalidAssignment = errors.New("invalid property assignment")

// AssignmentError is returned by ParseAssignments for a value not of the form key=value.
type AssignmentError struct {
	Value string
}

// Error implements the error interface.
func (e *AssignmentError) Error() string {
	return fmt.Sprintf("invalid property assignment %q (want key=value)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *AssignmentError) Unwrap() error {
	return ErrInvalidAssignment
}
