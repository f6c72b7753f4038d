package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNodeNotFound = errors.New("node not found in the scene")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HostError wraps a scene-host primitive that returned a non-success
// outcome. The export is aborted and rolled back; the scene is left
// untouched.
type HostError struct {
	Op  string
	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host operation failed: %s: %v", e.Op, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// InvariantError reports an internal inconsistency of the
// programming-defect class, such as a join that left more than one leaf
// selected. Always fatal.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}
