// Package fault defines the error taxonomy shared across the service and
// persistence layers. Callers branch on these types with errors.As; the
// helper predicates cover the common checks.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field.
// The caller must fix the input; retrying the same call cannot succeed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown record ID.
type NotFoundError struct {
	Kind string // "help request" or "knowledge entry"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// AlreadyTerminalError reports a transition attempted on a record that has
// already left the pending state. Callers should treat it as "someone
// already handled this".
type AlreadyTerminalError struct {
	ID     string
	Status string
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("help request %s already handled (status: %s)", e.ID, e.Status)
}

// ConflictError reports concurrent-write contention detected by the store.
// Retrying the whole operation once is safe.
type ConflictError struct {
	Op string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("write conflict during %s", e.Op)
}

// StoreUnavailableError reports that the underlying persistence failed or
// is unreachable. The wrapped operation left no partial state behind.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAlreadyTerminal reports whether err is an AlreadyTerminalError.
func IsAlreadyTerminal(err error) bool {
	var target *AlreadyTerminalError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
