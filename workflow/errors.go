/*
errors.go - Centralized error types for the leave workflow

PURPOSE:
  All domain error kinds in one place. Callers classify failures with
  errors.Is against the sentinels; structured types carry extra context
  and unwrap to the matching sentinel.

ERROR CATEGORIES:
  1. Authentication errors - bad credentials
  2. Validation errors     - malformed leave submissions
  3. Transition errors     - decisions attempted from the wrong state
  4. Persistence errors    - durable-storage failures (logged, never fatal)

PROPAGATION POLICY:
  Validation and transition errors surface synchronously to the command
  caller. Persistence failures are caught and logged by the application
  layer; in-memory state stays authoritative.
*/
package workflow

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidCredentials is returned when a login email is unknown or the
	// password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when a leave submission fails field validation.
	ErrValidation = errors.New("validation failed")

	// ErrIllegalTransition is returned when a decision is attempted from the
	// wrong status or by a role that cannot decide at that stage.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrMissingReason is returned when a reject decision carries no comments.
	ErrMissingReason = errors.New("rejection requires a reason")

	// ErrNotFound is returned when a leave id does not exist.
	ErrNotFound = errors.New("leave request not found")

	// ErrPersistence wraps durable-storage serialize/deserialize failures.
	ErrPersistence = errors.New("persistence failure")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which submission field was rejected and why.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransitionError reports an approval decision that the state machine refused.
type TransitionError struct {
	LeaveID string
	Status  Status
	Actor   Role
	Action  Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition: %s cannot %s leave %s in status %s",
		e.Actor, e.Action, e.LeaveID, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// PersistenceError reports a failed durable-storage operation for one key.
type PersistenceError struct {
	Key string
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return ErrPersistence }
