package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrPermissionDenied       = errors.New("permission denied")
)

// InvalidStateTransitionError is returned when an action is requested on an
// entity whose current status does not allow it. Action is phrased as a past
// participle ("prepared", "packed") so the message reads naturally.
type InvalidStateTransitionError struct {
	Entity   string
	Action   string
	Current  string
	Required string
}

func NewInvalidStateTransitionError(entity, action, current, required string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Entity: entity, Action: action, Current: current, Required: required}
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Required == "" {
		return fmt.Sprintf("%s: %s cannot be %s from %s status",
			ErrInvalidStateTransition, e.Entity, e.Action, e.Current)
	}
	return fmt.Sprintf("%s: %s must be in %s status to be %s, current status is %s",
		ErrInvalidStateTransition, e.Entity, e.Required, e.Action, e.Current)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// PermissionDeniedError is returned when the caller's role or ownership does
// not allow the requested action.
type PermissionDeniedError struct {
	Action string
	Cause  error
}

func NewPermissionDeniedError(action string) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action}
}

func NewPermissionDeniedErrorWithCause(action string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action, Cause: cause}
}

func (e *PermissionDeniedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPermissionDenied, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPermissionDenied, e.Action)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}
