// Package errs defines the error kinds returned by the billing engine.
//
// Every typed error unwraps to exactly one kind sentinel, so callers can branch with
// errors.Is(err, errs.ErrNotFound) and still extract details with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Kind sentinels.
var (
	ErrValidation        = errors.New("validation error")
	ErrAuthorization     = errors.New("authorization error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
	ErrPrecondition      = errors.New("precondition failed")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation builds a ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthorizationError reports an actor lacking the role or permission for an operation.
type AuthorizationError struct {
	Role      string
	Operation string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization error: role %s may not perform %s", e.Role, e.Operation)
}

func (e *AuthorizationError) Unwrap() error { return ErrAuthorization }

// NotFoundError reports a missing entity or one outside the caller's business.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Is lets a bare NotFoundError{Entity: "quote"} sentinel match any quote not-found error.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Entity == e.Entity && (t.ID == "" || t.ID == e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidTransitionError reports a state machine rejecting a transition.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition: %s -> %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// InvalidTransition builds an InvalidTransitionError.
func InvalidTransition(entity string, from, to fmt.Stringer) error {
	return &InvalidTransitionError{Entity: entity, From: from.String(), To: to.String()}
}

// ConflictError reports an optimistic write whose expected version no longer matches.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s %s was modified concurrently", e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Conflict builds a ConflictError.
func Conflict(entity, id string) error {
	return &ConflictError{Entity: entity, ID: id}
}

// PreconditionError reports a command whose sibling-entity preconditions are not met.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// Precondition builds a PreconditionError.
func Precondition(reason string) error {
	return &PreconditionError{Reason: reason}
}

// KindOf returns the kind sentinel err belongs to, or nil for infrastructure errors.
func KindOf(err error) error {
	for _, k := range []error{ErrValidation, ErrAuthorization, ErrNotFound, ErrInvalidTransition, ErrConflict, ErrPrecondition} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindName is KindOf rendered as a metric/log label.
func KindName(err error) string {
	switch KindOf(err) {
	case ErrValidation:
		return "validation"
	case ErrAuthorization:
		return "authorization"
	case ErrNotFound:
		return "not_found"
	case ErrInvalidTransition:
		return "invalid_transition"
	case ErrConflict:
		return "conflict"
	case ErrPrecondition:
		return "precondition"
	default:
		return "internal"
	}
}
