package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a required reference is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionViolation is returned when an operation is attempted in a state that forbids it.
	ErrPreconditionViolation = errors.New("precondition violation")
)

// OpError describes a failed circulation operation.
// Kind is one of the sentinel errors above, Err carries the detail.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

// NewOpError creates an OpError with a formatted detail message.
func NewOpError(op string, kind error, format string, args ...any) *OpError {
	return &OpError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap allows errors.Is against both the kind and the detail.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// IsKind reports whether err is an OpError (or wraps one) of the given kind.
func IsKind(err error, kind error) bool {
	var opErr *OpError
	if !errors.As(err, &opErr) {
		return false
	}

	return errors.Is(opErr.Kind, kind)
}
