package uevent

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is returned when the status file cannot be opened or read.
	ErrIO = errors.New("cannot read power supply status file")

	// ErrInvalidNumber is returned when a present field cannot be coerced to
	// its numeric type.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseError describes a failed read or a failed coercion. Kind is either
// ErrIO or ErrInvalidNumber, so callers can use errors.Is on both the kind
// and the underlying cause.
type ParseError struct {
	Kind  error
	Path  string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Kind == ErrInvalidNumber {
		return fmt.Sprintf("%s %q for %s: %v", e.Kind, e.Value, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
