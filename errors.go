package ingredient

import (
	"errors"
	"fmt"
)

// Reasons of a ParseError, to be checked with errors.Is.
var (
	ErrNoMatch    = errors.New("line does not match the grammar")
	ErrOutOfRange = errors.New("number out of range")
	ErrTooLong    = errors.New("line too long")
	ErrTooComplex = errors.New("line too complex")
)

// ErrInternal is reported by all internal errors.
var ErrInternal = errors.New("internal inconsistency")

// ParseError is returned by Parse if a line cannot be recognized.
// Callers may fall back to treating the whole line as the ingredient name,
// see ParseOrIngredient.
type ParseError struct {
	Span   Span  // part of the input where the problem has been detected
	Reason error // one of ErrNoMatch, ErrOutOfRange, ErrTooLong, ErrTooComplex
	Err    error // underlying error, may be nil
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ingredient: %v at %s", e.Reason, e.Span)
	}
	return fmt.Sprintf("ingredient: %v at %s: %v", e.Reason, e.Span, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

// InternalError signals that the grammar and the unit tables of this package
// are out of sync, i.e. the generated files have not been generated from the
// same dictionary. It is never caused by user input.
type InternalError struct {
	Span Span
	Msg  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("ingredient: %v at %s: %s", ErrInternal, e.Span, e.Msg)
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}

func internalError(span Span, format string, args ...interface{}) *InternalError {
	err := &InternalError{Span: span, Msg: fmt.Sprintf(format, args...)}
	tracer().Errorf("%v", err)
	return err
}
