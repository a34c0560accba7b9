// Package errors provides the structured error type shared by the collection
// packages. Callers match on kind with the standard library:
//
//	if errors.Is(err, cerrors.ErrUnsupportedOperation) { ... }
package errors

import (
	"fmt"
)

// Kind classifies a collection error.
type Kind uint8

const (
	KindUnsupportedOperation Kind = iota + 1 // mutation through an immutable, fixed-size or unmodifiable instance
	KindDeserialization                      // corrupt or incompatible snapshot
	KindCapacityOverflow                     // a structure cannot grow any further
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedOperation:
		return "unsupported operation"
	case KindDeserialization:
		return "deserialization failed"
	case KindCapacityOverflow:
		return "capacity overflow"
	default:
		return "unknown"
	}
}

// CollectionError is returned (or, for capacity overflow, panicked) by the
// collection packages.
type CollectionError struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "HashMap.Put"
	Message string
	Cause   error
}

// Sentinels for errors.Is. Only Kind takes part in the comparison.
var (
	ErrUnsupportedOperation = &CollectionError{Kind: KindUnsupportedOperation}
	ErrDeserialization      = &CollectionError{Kind: KindDeserialization}
	ErrCapacityOverflow     = &CollectionError{Kind: KindCapacityOverflow}
)

// Error implements the error interface
func (e *CollectionError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *CollectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a CollectionError of the same kind.
func (e *CollectionError) Is(target error) bool {
	t, ok := target.(*CollectionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a CollectionError.
func New(kind Kind, op string, format string, args ...any) *CollectionError {
	return &CollectionError{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a CollectionError around cause.
func Wrap(cause error, kind Kind, op string, message string) *CollectionError {
	return &CollectionError{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// Unsupported is shorthand for a KindUnsupportedOperation error.
func Unsupported(op string) *CollectionError {
	return &CollectionError{Kind: KindUnsupportedOperation, Op: op}
}

// Deserialization is shorthand for a KindDeserialization error.
func Deserialization(op string, format string, args ...any) *CollectionError {
	return New(KindDeserialization, op, format, args...)
}
