package source

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNullSource    = errors.New("source is null")
	ErrUnsupported   = errors.New("unsupported navigation")
	ErrShapeMismatch = errors.New("shape mismatch")
)

// UnsupportedError reports navigation a source cannot perform,
// such as indexing a bean.
type UnsupportedError struct {
	Op     string
	Source string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("source: %s on %s: %v", e.Op, e.Source, ErrUnsupported)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// ShapeMismatchError reports a capability assertion against a value of
// another shape.
type ShapeMismatchError struct {
	Want, Got Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("source: want %v, got %v: %v", e.Want, e.Got, ErrShapeMismatch)
}

func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}

// TypeMismatchError reports an As request for a type the raw value does not have.
type TypeMismatchError struct {
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("source: want %v, got %v: %v", e.Want, e.Got, ErrShapeMismatch)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}
