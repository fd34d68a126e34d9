package binder

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoStrategy    = errors.New("no binding strategy supports the type")
	ErrInvalidTarget = errors.New("target must be a non-nil pointer")
)

// BindError reports a failure binding Path into Type.
type BindError struct {
	Path string
	Type reflect.Type
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("binder: bind %q as %v: %v", e.Path, e.Type, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
