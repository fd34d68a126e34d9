package typeinfo

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrConstructorIsNotAFunction = errors.New("provided constructor is not a function")
	ErrIsNotAConstructor         = errors.New("provided function is not a recognizable constructor")
	ErrNamesMismatch             = errors.New("component names do not match constructor parameters")
	ErrNotConstructible          = errors.New("type cannot be constructed")
	ErrNilResult                 = errors.New("constructor returned nil")
	ErrNotWritable               = errors.New("property is not writable")
	ErrNotReadable               = errors.New("property is not readable")
	ErrNilInstance               = errors.New("instance is nil")
	ErrTypeMismatch              = errors.New("type mismatch")
)

// ConstructionError reports a failed instantiation. Member names the
// failing constructor or the component it rejected.
type ConstructionError struct {
	Type   reflect.Type
	Member string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("typeinfo: construct %v: %v", e.Type, e.Err)
	}

	return fmt.Sprintf("typeinfo: construct %v (%s): %v", e.Type, e.Member, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// AccessError reports a failed property read or write.
type AccessError struct {
	Type     reflect.Type
	Property string
	Op       string
	Err      error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("typeinfo: %s %v.%s: %v", e.Op, e.Type, e.Property, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}
