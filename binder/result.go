package binder

import "reflect"

// Result is the outcome of a bind: present with a value, or absent.
type Result struct {
	v reflect.Value
}

func Absent() Result {
	return Result{}
}

func ResultOf(v reflect.Value) Result {
	if !isPresent(v) {
		return Absent()
	}

	return Result{v: v}
}

func (r Result) IsPresent() bool {
	return r.v.IsValid()
}

func (r Result) Value() reflect.Value {
	return r.v
}

// Interface returns the bound value, or nil when absent.
func (r Result) Interface() any {
	if !r.v.IsValid() {
		return nil
	}

	return r.v.Interface()
}

func isPresent(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}

	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return !v.IsNil()
	default:
		return true
	}
}
