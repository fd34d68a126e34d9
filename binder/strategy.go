package binder

import (
	"reflect"

	"struct-binder/bindpath"
	"struct-binder/primitive"
	"struct-binder/source"
	"struct-binder/typeinfo"
)

// Strategy binds one family of target types.
type Strategy interface {
	Supports(d *typeinfo.Descriptor) bool
	Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error)
}

// BindValue is the leaf behavior shared by all strategies. An absent path
// yields an absent Result. Scalar targets, and pointers to them, take the
// raw value found at path. Any other target recurses through the session
// when its policy is deep and stays absent when it is shallow.
func BindValue(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	child, err := source.Get(src, path)
	if err != nil {
		return Absent(), err
	}

	if child.IsNull() {
		return Absent(), nil
	}

	d := b.Descriptor()

	switch {
	case d.IsScalar():
		return bindScalar(s, path, b, child)
	case d.IsPointer() && isScalarPointer(d):
		return s.Bind(path, b, src)
	case s.IsDeep():
		return s.Bind(path, b, src)
	default:
		return Absent(), nil
	}
}

// bindScalar converts the raw value of child into the target type.
// Only the session's conversion categories apply; the default is none,
// so the raw value must already be assignable.
func bindScalar(s Session, path bindpath.Path, b Bindable, child source.Source) (Result, error) {
	raw, err := child.Value()
	if err != nil {
		return Absent(), err
	}

	if raw == nil {
		return Absent(), nil
	}

	v, err := primitive.Convert(reflect.ValueOf(raw), b.Type(), s.allowed)
	if err != nil {
		return Absent(), &BindError{Path: path.ToOriginal(), Type: b.Type(), Err: err}
	}

	return ResultOf(v), nil
}

func isScalarPointer(d *typeinfo.Descriptor) bool {
	for d.IsPointer() {
		d = d.Elem()
	}

	return d.IsScalar()
}

// ScalarBinder binds scalar leaves and untyped (interface) targets.
type ScalarBinder struct{}

func (ScalarBinder) Supports(d *typeinfo.Descriptor) bool {
	return d.IsScalar()
}

func (ScalarBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	child, err := source.Get(src, path)
	if err != nil {
		return Absent(), err
	}

	if child.IsNull() {
		return Absent(), nil
	}

	return bindScalar(s, path, b, child)
}
