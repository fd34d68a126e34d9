package source

import (
	"fmt"
	"reflect"

	"struct-binder/bindpath"
)

type Shape int

const (
	ShapeScalar Shape = iota + 1
	ShapeMap
	ShapeList
	ShapeBean
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeMap:
		return "map"
	case ShapeList:
		return "list"
	case ShapeBean:
		return "bean"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Source is a navigational view over one backing value.
type Source interface {
	// IsNull reports the absent sentinel. It is safe on every Source.
	IsNull() bool
	Shape() (Shape, error)
	Name(name string) (Source, error)
	Index(i int) (Source, error)
	// Value returns the raw wrapped value.
	Value() (any, error)
	// Keys lists the keys of a map-shaped source.
	Keys() ([]string, error)
}

// PathResolver is implemented by sources that resolve a whole path at once.
type PathResolver interface {
	Resolve(p bindpath.Path) (Source, error)
}

// Get walks path from src. Indexed segments holding an integer use Index,
// every other segment uses Name. The walk stops with Null at the first
// absent step.
func Get(src Source, path bindpath.Path) (Source, error) {
	if src == nil || src.IsNull() {
		return Null(), nil
	}

	if r, ok := src.(PathResolver); ok {
		return r.Resolve(path)
	}

	cur := src
	for _, seg := range path.Segments() {
		var (
			next Source
			err  error
		)

		if n, ok := seg.Index(); ok && seg.IsIndexed() {
			next, err = index(cur, seg.Text, n)
		} else {
			next, err = cur.Name(seg.Text)
		}

		if err != nil {
			return nil, fmt.Errorf("get %q: %w", path.ToOriginal(), err)
		}

		if next == nil || next.IsNull() {
			return Null(), nil
		}

		cur = next
	}

	return cur, nil
}

// index navigates to an indexed integer segment. Map-shaped sources are
// looked up by the segment text first, so keys such as "007" keep their
// leading zeros; lists use the integer.
func index(src Source, text string, n int) (Source, error) {
	if shape, err := src.Shape(); err == nil && shape == ShapeMap {
		next, err := src.Name(text)
		if err != nil {
			return nil, err
		}

		if next != nil && !next.IsNull() {
			return next, nil
		}
	}

	return src.Index(n)
}

// Expect asserts the shape of src.
func Expect(src Source, want Shape) error {
	got, err := src.Shape()
	if err != nil {
		return err
	}

	if got != want {
		return &ShapeMismatchError{Want: want, Got: got}
	}

	return nil
}

// As returns the raw value of src as T.
func As[T any](src Source) (T, error) {
	var zero T

	raw, err := src.Value()
	if err != nil {
		return zero, err
	}

	v, ok := raw.(T)
	if !ok {
		return zero, &TypeMismatchError{Want: reflect.TypeFor[T](), Got: reflect.TypeOf(raw)}
	}

	return v, nil
}
