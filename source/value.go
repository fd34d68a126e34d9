package source

import (
	"container/list"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"struct-binder/primitive"
)

var listType = reflect.TypeFor[list.List]()

// Of wraps a Go value. Pointers and interfaces are followed; nil becomes
// Null. Structs that are not scalars are wrapped as beans.
func Of(v any) Source {
	if s, ok := v.(Source); ok {
		return s
	}

	return ofValue(reflect.ValueOf(v))
}

func ofValue(v reflect.Value) Source {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Null()
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return Null()
	}

	if v.Kind() == reflect.Struct && v.Type() != listType && !primitive.IsScalar(v.Type()) {
		return bean{v: v}
	}

	return value{v: v}
}

// value wraps maps, slices, arrays, lists and scalars.
type value struct {
	v reflect.Value
}

func (s value) IsNull() bool {
	return false
}

func (s value) Shape() (Shape, error) {
	return s.shape(), nil
}

func (s value) shape() Shape {
	switch {
	case s.v.Kind() == reflect.Map:
		return ShapeMap
	case s.v.Type() == listType:
		return ShapeList
	case (s.v.Kind() == reflect.Slice || s.v.Kind() == reflect.Array) && !primitive.IsScalar(s.v.Type()):
		return ShapeList
	default:
		return ShapeScalar
	}
}

// Name looks the key up in a map. Keys are converted to the map key type
// when possible; anything else is absent.
func (s value) Name(name string) (Source, error) {
	if s.v.Kind() != reflect.Map {
		return Null(), nil
	}

	key, err := primitive.Convert(reflect.ValueOf(name), s.v.Type().Key(), primitive.CategoryAll)
	if err != nil {
		return Null(), nil
	}

	return s.lookup(key), nil
}

// Index reads list and array elements. On maps it looks up the integer
// key, then its decimal text.
func (s value) Index(i int) (Source, error) {
	switch s.shape() {
	case ShapeList:
		if s.v.Type() == listType {
			return s.element(i), nil
		}

		if i < 0 || i >= s.v.Len() {
			return Null(), nil
		}

		return ofValue(s.v.Index(i)), nil

	case ShapeMap:
		if key, err := primitive.Convert(reflect.ValueOf(i), s.v.Type().Key(), primitive.CategoryAll); err == nil {
			if found := s.lookup(key); !found.IsNull() {
				return found, nil
			}
		}

		return s.Name(strconv.Itoa(i))

	default:
		return Null(), nil
	}
}

func (s value) lookup(key reflect.Value) Source {
	found := s.v.MapIndex(key)
	if !found.IsValid() {
		return Null()
	}

	return ofValue(found)
}

func (s value) element(i int) Source {
	if i < 0 {
		return Null()
	}

	var l *list.List
	if s.v.CanAddr() {
		l = s.v.Addr().Interface().(*list.List)
	} else {
		cp := s.v.Interface().(list.List)
		l = &cp
	}

	for e := l.Front(); e != nil; e = e.Next() {
		if i == 0 {
			return Of(e.Value)
		}

		i--
	}

	return Null()
}

func (s value) Value() (any, error) {
	return s.v.Interface(), nil
}

// Keys returns the map keys in sorted text form.
func (s value) Keys() ([]string, error) {
	if s.v.Kind() != reflect.Map {
		return nil, &ShapeMismatchError{Want: ShapeMap, Got: s.shape()}
	}

	keys := make([]string, 0, s.v.Len())
	for _, k := range s.v.MapKeys() {
		keys = append(keys, fmt.Sprint(k.Interface()))
	}

	slices.Sort(keys)

	return keys, nil
}

func (s value) String() string {
	return fmt.Sprintf("%v %v", s.shape(), s.v.Type())
}
