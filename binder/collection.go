package binder

import (
	"container/list"
	"fmt"
	"reflect"

	"struct-binder/bindpath"
	"struct-binder/source"
	"struct-binder/typeinfo"
)

// bindElements binds path[0], path[1], ... as elem and passes each value
// to add. It stops at the first absent element, or after limit elements
// when limit is not negative.
func bindElements(
	s Session,
	path bindpath.Path,
	elem *typeinfo.Descriptor,
	src source.Source,
	limit int,
	add func(i int, v reflect.Value) error,
) (int, error) {
	n := 0

	for limit < 0 || n < limit {
		res, err := BindValue(s, bindpath.Index(path, n), Of(elem.Type), src)
		if err != nil {
			return n, err
		}

		if !res.IsPresent() {
			break
		}

		if err := add(n, res.Value()); err != nil {
			return n, err
		}

		n++
	}

	s.Logger().Debug("collection bound", "path", path.String(), "type", elem.Type, "size", n)

	return n, nil
}

// ArrayBinder binds slices and arrays. Elements are collected first; a
// fixed-size array then receives at most its length of them.
// Existing slices are replaced, not appended to.
type ArrayBinder struct{}

func (ArrayBinder) Supports(d *typeinfo.Descriptor) bool {
	return d.IsArray()
}

func (ArrayBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	d := b.Descriptor()

	limit := -1
	if d.IsFixed() {
		limit = d.Type.Len()
	}

	items := reflect.MakeSlice(reflect.SliceOf(d.Type.Elem()), 0, 0)

	_, err := bindElements(s, path, d.Elem(), src, limit, func(_ int, v reflect.Value) error {
		items = reflect.Append(items, v)
		return nil
	})
	if err != nil {
		return Absent(), err
	}

	if d.IsFixed() {
		arr := reflect.New(d.Type).Elem()
		reflect.Copy(arr, items)

		return ResultOf(arr), nil
	}

	return ResultOf(items.Convert(d.Type)), nil
}

// ListBinder binds container/list.List values, appending to an existing list.
type ListBinder struct{}

func (ListBinder) Supports(d *typeinfo.Descriptor) bool {
	return d.IsList()
}

func (ListBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	d := b.Descriptor()

	working := reflect.New(d.Type).Elem()
	if v, ok := b.Existing(); ok {
		if v.CanAddr() {
			working = v
		} else {
			old := v.Interface().(list.List)
			for e := old.Front(); e != nil; e = e.Next() {
				working.Addr().Interface().(*list.List).PushBack(e.Value)
			}
		}
	}

	l := working.Addr().Interface().(*list.List)

	_, err := bindElements(s, path, d.Elem(), src, -1, func(_ int, v reflect.Value) error {
		l.PushBack(v.Interface())
		return nil
	})
	if err != nil {
		return Absent(), err
	}

	return ResultOf(working), nil
}

// SetBinder binds map[K]struct{} sets, adding to an existing set.
type SetBinder struct{}

func (SetBinder) Supports(d *typeinfo.Descriptor) bool {
	return d.IsSet()
}

func (SetBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	d := b.Descriptor()

	set, ok := b.Existing()
	if !ok {
		set = reflect.MakeMap(d.Type)
	}

	member := reflect.New(d.Type.Elem()).Elem()

	_, err := bindElements(s, path, d.Elem(), src, -1, func(i int, v reflect.Value) error {
		if !v.Comparable() {
			return &BindError{
				Path: bindpath.Index(path, i).ToOriginal(),
				Type: d.Type.Elem(),
				Err:  fmt.Errorf("%v cannot be a set member: %w", v.Type(), typeinfo.ErrTypeMismatch),
			}
		}

		set.SetMapIndex(v, member)

		return nil
	})
	if err != nil {
		return Absent(), err
	}

	return ResultOf(set), nil
}
