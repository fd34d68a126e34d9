package binder

import (
	"reflect"
	"strconv"

	"struct-binder/bindpath"
	"struct-binder/primitive"
	"struct-binder/source"
	"struct-binder/typeinfo"
)

// MapBinder binds maps, adding to an existing map.
//
// Go maps have no index order, so the keys are enumerated from the source
// and each one is bound at path[key]. A list-shaped source is bound by
// index instead, its indexes becoming the keys. Keys are always converted
// from their text form into the key type.
type MapBinder struct{}

func (MapBinder) Supports(d *typeinfo.Descriptor) bool {
	return d.IsMap()
}

func (MapBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	d := b.Descriptor()

	child, err := source.Get(src, path)
	if err != nil {
		return Absent(), err
	}

	if child.IsNull() {
		return Absent(), nil
	}

	m, ok := b.Existing()
	if !ok {
		m = reflect.MakeMap(d.Type)
	}

	shape, err := child.Shape()
	if err != nil {
		return Absent(), err
	}

	if shape == source.ShapeList {
		_, err := bindElements(s, path, d.Elem(), src, -1, func(i int, v reflect.Value) error {
			key, err := mapKey(path, d.Key(), strconv.Itoa(i))
			if err != nil {
				return err
			}

			m.SetMapIndex(key, v)

			return nil
		})
		if err != nil {
			return Absent(), err
		}

		return ResultOf(m), nil
	}

	keys, err := child.Keys()
	if err != nil {
		return Absent(), err
	}

	for _, k := range keys {
		key, err := mapKey(path, d.Key(), k)
		if err != nil {
			return Absent(), err
		}

		elem := Of(d.Type.Elem()).WithExisting(func() reflect.Value {
			return m.MapIndex(key)
		})

		res, err := BindValue(s, bindpath.Key(path, k), elem, src)
		if err != nil {
			return Absent(), err
		}

		if res.IsPresent() {
			m.SetMapIndex(key, res.Value())
		}
	}

	s.Logger().Debug("map bound", "path", path.String(), "type", d.Type, "size", m.Len())

	return ResultOf(m), nil
}

func mapKey(path bindpath.Path, key *typeinfo.Descriptor, text string) (reflect.Value, error) {
	v, err := primitive.Convert(reflect.ValueOf(text), key.Type, primitive.CategoryAll)
	if err != nil {
		return reflect.Value{}, &BindError{Path: bindpath.Key(path, text).ToOriginal(), Type: key.Type, Err: err}
	}

	return v, nil
}
