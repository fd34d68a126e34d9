package binder

import (
	"reflect"
	"sync"

	"struct-binder/bindpath"
	"struct-binder/source"
	"struct-binder/typeinfo"
)

// BeanBinder binds structs property by property. It supports every type
// and is registered last, as the fallback.
//
// The instance is the existing value when there is one, otherwise a new
// zero value; it is created once, on first need. Each property is bound
// at path.name and set only when present and writable, so absent
// properties keep their previous value.
type BeanBinder struct{}

func (BeanBinder) Supports(*typeinfo.Descriptor) bool {
	return true
}

func (BeanBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	d := b.Descriptor()

	instance := sync.OnceValues(func() (reflect.Value, error) {
		if v, ok := b.Existing(); ok {
			if v.CanSet() {
				return v, nil
			}

			cp := reflect.New(d.Type).Elem()
			cp.Set(v)

			return cp, nil
		}

		v, err := typeinfo.Instantiate(d)
		if err != nil {
			return reflect.Value{}, &BindError{Path: path.ToOriginal(), Type: d.Type, Err: err}
		}

		return v, nil
	})

	for _, prop := range d.Properties() {
		if typeinfo.Of(prop.Type).Kind == typeinfo.KindUnsupported {
			continue
		}

		propPath := path.AppendString(prop.Name)

		current := Of(prop.Type).WithExisting(func() reflect.Value {
			inst, err := instance()
			if err != nil {
				return reflect.Value{}
			}

			v, err := prop.Get(inst)
			if err != nil {
				return reflect.Value{}
			}

			return v
		})

		res, err := BindValue(s, propPath, current, src)
		if err != nil {
			return Absent(), err
		}

		if !res.IsPresent() || !prop.Writable {
			continue
		}

		inst, err := instance()
		if err != nil {
			return Absent(), err
		}

		if err := prop.Set(inst, res.Value()); err != nil {
			return Absent(), &BindError{Path: propPath.ToOriginal(), Type: prop.Type, Err: err}
		}
	}

	inst, err := instance()
	if err != nil {
		return Absent(), err
	}

	return ResultOf(inst), nil
}

// RecordBinder binds record types: every component is bound first, then
// the registered constructor runs once with all of them. Absent components
// are passed as zero values.
type RecordBinder struct{}

func (RecordBinder) Supports(d *typeinfo.Descriptor) bool {
	return d.IsRecord()
}

func (RecordBinder) Bind(s Session, path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	d := b.Descriptor()

	ctor, ok := d.Constructor()
	if !ok {
		return Absent(), &BindError{Path: path.ToOriginal(), Type: d.Type, Err: typeinfo.ErrNotConstructible}
	}

	args := make(map[string]reflect.Value, len(ctor.Params))

	for _, param := range ctor.Params {
		res, err := BindValue(s, path.AppendString(param.Name), Of(param.Type), src)
		if err != nil {
			return Absent(), err
		}

		if res.IsPresent() {
			args[param.Name] = res.Value()
		}
	}

	v, err := ctor.Call(args)
	if err != nil {
		return Absent(), &BindError{Path: path.ToOriginal(), Type: d.Type, Err: err}
	}

	return ResultOf(v), nil
}
