package binder

import (
	"reflect"
	"sync"

	"struct-binder/typeinfo"
)

// Bindable is what is being bound: a target type and, optionally, an
// existing value to reuse or mutate. A Bindable belongs to one bind call.
type Bindable struct {
	desc     *typeinfo.Descriptor
	existing func() reflect.Value
}

func Of(t reflect.Type) Bindable {
	return Bindable{desc: typeinfo.Of(t)}
}

func For[T any]() Bindable {
	return Of(reflect.TypeFor[T]())
}

// WithExisting sets the provider of the existing value. The provider runs
// at most once, on first use.
func (b Bindable) WithExisting(fn func() reflect.Value) Bindable {
	if fn == nil {
		b.existing = nil
		return b
	}

	b.existing = sync.OnceValue(fn)

	return b
}

func (b Bindable) WithValue(v reflect.Value) Bindable {
	return b.WithExisting(func() reflect.Value { return v })
}

func (b Bindable) Type() reflect.Type {
	return b.desc.Type
}

func (b Bindable) Descriptor() *typeinfo.Descriptor {
	return b.desc
}

// Existing returns the existing value when there is one of the target type.
func (b Bindable) Existing() (reflect.Value, bool) {
	if b.existing == nil {
		return reflect.Value{}, false
	}

	v := b.existing()
	if !isPresent(v) || v.Type() != b.desc.Type {
		return reflect.Value{}, false
	}

	return v, true
}

func (b Bindable) String() string {
	return b.desc.String()
}
