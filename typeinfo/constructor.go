package typeinfo

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"struct-binder/utils"
)

// Param is one named constructor component.
type Param struct {
	Name string
	Type reflect.Type
}

// Constructor is the canonical all-components constructor of a record.
type Constructor struct {
	Type         reflect.Type // constructed struct type
	Params       []Param
	PackageAlias string
	Name         string
	HasErr       bool

	fn     reflect.Value
	ptrOut bool
}

// ParseConstructor inspects fn and returns its Constructor.
//
// Supports interfaces:
//   - func(a A, b B, ...) T
//   - func(a A, b B, ...) *T
//   - func(a A, b B, ...) (T, error)
//   - func(a A, b B, ...) (*T, error)
//
// T must be a struct. Without names, T must declare exactly one field per
// parameter with matching types in order; the field names become the
// component names.
func ParseConstructor(fn any, names ...string) (*Constructor, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, ErrConstructorIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.IsVariadic() || fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return nil, ErrIsNotAConstructor
	}

	ctor := &Constructor{Type: fnType.Out(0), fn: fnVal}
	if ctor.Type.Kind() == reflect.Pointer {
		ctor.Type = ctor.Type.Elem()
		ctor.ptrOut = true
	}

	if ctor.Type.Kind() != reflect.Struct {
		return nil, ErrIsNotAConstructor
	}

	if fnType.NumOut() == 2 {
		if !isError(fnType.Out(1)) {
			return nil, ErrIsNotAConstructor
		}

		ctor.HasErr = true
	}

	if len(names) == 0 {
		var ok bool
		if names, ok = componentNames(ctor.Type, fnType); !ok {
			return nil, ErrNamesMismatch
		}
	}

	if len(names) != fnType.NumIn() {
		return nil, ErrNamesMismatch
	}

	for i, name := range names {
		ctor.Params = append(ctor.Params, Param{Name: name, Type: fnType.In(i)})
	}

	alias, name := utils.Unpack2(strings.SplitN(runtime.FuncForPC(fnVal.Pointer()).Name(), ".", 2))
	ctor.Name = name
	ctor.PackageAlias = utils.Second(path.Split(alias))

	return ctor, nil
}

func componentNames(t, fnType reflect.Type) ([]string, bool) {
	if t.NumField() != fnType.NumIn() {
		return nil, false
	}

	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type != fnType.In(i) {
			return nil, false
		}

		name, _, _ := parseTag(f)
		names = append(names, name)
	}

	return names, true
}

// Call invokes the constructor once with the named component values.
// Missing components receive the zero value of their type.
func (c *Constructor) Call(args map[string]reflect.Value) (reflect.Value, error) {
	in := make([]reflect.Value, len(c.Params))

	for i, p := range c.Params {
		v, ok := args[p.Name]
		if !ok || !v.IsValid() {
			in[i] = reflect.Zero(p.Type)
			continue
		}

		if !v.Type().AssignableTo(p.Type) {
			return reflect.Value{}, &ConstructionError{
				Type:   c.Type,
				Member: p.Name,
				Err:    fmt.Errorf("%v is not assignable to %v: %w", v.Type(), p.Type, ErrTypeMismatch),
			}
		}

		in[i] = v
	}

	out := c.fn.Call(in)

	if c.HasErr {
		if err, _ := out[1].Interface().(error); err != nil {
			return reflect.Value{}, &ConstructionError{Type: c.Type, Member: c.Name, Err: err}
		}
	}

	res := out[0]
	if c.ptrOut {
		if res.IsNil() {
			return reflect.Value{}, &ConstructionError{Type: c.Type, Member: c.Name, Err: ErrNilResult}
		}

		res = res.Elem()
	}

	return res, nil
}

var records sync.Map // reflect.Type -> *Constructor

// RegisterRecord makes the struct built by fn a record type. Records are
// bound component by component and constructed once by fn.
func RegisterRecord(fn any, names ...string) error {
	ctor, err := ParseConstructor(fn, names...)
	if err != nil {
		return err
	}

	records.Store(ctor.Type, ctor)
	cache.Delete(ctor.Type)

	return nil
}

// MustRegisterRecord is like RegisterRecord but panics on error.
func MustRegisterRecord(fn any, names ...string) {
	if err := RegisterRecord(fn, names...); err != nil {
		panic(err)
	}
}

// UnregisterRecord turns t back into a bean type.
func UnregisterRecord(t reflect.Type) {
	records.Delete(t)
	cache.Delete(t)
}

func lookupRecord(t reflect.Type) (*Constructor, bool) {
	v, ok := records.Load(t)
	if !ok {
		return nil, false
	}

	return v.(*Constructor), true
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(reflect.TypeFor[error]())
}
