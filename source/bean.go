package source

import (
	"reflect"

	"struct-binder/typeinfo"
)

// Bean wraps a struct or a pointer to one. Name reads a property through
// its accessor; Index is unsupported.
func Bean(v any) Source {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null()
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return Null()
	}

	return bean{v: rv}
}

type bean struct {
	v reflect.Value
}

func (s bean) IsNull() bool {
	return false
}

func (s bean) Shape() (Shape, error) {
	return ShapeBean, nil
}

func (s bean) Name(name string) (Source, error) {
	prop, ok := typeinfo.Of(s.v.Type()).Property(name)
	if !ok {
		return Null(), nil
	}

	v, err := prop.Get(s.v)
	if err != nil {
		return nil, err
	}

	return ofValue(v), nil
}

func (s bean) Index(int) (Source, error) {
	return nil, &UnsupportedError{Op: "index", Source: s.String()}
}

func (s bean) Value() (any, error) {
	return s.v.Interface(), nil
}

func (s bean) Keys() ([]string, error) {
	return nil, &ShapeMismatchError{Want: ShapeMap, Got: ShapeBean}
}

func (s bean) String() string {
	return "bean " + s.v.Type().String()
}
