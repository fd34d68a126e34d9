package typeinfo

import (
	"reflect"
	"sync"
)

// Descriptor describes how a type is bound.
type Descriptor struct {
	Type reflect.Type
	Kind Kind

	once   sync.Once
	props  []*Property
	byName map[string]*Property
}

var cache sync.Map // reflect.Type -> *Descriptor

// Of returns the cached descriptor of t.
func Of(t reflect.Type) *Descriptor {
	if d, ok := cache.Load(t); ok {
		return d.(*Descriptor)
	}

	d, _ := cache.LoadOrStore(t, &Descriptor{Type: t, Kind: classify(t)})

	return d.(*Descriptor)
}

// For returns the descriptor of T.
func For[T any]() *Descriptor {
	return Of(reflect.TypeFor[T]())
}

func (d *Descriptor) IsScalar() bool  { return d.Kind == KindScalar }
func (d *Descriptor) IsArray() bool   { return d.Kind == KindArray }
func (d *Descriptor) IsList() bool    { return d.Kind == KindList }
func (d *Descriptor) IsSet() bool     { return d.Kind == KindSet }
func (d *Descriptor) IsMap() bool     { return d.Kind == KindMap }
func (d *Descriptor) IsRecord() bool  { return d.Kind == KindRecord }
func (d *Descriptor) IsBean() bool    { return d.Kind == KindBean }
func (d *Descriptor) IsPointer() bool { return d.Kind == KindPointer }

// IsCollection reports arrays, lists, sets and maps.
func (d *Descriptor) IsCollection() bool {
	switch d.Kind {
	case KindArray, KindList, KindSet, KindMap:
		return true
	default:
		return false
	}
}

// IsAny reports the empty interface, which accepts any raw value.
func (d *Descriptor) IsAny() bool {
	return d.Type != nil && d.Type.Kind() == reflect.Interface && d.Type.NumMethod() == 0
}

// IsFixed reports a Go array type with a fixed length.
func (d *Descriptor) IsFixed() bool {
	return d.Kind == KindArray && d.Type.Kind() == reflect.Array
}

// Elem describes the element type: array and map values, set members,
// pointer targets. List elements are untyped.
func (d *Descriptor) Elem() *Descriptor {
	switch d.Kind {
	case KindArray, KindMap, KindPointer:
		return Of(d.Type.Elem())
	case KindSet:
		return Of(d.Type.Key())
	case KindList:
		return For[any]()
	default:
		return nil
	}
}

// Key describes the key type of maps and sets.
func (d *Descriptor) Key() *Descriptor {
	switch d.Kind {
	case KindMap, KindSet:
		return Of(d.Type.Key())
	default:
		return nil
	}
}

// Properties lists bean and record properties in declaration order.
func (d *Descriptor) Properties() []*Property {
	d.load()
	return d.props
}

// Property returns the property with the given name.
func (d *Descriptor) Property(name string) (*Property, bool) {
	d.load()
	p, ok := d.byName[name]

	return p, ok
}

func (d *Descriptor) load() {
	d.once.Do(func() {
		d.byName = map[string]*Property{}

		if d.Type == nil || d.Type.Kind() != reflect.Struct {
			return
		}

		d.props = collectProperties(d.Type)
		for _, p := range d.props {
			d.byName[p.Name] = p
		}
	})
}

// Constructor returns the registered constructor of a record type.
func (d *Descriptor) Constructor() (*Constructor, bool) {
	if d.Kind != KindRecord {
		return nil, false
	}

	return lookupRecord(d.Type)
}

func (d *Descriptor) String() string {
	if d.Type == nil {
		return "<nil> (" + d.Kind.String() + ")"
	}

	return d.Type.String() + " (" + d.Kind.String() + ")"
}

// Instantiate returns a new addressable value of the described type:
// an empty map for maps and sets, the zero value otherwise.
// Records must be built through their Constructor.
func Instantiate(d *Descriptor) (reflect.Value, error) {
	switch d.Kind {
	case KindUnsupported, KindRecord:
		return reflect.Value{}, &ConstructionError{Type: d.Type, Err: ErrNotConstructible}
	}

	v := reflect.New(d.Type).Elem()
	if d.Kind == KindMap || d.Kind == KindSet {
		v.Set(reflect.MakeMap(d.Type))
	}

	return v, nil
}
