package typeinfo

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
)

// TagName is the struct tag consulted for property names and flags:
//
//	Port    int    `bind:"listen-port"`
//	Version string `bind:",readonly"`
//	Secret  string `bind:"-"`
const TagName = "bind"

// Property is a named, typed member of a bean.
type Property struct {
	Name     string
	Field    reflect.StructField
	Type     reflect.Type
	Readable bool
	Writable bool

	owner reflect.Type
	index []int
}

// Get returns the property value of instance, which is a struct or a pointer to one.
func (p *Property) Get(instance reflect.Value) (reflect.Value, error) {
	if !p.Readable {
		return reflect.Value{}, p.fail("get", ErrNotReadable)
	}

	f, err := p.field(instance)
	if err != nil {
		return reflect.Value{}, p.fail("get", err)
	}

	return f, nil
}

// Set assigns value to the property of instance. The instance must be
// addressable, usually a pointer to the struct.
func (p *Property) Set(instance, value reflect.Value) error {
	if !p.Writable {
		return p.fail("set", ErrNotWritable)
	}

	f, err := p.field(instance)
	if err != nil {
		return p.fail("set", err)
	}

	if !f.CanSet() {
		return p.fail("set", fmt.Errorf("instance of %v is not addressable", p.owner))
	}

	if !value.IsValid() || !value.Type().AssignableTo(p.Type) {
		return p.fail("set", fmt.Errorf("%v is not assignable to %v: %w", typeOf(value), p.Type, ErrTypeMismatch))
	}

	f.Set(value)

	return nil
}

func (p *Property) field(instance reflect.Value) (reflect.Value, error) {
	for instance.Kind() == reflect.Pointer || instance.Kind() == reflect.Interface {
		if instance.IsNil() {
			return reflect.Value{}, ErrNilInstance
		}

		instance = instance.Elem()
	}

	if !instance.IsValid() {
		return reflect.Value{}, ErrNilInstance
	}

	if instance.Type() != p.owner {
		return reflect.Value{}, fmt.Errorf("%v is not %v: %w", instance.Type(), p.owner, ErrTypeMismatch)
	}

	return instance.FieldByIndex(p.index), nil
}

func (p *Property) fail(op string, err error) error {
	return &AccessError{Type: p.owner, Property: p.Name, Op: op, Err: err}
}

func typeOf(v reflect.Value) any {
	if !v.IsValid() {
		return "nil"
	}

	return v.Type()
}

// collectProperties lists the exported fields of t. Exported embedded
// structs without a tag are flattened; a shallower name hides a deeper one.
func collectProperties(t reflect.Type) []*Property {
	type level struct {
		t     reflect.Type
		index []int
	}

	var (
		props   []*Property
		seen    = map[string]struct{}{}
		current = []level{{t: t}}
	)

	for len(current) > 0 {
		var next []level
		names := map[string]struct{}{}

		for _, lv := range current {
			for i := range lv.t.NumField() {
				f := lv.t.Field(i)
				index := append(slices.Clone(lv.index), i)

				name, readonly, skip := parseTag(f)
				if skip {
					continue
				}

				if f.Anonymous && f.IsExported() && f.Type.Kind() == reflect.Struct && f.Tag.Get(TagName) == "" {
					next = append(next, level{t: f.Type, index: index})
					continue
				}

				if !f.IsExported() {
					continue
				}

				if _, ok := seen[name]; ok {
					continue
				}

				if _, ok := names[name]; ok {
					continue
				}

				names[name] = struct{}{}
				props = append(props, &Property{
					Name:     name,
					Field:    f,
					Type:     f.Type,
					Readable: true,
					Writable: !readonly,
					owner:    t,
					index:    index,
				})
			}
		}

		for name := range names {
			seen[name] = struct{}{}
		}

		current = next
	}

	return props
}

func parseTag(f reflect.StructField) (name string, readonly, skip bool) {
	tag := f.Tag.Get(TagName)
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == "readonly" {
			readonly = true
		}
	}

	if name == "" {
		name = KebabCase(f.Name)
	}

	return name, readonly, false
}

var wordBoundary = regexp2.MustCompile(`(?<=[a-z0-9])(?=[A-Z])|(?<=[A-Z])(?=[A-Z][a-z])`, regexp2.None)

// KebabCase converts a Go identifier into a property name:
// MaxSize becomes max-size and HTTPServer becomes http-server.
func KebabCase(name string) string {
	out, err := wordBoundary.Replace(name, "-", -1, -1)
	if err != nil {
		out = name
	}

	return strings.ToLower(strings.TrimLeft(out, "_"))
}
