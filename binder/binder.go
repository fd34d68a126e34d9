package binder

import (
	"fmt"
	"log/slog"
	"reflect"

	"struct-binder/bindpath"
	"struct-binder/options"
	"struct-binder/primitive"
	"struct-binder/source"
)

// Binder is the root dispatcher. It is safe for concurrent use once its
// Registry is no longer modified.
type Binder struct {
	registry *Registry
	policy   options.Policy
	allowed  primitive.CategoryEnum
	sep      byte
	log      *slog.Logger
}

type Option func(*Binder)

func WithPolicy(p options.Policy) Option {
	return func(b *Binder) {
		b.policy = p
	}
}

// WithConversions allows scalar conversions of the given categories.
func WithConversions(c primitive.CategoryEnum) Option {
	return func(b *Binder) {
		b.allowed = c
	}
}

func WithSeparator(sep byte) Option {
	return func(b *Binder) {
		b.sep = sep
	}
}

func WithRegistry(r *Registry) Option {
	return func(b *Binder) {
		b.registry = r
	}
}

// WithLogger sets the logger; nil restores the default one.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) {
		b.log = l
	}
}

// New returns a deep, conversion-free Binder over DefaultRegistry.
func New(opts ...Option) *Binder {
	b := &Binder{
		policy: options.PolicyDeep,
		sep:    bindpath.DefaultSeparator,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.registry == nil {
		b.registry = DefaultRegistry()
	}

	if b.log == nil {
		b.log = slog.Default().With("component", "binder")
	}

	return b
}

// FromOptions returns a Binder configured by o; extra options apply last.
func FromOptions(o *options.Options, extra ...Option) (*Binder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	categories, err := o.Categories()
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithPolicy(o.Policy),
		WithConversions(categories),
		WithSeparator(o.Sep()),
	}

	return New(append(opts, extra...)...), nil
}

func (b *Binder) Registry() *Registry {
	return b.registry
}

// Session returns the root session every top-level bind starts with.
func (b *Binder) Session() Session {
	return Session{policy: b.policy, allowed: b.allowed, root: b}
}

// Bind binds the value at path into target. An absent path yields an
// absent Result; otherwise the strategy selected for the target type runs.
func (b *Binder) Bind(path bindpath.Path, target Bindable, src source.Source) (Result, error) {
	child, err := source.Get(src, path)
	if err != nil {
		return Absent(), err
	}

	if child.IsNull() {
		b.log.Debug("path absent", "path", path.String())
		return Absent(), nil
	}

	return b.dispatch(b.Session(), path, target, src)
}

// BindString parses path with the configured separator and binds it.
func (b *Binder) BindString(path string, target Bindable, src source.Source) (Result, error) {
	return b.Bind(bindpath.ParseWith(path, b.sep), target, src)
}

// Into binds the value at path into the variable target points to,
// reusing its current value. It reports whether anything was bound.
func (b *Binder) Into(path string, target any, src source.Source) (bool, error) {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return false, ErrInvalidTarget
	}

	res, err := b.BindString(path, Of(ptr.Type().Elem()).WithValue(ptr.Elem()), src)
	if err != nil || !res.IsPresent() {
		return false, err
	}

	assign(ptr, res.Value())

	return true, nil
}

// Get binds the value at path as a T.
func Get[T any](b *Binder, path string, src source.Source) (T, bool, error) {
	var zero T

	res, err := b.BindString(path, For[T](), src)
	if err != nil || !res.IsPresent() {
		return zero, false, err
	}

	return res.Value().Interface().(T), true, nil
}

func (b *Binder) dispatch(s Session, path bindpath.Path, target Bindable, src source.Source) (Result, error) {
	d := target.Descriptor()
	if d.IsPointer() {
		return b.bindPointer(s, path, target, src)
	}

	strategy, err := b.registry.Select(d)
	if err != nil {
		return Absent(), err
	}

	b.log.Debug("strategy selected", "path", path.String(), "type", d.Type, "strategy", fmt.Sprintf("%T", strategy))

	return strategy.Bind(s, path, target, src)
}

// bindPointer binds the pointed-to type into the existing pointee, or a
// new one, and returns the pointer.
func (b *Binder) bindPointer(s Session, path bindpath.Path, target Bindable, src source.Source) (Result, error) {
	ptr, ok := target.Existing()
	if !ok {
		ptr = reflect.New(target.Type().Elem())
	}

	res, err := s.Bind(path, Of(target.Type().Elem()).WithValue(ptr.Elem()), src)
	if err != nil || !res.IsPresent() {
		return Absent(), err
	}

	assign(ptr, res.Value())

	return ResultOf(ptr), nil
}

// assign stores v into the pointee of ptr unless v already is that pointee.
func assign(ptr, v reflect.Value) {
	if v.CanAddr() && v.Addr().UnsafePointer() == ptr.UnsafePointer() {
		return
	}

	ptr.Elem().Set(v)
}
