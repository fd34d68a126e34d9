package binder_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-binder/binder"
	"struct-binder/bindpath"
	"struct-binder/source"
	"struct-binder/typeinfo"
)

type upperStrings struct{}

func (upperStrings) Supports(d *typeinfo.Descriptor) bool {
	return d.Type == reflect.TypeFor[string]()
}

func (upperStrings) Bind(_ binder.Session, path bindpath.Path, _ binder.Bindable, src source.Source) (binder.Result, error) {
	child, err := source.Get(src, path)
	if err != nil || child.IsNull() {
		return binder.Absent(), err
	}

	v, err := child.Value()
	if err != nil {
		return binder.Absent(), err
	}

	return binder.ResultOf(reflect.ValueOf(strings.ToUpper(fmt.Sprint(v)))), nil
}

func TestRegistry_DefaultOrder(t *testing.T) {
	t.Parallel()

	got := make([]string, 0)
	for _, s := range binder.DefaultRegistry().Strategies() {
		got = append(got, fmt.Sprintf("%T", s))
	}

	assert.Equal(t, []string{
		"binder.ScalarBinder",
		"binder.ArrayBinder",
		"binder.ListBinder",
		"binder.SetBinder",
		"binder.MapBinder",
		"binder.RecordBinder",
		"binder.BeanBinder",
	}, got)
}

func TestRegistry_Select(t *testing.T) {
	t.Parallel()

	r := binder.DefaultRegistry()

	tests := []struct {
		t    reflect.Type
		want binder.Strategy
	}{
		{reflect.TypeFor[int](), binder.ScalarBinder{}},
		{reflect.TypeFor[[]int](), binder.ArrayBinder{}},
		{reflect.TypeFor[map[string]int](), binder.MapBinder{}},
		{reflect.TypeFor[map[string]struct{}](), binder.SetBinder{}},
		{reflect.TypeFor[Server](), binder.BeanBinder{}},
	}

	for _, tt := range tests {
		got, err := r.Select(typeinfo.Of(tt.t))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.t.String())
	}
}

func TestRegistry_CustomStrategy(t *testing.T) {
	t.Parallel()

	r := binder.DefaultRegistry()
	r.Register(upperStrings{}, binder.PriorityScalar+1)

	b := binder.New(binder.WithRegistry(r))
	src := source.Of(map[string]any{"person": map[string]any{"name": "ann", "age": 3}})

	name, ok, err := binder.Get[string](b, "person.name", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ANN", name)

	assert.True(t, r.Unregister(upperStrings{}))
	assert.False(t, r.Unregister(upperStrings{}))

	name, _, err = binder.Get[string](b, "person.name", src)
	require.NoError(t, err)
	assert.Equal(t, "ann", name)
}

func TestRegistry_NoStrategy(t *testing.T) {
	t.Parallel()

	r := binder.DefaultRegistry()
	require.True(t, r.Unregister(binder.BeanBinder{}))

	_, err := r.Select(typeinfo.For[Person]())
	assert.ErrorIs(t, err, binder.ErrNoStrategy)

	b := binder.New(binder.WithRegistry(r))
	_, _, err = binder.Get[Person](b, "p", source.Of(map[string]any{"p": map[string]any{}}))
	assert.ErrorIs(t, err, binder.ErrNoStrategy)

	r.Clear()
	assert.Empty(t, r.Strategies())

	_, err = r.Select(typeinfo.For[int]())
	assert.ErrorIs(t, err, binder.ErrNoStrategy)
}
