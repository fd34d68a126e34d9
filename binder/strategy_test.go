package binder_test

import (
	"container/list"
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-binder/binder"
	"struct-binder/source"
	"struct-binder/typeinfo"
)

type Interval struct {
	low, high int
}

var errInverted = errors.New("inverted interval")

func NewInterval(low, high int) (Interval, error) {
	if low > high {
		return Interval{}, errInverted
	}

	return Interval{low: low, high: high}, nil
}

type Schedule struct {
	Name   string
	Window Interval
}

type Node struct {
	Name     string
	Parent   *Node
	Children []Node
}

type Limits struct {
	Max int
}

type Service struct {
	Name    string
	Limits  Limits `bind:",readonly"`
	Retries *int
	Labels  map[string]int
	Zones   map[string]struct{}
	Queue   *list.List
}

func TestRecordBinder(t *testing.T) {
	typeinfo.MustRegisterRecord(NewInterval)
	t.Cleanup(func() { typeinfo.UnregisterRecord(typeinfo.For[Interval]().Type) })

	b := binder.New()

	src := load(t, "schedule:\n  name: nightly\n  window:\n    low: 1\n    high: 5\n")

	s, ok, err := binder.Get[Schedule](b, "schedule", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Schedule{Name: "nightly", Window: Interval{low: 1, high: 5}}, s)

	partial, ok, err := binder.Get[Interval](b, "w", load(t, "w:\n  high: 3\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Interval{low: 0, high: 3}, partial, "absent components are zero")

	_, _, err = binder.Get[Interval](b, "w", load(t, "w:\n  low: 9\n  high: 1\n"))
	require.ErrorIs(t, err, errInverted)

	var bindErr *binder.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "w", bindErr.Path)

	var ctorErr *typeinfo.ConstructionError
	require.ErrorAs(t, err, &ctorErr)
	assert.Equal(t, "NewInterval", ctorErr.Member)
}

func TestBeanBinder_SelfReference(t *testing.T) {
	t.Parallel()

	src := load(t, `
root:
  name: a
  parent:
    name: p
  children:
    - name: b
      children:
        - name: c
`)

	n, ok, err := binder.Get[Node](binder.New(), "root", src)
	require.NoError(t, err)
	require.True(t, ok)

	require.NotNil(t, n.Parent)
	assert.Equal(t, "p", n.Parent.Name)
	assert.Nil(t, n.Parent.Parent)
	require.Len(t, n.Children, 1)
	require.Len(t, n.Children[0].Children, 1)
	assert.Equal(t, "c", n.Children[0].Children[0].Name)
	assert.Empty(t, n.Children[0].Children[0].Children)
}

func TestBeanBinder_ExistingValues(t *testing.T) {
	t.Parallel()

	src := load(t, `
svc:
  name: api
  limits:
    max: 10
  retries: 3
  labels:
    a: 1
  zones: [eu, us]
  queue: [x, y]
`)

	retries := 1
	svc := Service{
		Limits:  Limits{Max: 1},
		Retries: &retries,
		Labels:  map[string]int{"keep": 7},
		Zones:   map[string]struct{}{"asia": {}},
		Queue:   list.New(),
	}
	svc.Queue.PushBack("w")

	ok, err := binder.New().Into("svc", &svc, src)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "api", svc.Name)
	assert.Equal(t, 10, svc.Limits.Max, "read-only nested beans are bound in place")
	assert.Equal(t, 3, retries, "existing pointers are reused")
	assert.Equal(t, map[string]int{"keep": 7, "a": 1}, svc.Labels)
	assert.Equal(t, map[string]struct{}{"asia": {}, "eu": {}, "us": {}}, svc.Zones)

	var queue []any
	for e := svc.Queue.Front(); e != nil; e = e.Next() {
		queue = append(queue, e.Value)
	}
	assert.Equal(t, []any{"w", "x", "y"}, queue)
}

func TestMapBinder(t *testing.T) {
	t.Parallel()

	b := binder.New()

	t.Run("integer keys", func(t *testing.T) {
		t.Parallel()

		m, ok, err := binder.Get[map[int]string](b, "codes", load(t, "codes:\n  200: ok\n  404: missing\n"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[int]string{200: "ok", 404: "missing"}, m)
	})

	t.Run("dotted keys", func(t *testing.T) {
		t.Parallel()

		src := source.Flat(source.MapResolver{
			"log[org.x.core]": "debug",
			"log[org.y]":      "warn",
		})

		m, ok, err := binder.Get[map[string]string](b, "log", src)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]string{"org.x.core": "debug", "org.y": "warn"}, m)
	})

	t.Run("list source", func(t *testing.T) {
		t.Parallel()

		m, ok, err := binder.Get[map[int]string](b, "l", source.Of(map[string]any{"l": []string{"a", "b"}}))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[int]string{0: "a", 1: "b"}, m)
	})

	t.Run("bean values", func(t *testing.T) {
		t.Parallel()

		m, ok, err := binder.Get[map[string]Host](b, "hosts", load(t, "hosts:\n  a: {port: 1}\n  b: {port: 2}\n"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]Host{"a": {Port: 1}, "b": {Port: 2}}, m)
	})

	t.Run("keys kept verbatim", func(t *testing.T) {
		t.Parallel()

		want := map[string]string{"007": "bond", "a]b": "1", "c[d": "2", "x.y": "3"}

		m, ok, err := binder.Get[map[string]string](b, "m", source.Of(map[string]any{"m": want}))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, m)

		m, ok, err = binder.Get[map[string]string](b, "m", load(t, `m: {"007": bond, "a]b": "1", "c[d": "2", "x.y": "3"}`))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, m)
	})

	t.Run("scalar source", func(t *testing.T) {
		t.Parallel()

		_, _, err := binder.Get[map[string]string](b, "s", source.Of(map[string]any{"s": "text"}))
		assert.ErrorIs(t, err, source.ErrShapeMismatch)
	})
}

func TestSetAndList(t *testing.T) {
	t.Parallel()

	src := load(t, "tags: [a, b, a]\n")
	b := binder.New()

	set, ok, err := binder.Get[map[string]struct{}](b, "tags", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, set)

	l, ok, err := binder.Get[*list.List](b, "tags", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "a", l.Front().Value)
	assert.Equal(t, "a", l.Back().Value)
}

func TestSetBinder_UnhashableMember(t *testing.T) {
	t.Parallel()

	b := binder.New()

	set, ok, err := binder.Get[map[any]struct{}](b, "s", load(t, "s: [1, a]\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[any]struct{}{1: {}, "a": {}}, set)

	_, _, err = binder.Get[map[any]struct{}](b, "s", load(t, "s:\n  - {a: 1}\n"))
	require.ErrorIs(t, err, typeinfo.ErrTypeMismatch)

	var bindErr *binder.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "s[0]", bindErr.Path)
}

func TestPointers(t *testing.T) {
	t.Parallel()

	src := load(t, "port: 8080\nhost:\n  name: a\n")
	b := binder.New()

	port, ok, err := binder.Get[*int](b, "port", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8080, *port)

	host, ok, err := binder.Get[**Host](b, "host", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", (**host).Name)

	_, ok, err = binder.Get[*Host](b, "missing", src)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLSource(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE props ("key" TEXT PRIMARY KEY, "value" TEXT)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO props VALUES ('server.name', 'db'), ('server.hosts[0].name', 'a'), ('server.hosts[1].name', 'b')`)
	require.NoError(t, err)

	r, err := source.NewSQLResolver(context.Background(), db, "props")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	srv, ok, err := binder.Get[Server](binder.New(), "server", source.Flat(r))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Server{Name: "db", Hosts: []Host{{Name: "a"}, {Name: "b"}}}, srv)
}

func TestEnvSource(t *testing.T) {
	t.Parallel()

	env := source.EnvResolver{
		Prefix: "APP",
		Environ: func() []string {
			return []string{"APP_PERSON_NAME=Bob", "APP_NAMES_0=x", "APP_NAMES_1=y"}
		},
	}

	p, ok, err := binder.Get[Person](binder.New(), "person", source.Flat(env))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Person{Name: "Bob"}, p)

	names, ok, err := binder.Get[[]string](binder.New(), "names", source.Flat(env))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, names)
}
