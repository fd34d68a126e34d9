package binder_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-binder/binder"
	"struct-binder/bindpath"
	"struct-binder/options"
	"struct-binder/primitive"
	"struct-binder/source"
)

type Host struct {
	Name string
	Port int
}

type Server struct {
	Name  string
	Hosts []Host
	Tags  map[string]string
}

type Person struct {
	Name string
	Age  int
}

func load(t *testing.T, doc string) source.Source {
	t.Helper()

	src, err := source.Load([]byte(doc))
	require.NoError(t, err)

	return src
}

func TestBind_HostScenario(t *testing.T) {
	t.Parallel()

	b := binder.New()
	src := source.Of(map[string]any{
		"server": map[string]any{
			"hosts": []any{map[string]any{"name": "x"}},
		},
	})

	name, ok, err := binder.Get[string](b, "server.hosts[0].name", src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", name)

	_, ok, err = binder.Get[string](b, "server.hosts[1].name", src)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBind_NativeArray(t *testing.T) {
	t.Parallel()

	b := binder.New()
	src := source.Of(map[string]any{"arr": []any{1, 2, 3}})

	ints, ok, err := binder.Get[[]int](b, "arr", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, ints)
	assert.Len(t, ints, 3)

	fixed, ok, err := binder.Get[[3]int](b, "arr", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [3]int{1, 2, 3}, fixed)

	short, ok, err := binder.Get[[2]int](b, "arr", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 2}, short)
}

func TestBind_CollectionTermination(t *testing.T) {
	t.Parallel()

	b := binder.New()

	// indexes 0..2, a gap at 3, then 4
	src := source.Of(map[string]any{
		"items": map[string]any{"0": "a", "1": "b", "2": "c", "4": "e"},
	})

	items, ok, err := binder.Get[[]string](b, "items", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, items)

	empty, ok, err := binder.Get[[]string](b, "items", source.Of(map[string]any{"items": []any{}}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, empty)
}

func TestBind_AbsenceSafety(t *testing.T) {
	t.Parallel()

	b := binder.New()
	src := load(t, "server:\n  name: main\n")

	for _, path := range []string{"missing", "server.hosts", "server.hosts[0].name", "other.deeper[3].x"} {
		res, err := b.BindString(path, binder.For[Server](), src)
		require.NoError(t, err, path)
		assert.False(t, res.IsPresent(), path)

		res, err = b.BindString(path, binder.For[[]Host](), src)
		require.NoError(t, err, path)
		assert.False(t, res.IsPresent(), path)
	}

	res, err := b.BindString("server", binder.For[Server](), src)
	require.NoError(t, err)
	require.True(t, res.IsPresent())
	assert.Equal(t, Server{Name: "main"}, res.Interface(), "absent properties stay zero")
}

func TestBind_PartialBean(t *testing.T) {
	t.Parallel()

	b := binder.New()
	src := source.Of(map[string]any{"person": map[string]any{"name": "Ann"}})

	p := Person{Name: "old", Age: 42}

	ok, err := b.Into("person", &p, src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Person{Name: "Ann", Age: 42}, p)

	ok, err = b.Into("nobody", &p, src)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Person{Name: "Ann", Age: 42}, p)

	_, err = b.Into("person", p, src)
	assert.ErrorIs(t, err, binder.ErrInvalidTarget)
}

func TestBind_Document(t *testing.T) {
	t.Parallel()

	src := load(t, `
server:
  name: main
  hosts:
    - name: a
      port: 80
    - name: b
      port: 8080
  tags:
    env: prod
    zone: eu
`)

	srv, ok, err := binder.Get[Server](binder.New(), "server", src)
	require.NoError(t, err)
	require.True(t, ok)

	want := Server{
		Name:  "main",
		Hosts: []Host{{Name: "a", Port: 80}, {Name: "b", Port: 8080}},
		Tags:  map[string]string{"env": "prod", "zone": "eu"},
	}
	assert.Equal(t, want, srv, spew.Sdump(srv))
}

func TestBind_Shallow(t *testing.T) {
	t.Parallel()

	src := load(t, "server:\n  name: main\n  hosts:\n    - name: a\n")
	b := binder.New(binder.WithPolicy(options.PolicyShallow))

	srv, ok, err := binder.Get[Server](b, "server", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "main", srv.Name)
	assert.Nil(t, srv.Hosts, "nested collections are not bound")

	hosts, ok, err := binder.Get[[]Host](b, "server.hosts", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, hosts, "shallow elements are absent so the loop stops at once")
}

func TestBind_Conversion(t *testing.T) {
	t.Parallel()

	src := source.Flat(source.MapResolver{
		"server.name":          "main",
		"server.hosts[0].name": "a",
		"server.hosts[0].port": "80",
		"timeout":              "1m",
	})

	_, _, err := binder.Get[Server](binder.New(), "server", src)
	var bindErr *binder.BindError
	require.ErrorAs(t, err, &bindErr, "strings are not assignable to int without conversions")
	assert.Equal(t, "server.hosts[0].port", bindErr.Path)
	assert.ErrorIs(t, err, primitive.ErrNotConvertible)

	b := binder.New(binder.WithConversions(primitive.CategoryTextNumber | primitive.CategoryDuration))

	srv, ok, err := binder.Get[Server](b, "server", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Server{Name: "main", Hosts: []Host{{Name: "a", Port: 80}}}, srv)

	timeout, ok, err := binder.Get[time.Duration](b, "timeout", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Minute, timeout)
}

func TestBind_Untyped(t *testing.T) {
	t.Parallel()

	src := load(t, "a:\n  b: [1, two]\n")

	v, ok, err := binder.Get[any](binder.New(), "a", src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"b": []any{1, "two"}}, v)
}

func TestBind_Unsupported(t *testing.T) {
	t.Parallel()

	src := source.Of(map[string]any{"host": Host{Name: "a"}})

	_, _, err := binder.Get[string](binder.New(), "host[0]", src)
	assert.ErrorIs(t, err, source.ErrUnsupported)
}

func TestFromOptions(t *testing.T) {
	t.Parallel()

	o, err := options.Parse([]byte("policy: shallow\nseparator: /\nconversions: [text_number]\n"))
	require.NoError(t, err)

	b, err := binder.FromOptions(o)
	require.NoError(t, err)

	s := b.Session()
	assert.False(t, s.IsDeep())
	assert.Equal(t, primitive.CategoryTextNumber, s.Conversions())

	port, ok, err := binder.Get[int](b, "server/port", source.Of(map[string]any{"server": map[string]string{"port": "80"}}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 80, port)

	_, err = binder.FromOptions(&options.Options{Separator: "::"})
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := binder.New(binder.WithLogger(logger))
	_, _, err := binder.Get[[]int](b, "arr", source.Of(map[string]any{"arr": []int{1, 2}}))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "strategy selected")
	assert.Contains(t, buf.String(), "binder.ArrayBinder")
	assert.Contains(t, buf.String(), "size=2")

	_, _, err = binder.Get[int](b, "missing", source.Of(map[string]any{}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "path absent")
}

func TestBind_EmptyPath(t *testing.T) {
	t.Parallel()

	res, err := binder.New().Bind(bindpath.Path{}, binder.For[Person](), source.Of(map[string]any{"name": "root", "age": 3}))
	require.NoError(t, err)
	assert.Equal(t, Person{Name: "root", Age: 3}, res.Interface())
}
