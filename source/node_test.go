package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-binder/bindpath"
	"struct-binder/source"
)

const document = `
defaults: &defaults
  timeout: 30s
  retries: 3

server:
  <<: *defaults
  name: main
  retries: 5
  hosts:
    - name: a
    - name: b
  backup: ~
  "0": zero
`

func TestNode(t *testing.T) {
	t.Parallel()

	src, err := source.Load([]byte(document))
	require.NoError(t, err)

	tests := []struct {
		path string
		want any
	}{
		{"server.name", "main"},
		{"server.hosts[1].name", "b"},
		{"server.timeout", "30s"},
		{"server.retries", 5},
		{"server[0]", "zero"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := source.Get(src, bindpath.Parse(tt.path))
			require.NoError(t, err)
			assert.Equal(t, tt.want, value(t, got))
		})
	}

	for _, path := range []string{"server.backup", "server.hosts[2]", "server.name.first", "nothing"} {
		got, err := source.Get(src, bindpath.Parse(path))
		require.NoError(t, err)
		assert.True(t, got.IsNull(), path)
	}

	server, err := src.Name("server")
	require.NoError(t, err)

	keys, err := server.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "retries", "hosts", "backup", "0", "timeout"}, keys)

	hosts, err := server.Name("hosts")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}, value(t, hosts))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	empty, err := source.Load(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsNull())

	_, err = source.Load([]byte("a: [1, 2"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"list": [1, 2, 3]}`), 0o600))

	src, err := source.LoadFile(file)
	require.NoError(t, err)

	got, err := source.Get(src, bindpath.Parse("list[2]"))
	require.NoError(t, err)
	assert.Equal(t, 3, value(t, got))

	_, err = source.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
