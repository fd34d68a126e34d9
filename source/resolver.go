package source

import (
	"os"
	"slices"
	"strings"
)

// KeyResolver looks up flat string values by their full dotted key.
type KeyResolver interface {
	Lookup(key string) (string, bool, error)
	// HasPrefix reports whether any key starts with prefix.
	HasPrefix(prefix string) (bool, error)
}

// KeyLister is implemented by resolvers able to enumerate their keys.
type KeyLister interface {
	Keys() ([]string, error)
}

// MapResolver resolves keys from an in-memory map.
type MapResolver map[string]string

func (m MapResolver) Lookup(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m MapResolver) HasPrefix(prefix string) (bool, error) {
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			return true, nil
		}
	}

	return false, nil
}

func (m MapResolver) Keys() ([]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys, nil
}

// EnvResolver resolves keys from environment variables. A key is mapped to
// its variable name by upper-casing it, replacing every other character
// than a letter or a digit with an underscore and prepending Prefix:
// with Prefix "APP", server.hosts[0].name reads APP_SERVER_HOSTS_0_NAME.
type EnvResolver struct {
	Prefix string
	// Environ lists the variables as KEY=value; os.Environ when nil.
	Environ func() []string
}

func (r EnvResolver) Lookup(key string) (string, bool, error) {
	name := r.variable(key)
	for _, kv := range r.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			return v, true, nil
		}
	}

	return "", false, nil
}

func (r EnvResolver) HasPrefix(prefix string) (bool, error) {
	name := r.variable(prefix) + "_"
	for _, kv := range r.environ() {
		if strings.HasPrefix(kv, name) {
			return true, nil
		}
	}

	return false, nil
}

// Keys lists the matching variables as lower-case dotted keys.
func (r EnvResolver) Keys() ([]string, error) {
	prefix := ""
	if r.Prefix != "" {
		prefix = envName(r.Prefix) + "_"
	}

	var keys []string
	for _, kv := range r.environ() {
		k, _, _ := strings.Cut(kv, "=")
		if rest, ok := strings.CutPrefix(k, prefix); ok && rest != "" {
			keys = append(keys, strings.ReplaceAll(strings.ToLower(rest), "_", "."))
		}
	}

	slices.Sort(keys)

	return keys, nil
}

func (r EnvResolver) environ() []string {
	if r.Environ != nil {
		return r.Environ()
	}

	return os.Environ()
}

func (r EnvResolver) variable(key string) string {
	if r.Prefix == "" {
		return envName(key)
	}

	return envName(r.Prefix + "_" + key)
}

func envName(key string) string {
	var b strings.Builder

	underscore := true
	for _, c := range strings.ToUpper(key) {
		if ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteRune(c)
			underscore = false
			continue
		}

		if !underscore {
			b.WriteByte('_')
			underscore = true
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}
