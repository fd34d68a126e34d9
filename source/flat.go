package source

import (
	"fmt"
	"slices"
	"strings"

	"struct-binder/bindpath"
)

// Flat wraps a KeyResolver. Paths are resolved as whole keys: first in
// canonical form (hosts[0].name), then fully dotted (hosts.0.name).
// A key that is only a prefix of other keys resolves to a nested Flat
// source; a key that holds a value resolves to a string scalar.
func Flat(r KeyResolver) Source {
	return flat{r: r}
}

type flat struct {
	r      KeyResolver
	prefix bindpath.Path
}

func (s flat) IsNull() bool {
	return false
}

func (s flat) Shape() (Shape, error) {
	return ShapeMap, nil
}

func (s flat) Resolve(p bindpath.Path) (Source, error) {
	full := s.prefix.Append(p)
	if full.IsEmpty() {
		return s, nil
	}

	forms := keyForms(full)

	for _, key := range forms {
		v, ok, err := s.r.Lookup(key)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", key, err)
		}

		if ok {
			return Of(v), nil
		}
	}

	for _, key := range forms {
		for _, next := range []string{string(full.Separator()), "["} {
			ok, err := s.r.HasPrefix(key + next)
			if err != nil {
				return nil, fmt.Errorf("lookup prefix %q: %w", key, err)
			}

			if ok {
				return flat{r: s.r, prefix: full}, nil
			}
		}
	}

	return Null(), nil
}

// Name resolves name as a dotted key below the current prefix.
func (s flat) Name(name string) (Source, error) {
	return s.Resolve(bindpath.ParseWith(name, s.prefix.Separator()))
}

func (s flat) Index(int) (Source, error) {
	return nil, &UnsupportedError{Op: "index", Source: s.String()}
}

func (s flat) Value() (any, error) {
	return nil, &ShapeMismatchError{Want: ShapeScalar, Got: ShapeMap}
}

// Keys lists the distinct segments directly below the current prefix.
// The resolver must implement KeyLister.
func (s flat) Keys() ([]string, error) {
	lister, ok := s.r.(KeyLister)
	if !ok {
		return nil, &UnsupportedError{Op: "keys", Source: s.String()}
	}

	all, err := lister.Keys()
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, key := range all {
		p := bindpath.ParseWith(key, s.prefix.Separator())

		head, err := p.Limit(s.prefix.Len())
		if err != nil || !head.Equal(s.prefix) || p.Len() == s.prefix.Len() {
			continue
		}

		if next := p.Get(s.prefix.Len()).Text; !slices.Contains(keys, next) {
			keys = append(keys, next)
		}
	}

	slices.Sort(keys)

	return keys, nil
}

func (s flat) String() string {
	if s.prefix.IsEmpty() {
		return "flat"
	}

	return "flat " + s.prefix.ToOriginal()
}

func keyForms(p bindpath.Path) []string {
	canonical := p.ToOriginal()

	texts := make([]string, 0, p.Len())
	for _, seg := range p.Segments() {
		texts = append(texts, seg.Text)
	}

	dotted := strings.Join(texts, string(p.Separator()))
	if dotted == canonical {
		return []string{canonical}
	}

	return []string{canonical, dotted}
}
