package source

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// Node wraps a YAML node. Documents and aliases are followed; a nil node
// or an explicit null becomes Null. Mappings honour merge keys (<<).
func Node(n *yaml.Node) Source {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return Null()
			}

			n = n.Content[0]
			continue
		case yaml.AliasNode:
			n = n.Alias
			continue
		}

		break
	}

	if n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return Null()
	}

	return node{n: n}
}

type node struct {
	n *yaml.Node
}

func (s node) IsNull() bool {
	return false
}

func (s node) Shape() (Shape, error) {
	return s.shape(), nil
}

func (s node) shape() Shape {
	switch s.n.Kind {
	case yaml.MappingNode:
		return ShapeMap
	case yaml.SequenceNode:
		return ShapeList
	default:
		return ShapeScalar
	}
}

func (s node) Name(name string) (Source, error) {
	if s.n.Kind != yaml.MappingNode {
		return Null(), nil
	}

	var found *yaml.Node
	s.each(func(key, value *yaml.Node) bool {
		if key.Value == name {
			found = value
			return false
		}

		return true
	})

	return Node(found), nil
}

// Index reads sequence items; on mappings it looks up the decimal key.
func (s node) Index(i int) (Source, error) {
	switch s.n.Kind {
	case yaml.SequenceNode:
		if i < 0 || i >= len(s.n.Content) {
			return Null(), nil
		}

		return Node(s.n.Content[i]), nil
	case yaml.MappingNode:
		return s.Name(strconv.Itoa(i))
	default:
		return Null(), nil
	}
}

// Value decodes the node into plain Go values: map[string]any, []any
// and scalars.
func (s node) Value() (any, error) {
	var v any
	if err := s.n.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// Keys returns the mapping keys in document order.
func (s node) Keys() ([]string, error) {
	if s.n.Kind != yaml.MappingNode {
		return nil, &ShapeMismatchError{Want: ShapeMap, Got: s.shape()}
	}

	var (
		keys []string
		seen = map[string]struct{}{}
	)

	s.each(func(key, _ *yaml.Node) bool {
		if _, ok := seen[key.Value]; !ok {
			seen[key.Value] = struct{}{}
			keys = append(keys, key.Value)
		}

		return true
	})

	return keys, nil
}

// each visits own pairs first, then merged mappings in order.
func (s node) each(fn func(key, value *yaml.Node) bool) bool {
	var merged []*yaml.Node

	for i := 0; i+1 < len(s.n.Content); i += 2 {
		key, value := s.n.Content[i], s.n.Content[i+1]
		if key.ShortTag() == mergeTag {
			merged = append(merged, value)
			continue
		}

		if !fn(key, value) {
			return false
		}
	}

	for _, m := range merged {
		targets := []*yaml.Node{m}
		if resolve(m).Kind == yaml.SequenceNode {
			targets = resolve(m).Content
		}

		for _, target := range targets {
			if t := resolve(target); t.Kind == yaml.MappingNode {
				if !(node{n: t}).each(fn) {
					return false
				}
			}
		}
	}

	return true
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func (s node) String() string {
	return "yaml " + s.shape().String()
}
