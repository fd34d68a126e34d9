package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load parses a YAML or JSON document into a Node source.
// An empty document loads as Null.
func Load(data []byte) (Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("source: parse document: %w", err)
	}

	return Node(&doc), nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}

	return Load(data)
}
