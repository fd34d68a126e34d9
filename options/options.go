package options

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy controls whether non-scalar nested targets are bound.
type Policy int

const (
	PolicyDeep    Policy = iota // recurse into nested beans and collections
	PolicyShallow               // bind scalar leaves only
)

func (p Policy) String() string {
	switch p {
	case PolicyDeep:
		return "deep"
	case PolicyShallow:
		return "shallow"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "deep":
		*p = PolicyDeep
	case "shallow":
		*p = PolicyShallow
	default:
		return fmt.Errorf("unknown binding policy %q", text)
	}

	return nil
}

// Options is the binder configuration file.
type Options struct {
	Version     string   `yaml:"version"`
	Policy      Policy   `yaml:"policy"`
	Separator   string   `yaml:"separator,omitempty"`
	Conversions []string `yaml:"conversions,omitempty"`
	LogLevel    string   `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when none is given:
// deep binding, dot separator, no conversions.
func Default() *Options {
	var o Options
	applyDefaults(&o)

	return &o
}

// LoadFile loads and parses a YAML options file from the given path.
func LoadFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into Options.
func Parse(data []byte) (*Options, error) {
	var o Options

	err := yaml.Unmarshal(data, &o)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	applyDefaults(&o)

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return &o, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(o *Options) {
	if o.Version == "" {
		o.Version = "1"
	}

	if o.Separator == "" {
		o.Separator = "."
	}

	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
}

// Validate checks the separator, the conversion names and the log level.
func (o *Options) Validate() error {
	if len(o.Separator) != 1 || strings.ContainsAny(o.Separator, "[]") {
		return fmt.Errorf("separator must be a single character other than a bracket, got %q", o.Separator)
	}

	if _, err := o.Categories(); err != nil {
		return err
	}

	if _, err := o.Level(); err != nil {
		return err
	}

	return nil
}

// Sep returns the path separator byte.
func (o *Options) Sep() byte {
	if len(o.Separator) == 0 {
		return '.'
	}

	return o.Separator[0]
}

// Level parses LogLevel as a slog level name such as "debug" or "warn".
func (o *Options) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}

	return level, nil
}

// Marshal serializes Options to YAML.
func Marshal(o *Options) ([]byte, error) {
	return yaml.Marshal(o)
}

// WriteFile writes Options to the given path.
func WriteFile(o *Options, path string) error {
	data, err := Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write options file %s: %w", path, err)
	}

	return nil
}
