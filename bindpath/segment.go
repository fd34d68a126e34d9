package bindpath

import (
	"strconv"
	"strings"
)

// Flag is a capability bitmask of a path segment.
type Flag uint8

const (
	Default   Flag = 1 << iota // plain name characters (letters, digits, dashes)
	Indexed                    // segment was written inside [...]
	Numeric                    // segment contains a digit
	Dashed                     // segment contains a dash
	Corrupted                  // unbalanced brackets

	Empty Flag = 0
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Default, "default"},
	{Indexed, "indexed"},
	{Numeric, "numeric"},
	{Dashed, "dashed"},
	{Corrupted, "corrupted"},
}

// String returns the flag names joined by "|", or "empty".
func (f Flag) String() string {
	if f == Empty {
		return "empty"
	}

	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}

	return strings.Join(parts, "|")
}

// Segment is a single unit of a Path.
// Start and End are byte offsets into the text the path was built from.
type Segment struct {
	Start int
	End   int
	Flags Flag
	Text  string
}

// Is reports whether all bits of flag are set.
func (s Segment) Is(flag Flag) bool {
	return s.Flags&flag == flag
}

func (s Segment) IsIndexed() bool   { return s.Is(Indexed) }
func (s Segment) IsNumeric() bool   { return s.Is(Numeric) }
func (s Segment) IsDashed() bool    { return s.Is(Dashed) }
func (s Segment) IsCorrupted() bool { return s.Is(Corrupted) }
func (s Segment) IsEmpty() bool     { return s.Flags == Empty }

// Index returns the segment as a list index when the text consists of
// decimal digits only. The Numeric flag is looser: it is set when any
// digit is present.
func (s Segment) Index() (int, bool) {
	if s.Text == "" {
		return 0, false
	}

	for i := 0; i < len(s.Text); i++ {
		if !isDigit(s.Text[i]) {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s.Text)
	if err != nil {
		return 0, false
	}

	return n, true
}

// String returns the segment text, bracketed when indexed.
func (s Segment) String() string {
	if s.IsIndexed() {
		return "[" + s.Text + "]"
	}

	return s.Text
}

func classify(c byte) Flag {
	switch {
	case isDigit(c):
		return Numeric | Default
	case c == '-':
		return Dashed | Default
	case isLetter(c):
		return Default
	default:
		return Empty
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
