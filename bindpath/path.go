package bindpath

import (
	"slices"
	"strconv"
	"strings"

	"struct-binder/utils"
)

// DefaultSeparator separates plain segments.
const DefaultSeparator = '.'

// Path is an immutable, ordered sequence of segments.
// The zero value is the empty path with the default separator.
type Path struct {
	text string
	sep  byte
	segs []Segment
}

// Parse parses s using the default separator.
func Parse(s string) Path {
	return ParseWith(s, DefaultSeparator)
}

// ParseWith parses s in a single left-to-right scan.
//
// Rules:
//   - '[' at nesting 0 closes the current segment and opens an indexed one
//   - ']' closing the outermost bracket closes the indexed segment
//   - sep at nesting 0 closes the current plain segment
//   - any other byte accumulates into the segment flags
//
// Unterminated brackets mark the trailing segment Corrupted; it is kept.
// A trailing empty segment (text ending with sep) is dropped.
func ParseWith(s string, sep byte) Path {
	p := Path{text: s, sep: sep}

	var (
		nesting int
		flags   Flag
		start   int
	)

	emit := func(end int, f Flag) {
		p.segs = append(p.segs, Segment{Start: start, End: end, Flags: f, Text: s[start:end]})
	}

	// afterBracket reports the zero-width gap right after a closing bracket,
	// as in "[0].name" or "[0][1]"; it never becomes a segment.
	afterBracket := func(i int) bool {
		return i == start && start > 0 && s[start-1] == ']'
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '[':
			if nesting == 0 {
				if (i > start || flags != Empty) && !afterBracket(i) {
					emit(i, flags)
				}

				start = i + 1
				flags = Indexed
			}

			nesting++

		case c == ']':
			if nesting == 0 {
				flags |= Corrupted
				continue
			}

			nesting--
			if nesting == 0 {
				emit(i, flags)
				start = i + 1
				flags = Empty
			}

		case c == sep && nesting == 0 && flags&Indexed == 0:
			if !afterBracket(i) {
				emit(i, flags)
			}

			start = i + 1
			flags = Empty

		default:
			flags |= classify(c)
		}
	}

	if nesting != 0 {
		flags |= Corrupted
	}

	if start < len(s) || flags != Empty {
		emit(len(s), flags)
	}

	return p
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segs)
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segs) == 0
}

// Get returns the i-th segment. It panics if i is out of range, like a slice index.
func (p Path) Get(i int) Segment {
	return p.segs[i]
}

// Last returns the last segment and false when the path is empty.
func (p Path) Last() (Segment, bool) {
	if len(p.segs) == 0 {
		return Segment{}, false
	}

	return p.segs[len(p.segs)-1], true
}

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment {
	return slices.Clone(p.segs)
}

// Separator returns the plain segment separator.
func (p Path) Separator() byte {
	if p.sep == 0 {
		return DefaultSeparator
	}

	return p.sep
}

// Append returns p followed by other. Offsets of other are shifted past
// p's text and the joining separator; no separator is inserted when
// other starts with '['.
func (p Path) Append(other Path) Path {
	if other.IsEmpty() {
		return p
	}

	if p.IsEmpty() && p.text == "" {
		other.sep = p.Separator()
		return other
	}

	join := string(p.Separator())
	if strings.HasPrefix(other.text, "[") {
		join = ""
	}

	shift := len(p.text) + len(join)

	segs := make([]Segment, 0, len(p.segs)+len(other.segs))
	segs = append(segs, p.segs...)

	for _, seg := range other.segs {
		seg.Start += shift
		seg.End += shift
		segs = append(segs, seg)
	}

	return Path{text: p.text + join + other.text, sep: p.Separator(), segs: segs}
}

// AppendString parses s with p's separator and appends it.
func (p Path) AppendString(s string) Path {
	return p.Append(ParseWith(s, p.Separator()))
}

// Prepend returns other followed by p.
func (p Path) Prepend(other Path) Path {
	return other.Append(p)
}

// Slice returns the segments [from, to).
func (p Path) Slice(from, to int) (Path, error) {
	if !utils.IsInRange(0, from, to) || !utils.IsInRange(from, to, len(p.segs)) {
		return Path{}, &RangeError{From: from, To: to, Len: len(p.segs)}
	}

	if from == to {
		return Path{sep: p.sep}, nil
	}

	first, last := p.segs[from], p.segs[to-1]

	lo, hi := first.Start, last.End
	if first.IsIndexed() {
		lo--
	}

	if last.IsIndexed() && !last.IsCorrupted() {
		hi++
	}

	segs := make([]Segment, 0, to-from)
	for _, seg := range p.segs[from:to] {
		seg.Start -= lo
		seg.End -= lo
		segs = append(segs, seg)
	}

	return Path{text: p.text[lo:hi], sep: p.sep, segs: segs}, nil
}

// Skip drops the first n segments.
func (p Path) Skip(n int) (Path, error) {
	return p.Slice(n, len(p.segs))
}

// Limit keeps the first n segments.
func (p Path) Limit(n int) (Path, error) {
	return p.Slice(0, n)
}

// Equal reports whether both paths have the same segments.
// Offsets are not compared.
func (p Path) Equal(other Path) bool {
	return slices.EqualFunc(p.segs, other.segs, func(a, b Segment) bool {
		return a.Text == b.Text && a.Flags == b.Flags
	})
}

// ToOriginal rebuilds the canonical text of the path: indexed segments
// are bracketed and glued to their predecessor, plain segments are joined
// by the separator.
func (p Path) ToOriginal() string {
	sep := p.Separator()
	buf := make([]byte, 0, len(p.text)+2)

	for _, seg := range p.segs {
		if seg.IsIndexed() {
			if n := len(buf); n > 0 && buf[n-1] == sep {
				buf = buf[:n-1]
			}

			buf = append(buf, '[')
			buf = append(buf, seg.Text...)

			if !seg.IsCorrupted() {
				buf = append(buf, ']')
			}
		} else {
			buf = append(buf, seg.Text...)
		}

		buf = append(buf, sep)
	}

	if n := len(buf); n > 0 {
		buf = buf[:n-1]
	}

	return string(buf)
}

// String is ToOriginal.
func (p Path) String() string {
	return p.ToOriginal()
}

// Index returns base[i].
func Index(base Path, i int) Path {
	return base.AppendString("[" + strconv.Itoa(i) + "]")
}

// Key returns base[key]. The key becomes a single indexed segment as is;
// brackets and separators inside it are not parsed.
func Key(base Path, key string) Path {
	flags := Indexed
	for i := 0; i < len(key); i++ {
		flags |= classify(key[i])
	}

	seg := Segment{Start: 1, End: 1 + len(key), Flags: flags, Text: key}

	return base.Append(Path{text: "[" + key + "]", sep: base.Separator(), segs: []Segment{seg}})
}
