package chatlog

import "strings"

// Class identifies how a span is coloured.
type Class int

const (
	ClassNone Class = iota
	ClassTag
	ClassUser
)

func (c Class) String() string {
	switch c {
	case ClassTag:
		return "tag"
	case ClassUser:
		return "user"
	default:
		return "none"
	}
}

// Span is a coloured byte range of a display row.
type Span struct {
	Start int
	Len   int
	Class Class
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Start + s.Len
}

// Segment is a run of text sharing one class.
type Segment struct {
	Text  string
	Class Class
}

// Highlight returns the tag and user spans for one display row. It matches
// the first position where an optional "[tag]" plus whitespace, a non-empty
// run of non-colon bytes, a colon and at least one more byte appear. Rows
// that never match get no spans.
func Highlight(line string) []Span {
	for i := 0; i < len(line); i++ {
		if spans, ok := matchAt(line, i); ok {
			return spans
		}
	}
	return nil
}

// Segments splits line into styled and plain runs using Highlight.
func Segments(line string) []Segment {
	spans := Highlight(line)
	if len(spans) == 0 {
		if line == "" {
			return nil
		}
		return []Segment{{Text: line}}
	}
	segments := make([]Segment, 0, len(spans)*2+1)
	pos := 0
	for _, span := range spans {
		if span.Start > pos {
			segments = append(segments, Segment{Text: line[pos:span.Start]})
		}
		segments = append(segments, Segment{Text: line[span.Start:span.End()], Class: span.Class})
		pos = span.End()
	}
	if pos < len(line) {
		segments = append(segments, Segment{Text: line[pos:]})
	}
	return segments
}

func matchAt(line string, i int) ([]Span, bool) {
	if tag, next, ok := tagAt(line, i); ok {
		if user, ok := userAt(line, next); ok {
			return []Span{tag, user}, true
		}
	}
	if user, ok := userAt(line, i); ok {
		return []Span{user}, true
	}
	return nil, false
}

// tagAt matches "[x]" followed by one whitespace byte at i.
func tagAt(line string, i int) (Span, int, bool) {
	if line[i] != '[' {
		return Span{}, 0, false
	}
	rel := strings.IndexByte(line[i+1:], ']')
	if rel <= 0 {
		return Span{}, 0, false
	}
	closing := i + 1 + rel
	if closing+1 >= len(line) || !isSpace(line[closing+1]) {
		return Span{}, 0, false
	}
	return Span{Start: i, Len: closing + 1 - i, Class: ClassTag}, closing + 2, true
}

// userAt matches the username starting at p; the message after the colon
// must be non-empty.
func userAt(line string, p int) (Span, bool) {
	if p >= len(line) || line[p] == ':' {
		return Span{}, false
	}
	rel := strings.IndexByte(line[p:], ':')
	if rel < 0 {
		return Span{}, false
	}
	colon := p + rel
	if colon+1 >= len(line) {
		return Span{}, false
	}
	return Span{Start: p, Len: rel, Class: ClassUser}, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
