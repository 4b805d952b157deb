// Package source holds the source buffer and span types shared by every
// later stage of the pipeline: the lexer produces spans into the character
// buffer, the parser reuses those token spans for its nodes and errors, and
// diagnostics resolve them back to a line/column location for rendering.
package source

import "golang.org/x/text/unicode/norm"

// Buffer is an indexable run of units (runes while lexing, tokens while
// parsing) carrying the name of the file or snippet it came from.
type Buffer[T any] struct {
	Name  string
	Units []T
}

// NewBuffer wraps units under the given name.
func NewBuffer[T any](name string, units []T) *Buffer[T] {
	return &Buffer[T]{Name: name, Units: units}
}

// Len reports the number of units in the buffer.
func (b *Buffer[T]) Len() int { return len(b.Units) }

// At returns the unit at idx.
func (b *Buffer[T]) At(idx int) T { return b.Units[idx] }

// Slice returns the units in [start, end).
func (b *Buffer[T]) Slice(sp Span) []T { return b.Units[sp.Start:sp.End] }

// NewFromString normalizes src to NFC and wraps it as a rune buffer. Two
// source files that differ only in Unicode normalization form therefore
// tokenize identically and report identical columns.
func NewFromString(name, src string) *Buffer[rune] {
	normalized := norm.NFC.String(src)
	return NewBuffer(name, []rune(normalized))
}

// Span is a half-open range [Start, End) of unit indices into some Buffer.
// A Span never carries a reference to the buffer it indexes: callers thread
// the buffer alongside the span explicitly, matching terl's Span/Source
// split.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a span covering [start, end).
func NewSpan(start, end int) Span { return Span{Start: start, End: end} }

// PointSpan builds a single-unit span at idx, used when no real span is
// available yet (e.g. reporting an error before any token was consumed).
func PointSpan(idx int) Span { return Span{Start: idx, End: idx + 1} }

// Len reports the number of units the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no units.
func (s Span) Empty() bool { return s.End <= s.Start }

// Merge returns the smallest span covering both s and o.
func (s Span) Merge(o Span) Span {
	start, end := s.Start, s.End
	if o.Start < start {
		start = o.Start
	}
	if o.End > end {
		end = o.End
	}
	return Span{Start: start, End: end}
}

// Intersect returns the overlap of s and o. The result is empty (and should
// not be relied on) when s and o do not overlap.
func (s Span) Intersect(o Span) Span {
	start, end := s.Start, s.End
	if o.Start > start {
		start = o.Start
	}
	if o.End < end {
		end = o.End
	}
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Location is a resolved line/column position, 1-indexed as in most
// compiler diagnostics.
type Location struct {
	Line   int
	Column int
}

// Locator resolves rune offsets in a rune buffer to line/column pairs,
// caching line-start offsets the way the teacher's lexer tracks line/column
// incrementally while scanning rather than rescanning on every query.
type Locator struct {
	lineStarts []int
}

// NewLocator builds a locator over buf, one-time pass over the input.
func NewLocator(buf *Buffer[rune]) *Locator {
	starts := []int{0}
	for i, r := range buf.Units {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{lineStarts: starts}
}

// Resolve returns the 1-indexed line/column of offset.
func (l *Locator) Resolve(offset int) Location {
	lo, hi := 0, len(l.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Location{Line: lo + 1, Column: offset - l.lineStarts[lo] + 1}
}

// LineText returns the text of the given 1-indexed line, without its
// trailing newline.
func (l *Locator) LineText(buf *Buffer[rune], line int) string {
	if line < 1 || line > len(l.lineStarts) {
		return ""
	}
	start := l.lineStarts[line-1]
	end := len(buf.Units)
	if line < len(l.lineStarts) {
		end = l.lineStarts[line] - 1
	}
	if end < start {
		end = start
	}
	return string(buf.Units[start:end])
}
