package text

import "fmt"

// Span is a half-open range [Start, Start+Length) of rune offsets.
type Span struct {
	Start  int
	Length int
}

// NewSpan creates a span, clamping negative values to zero.
func NewSpan(start, length int) Span {
	return Span{Start: max(start, 0), Length: max(length, 0)}
}

// SpanFromBounds creates a span covering [start, end).
// The bounds may be given in either order.
func SpanFromBounds(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return NewSpan(start, end-start)
}

// End returns the exclusive end offset.
func (s Span) End() int {
	return s.Start + s.Length
}

// IsEmpty returns true if the span covers no offsets.
func (s Span) IsEmpty() bool {
	return s.Length == 0
}

// Contains returns true if offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}

// ContainsSpan returns true if other lies entirely within s.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End() <= s.End()
}

// Overlaps returns true if the two spans share at least one offset.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End() && other.Start < s.End()
}

// Intersect returns the overlapping part of two spans.
func (s Span) Intersect(other Span) (Span, bool) {
	if !s.Overlaps(other) {
		return Span{}, false
	}
	return SpanFromBounds(max(s.Start, other.Start), min(s.End(), other.End())), true
}

// Clamp limits the span to [0, length). Each end is clamped on its own,
// so a span lying entirely before 0 becomes empty.
func (s Span) Clamp(length int) Span {
	start := min(max(s.Start, 0), length)
	end := min(max(s.End(), 0), length)
	return SpanFromBounds(start, end)
}

// String returns a string representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End())
}
