package core

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// FormatSpan applies a format to a rune range.
type FormatSpan struct {
	Span   text.Span
	Format Format
}

// NewFormatSpan creates a format span covering [start, start+length).
func NewFormatSpan(start, length int, f Format) FormatSpan {
	return FormatSpan{Span: text.NewSpan(start, length), Format: f}
}

// FormattedString is text with formatted ranges. Where spans overlap the
// later span wins.
type FormattedString struct {
	Text  string
	Spans []FormatSpan
}

// Plain returns an unformatted string.
func Plain(s string) FormattedString {
	return FormattedString{Text: s}
}

// Formatted returns s with a single format covering all of it.
func Formatted(s string, f Format) FormattedString {
	if f.IsDefault() {
		return Plain(s)
	}
	return FormattedString{
		Text:  s,
		Spans: []FormatSpan{NewFormatSpan(0, utf8.RuneCountInString(s), f)},
	}
}

// Len returns the length of the text in runes.
func (s FormattedString) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// Width returns the number of columns the text occupies on a single row.
func (s FormattedString) Width() int {
	return text.StringWidth(s.Text)
}

// IsEmpty returns true if there is no text.
func (s FormattedString) IsEmpty() bool {
	return s.Text == ""
}

// String returns the unformatted text.
func (s FormattedString) String() string {
	return s.Text
}

// FormatAt returns the format in effect at rune offset i.
func (s FormattedString) FormatAt(i int) Format {
	var f Format
	for _, span := range s.Spans {
		if span.Span.Contains(i) {
			f = span.Format
		}
	}
	return f
}

// Append concatenates other onto s, shifting other's spans.
func (s FormattedString) Append(other FormattedString) FormattedString {
	shift := s.Len()
	out := FormattedString{
		Text:  s.Text + other.Text,
		Spans: make([]FormatSpan, 0, len(s.Spans)+len(other.Spans)),
	}
	out.Spans = append(out.Spans, s.Spans...)
	for _, span := range other.Spans {
		span.Span.Start += shift
		out.Spans = append(out.Spans, span)
	}
	return out
}

// Lines splits the string on newlines, keeping the formatting of each
// line.
func (s FormattedString) Lines() []FormattedString {
	parts := strings.Split(s.Text, "\n")
	lines := make([]FormattedString, 0, len(parts))
	offset := 0
	for _, p := range parts {
		n := utf8.RuneCountInString(p)
		lines = append(lines, s.slice(offset, n))
		offset += n + 1
	}
	return lines
}

// Slice returns the rune range [start, start+length) with its formats.
func (s FormattedString) Slice(start, length int) FormattedString {
	span := text.NewSpan(start, length).Clamp(s.Len())
	return s.slice(span.Start, span.Length)
}

func (s FormattedString) slice(start, length int) FormattedString {
	runes := []rune(s.Text)
	out := FormattedString{Text: string(runes[start : start+length])}
	window := text.NewSpan(start, length)
	for _, span := range s.Spans {
		if in, ok := span.Span.Intersect(window); ok {
			in.Start -= start
			out.Spans = append(out.Spans, FormatSpan{Span: in, Format: span.Format})
		}
	}
	return out
}
