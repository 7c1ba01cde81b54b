package text

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// widths treats ambiguous East Asian characters as narrow, which matches
// what most terminal emulators do outside of CJK locales.
var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RuneWidth returns the number of columns r occupies: 0 for newlines,
// control and combining characters, 2 for wide glyphs, 1 otherwise.
func RuneWidth(r rune) int {
	if r == '\n' {
		return 0
	}
	return min(widths.RuneWidth(r), 2)
}

// GraphemeWidth returns the number of columns a grapheme cluster occupies.
// A newline occupies no columns. Every other cluster occupies at least one
// column so that unprintable characters still get a cell of their own.
func GraphemeWidth(cluster string) int {
	if cluster == "" || IsNewline(cluster) {
		return 0
	}
	w := 0
	for _, r := range cluster {
		w = max(w, RuneWidth(r))
	}
	return min(max(w, 1), 2)
}

// StringWidth returns the number of columns s occupies on a single row.
func StringWidth(s string) int {
	total := 0
	for _, cluster := range Graphemes(s) {
		total += GraphemeWidth(cluster)
	}
	return total
}

// IsNewline returns true if the cluster is a line break.
func IsNewline(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n"
}

// Graphemes iterates over the grapheme clusters of s, yielding the rune
// offset of each cluster together with the cluster itself.
func Graphemes(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		offset := 0
		state := -1
		for len(s) > 0 {
			var cluster string
			cluster, s, _, state = uniseg.StepString(s, state)
			if !yield(offset, cluster) {
				return
			}
			offset += utf8.RuneCountInString(cluster)
		}
	}
}

// Printable returns a displayable form of a cluster. Control characters are
// shown as U+FFFD; tabs as a single space.
func Printable(cluster string) string {
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case r == '\t':
		return " "
	case unicode.IsControl(r):
		return "�"
	}
	return cluster
}

// TruncateToWidth shortens s so that it fits in width columns. If anything
// was cut, the result ends with tail (which must fit in width).
func TruncateToWidth(s string, width int, tail string) string {
	if StringWidth(s) <= width {
		return s
	}
	limit := width - StringWidth(tail)
	if limit < 0 {
		return ""
	}
	used := 0
	out := make([]byte, 0, len(s))
	for _, cluster := range Graphemes(s) {
		w := GraphemeWidth(cluster)
		if used+w > limit {
			break
		}
		used += w
		out = append(out, cluster...)
	}
	return string(out) + tail
}
