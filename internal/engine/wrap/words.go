package wrap

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// Words wraps s for display. Existing newlines always start a new row and
// are not part of any row's text. Whole words are packed greedily; only a
// word wider than width is split, at cluster granularity. A line's indent
// is dropped when the first word would not fit beside it.
func Words(s string, width int) []WrappedLine {
	width = max(width, 1)
	var lines []WrappedLine
	offset := 0
	for _, line := range strings.Split(s, "\n") {
		lines = append(lines, wrapLine(line, offset, width)...)
		offset += utf8.RuneCountInString(line) + 1
	}
	return lines
}

type word struct {
	sep    string
	text   string
	offset int
}

// splitWords splits line into words, each carrying the whitespace that
// precedes it. Leading whitespace is the first word's separator.
func splitWords(line string, offset int) []word {
	var (
		words []word
		sep   strings.Builder
		cur   strings.Builder
		start int
	)
	i := 0
	for _, r := range line {
		if unicode.IsSpace(r) {
			if cur.Len() > 0 {
				words = append(words, word{sep: sep.String(), text: cur.String(), offset: start})
				sep.Reset()
				cur.Reset()
			}
			sep.WriteRune(r)
		} else {
			if cur.Len() == 0 {
				start = offset + i
			}
			cur.WriteRune(r)
		}
		i++
	}
	if cur.Len() > 0 {
		words = append(words, word{sep: sep.String(), text: cur.String(), offset: start})
	}
	return words
}

func wrapLine(line string, offset, width int) []WrappedLine {
	words := splitWords(line, offset)
	if len(words) == 0 {
		// Blank or whitespace-only: keep what fits on one row.
		return []WrappedLine{{StartOffset: offset, Text: Characters(line, 0, width).Lines[0].Text}}
	}

	var (
		lines    []WrappedLine
		row      strings.Builder
		rowStart int
		rowWidth int
	)
	flush := func() {
		if row.Len() > 0 {
			lines = append(lines, WrappedLine{StartOffset: rowStart, Text: row.String()})
		}
		row.Reset()
		rowWidth = 0
	}

	for i, w := range words {
		ww := text.StringWidth(w.text)
		sw := text.StringWidth(w.sep)

		// The line's indent is kept only when the first word still fits
		// beside it.
		if i == 0 && sw > 0 && sw+ww <= width {
			rowStart = w.offset - utf8.RuneCountInString(w.sep)
			row.WriteString(w.sep)
			row.WriteString(w.text)
			rowWidth = sw + ww
			continue
		}

		if rowWidth > 0 && rowWidth+sw+ww <= width {
			row.WriteString(w.sep)
			row.WriteString(w.text)
			rowWidth += sw + ww
			continue
		}
		flush()

		if ww <= width {
			rowStart = w.offset
			row.WriteString(w.text)
			rowWidth = ww
			continue
		}

		pieces := Characters(w.text, 0, width).Lines
		for j, p := range pieces {
			if j == len(pieces)-1 {
				rowStart = w.offset + p.StartOffset
				row.WriteString(p.Text)
				rowWidth = text.StringWidth(p.Text)
				break
			}
			lines = append(lines, WrappedLine{StartOffset: w.offset + p.StartOffset, Text: p.Text})
		}
	}
	flush()
	return lines
}
