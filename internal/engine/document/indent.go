package document

import (
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// Indent shifts every line touched by span. A positive direction inserts
// the indent string at each line start; a negative direction strips up to
// one indent width of leading spaces, or a single tab. A non-empty span
// ending at column 0 does not touch the line it ends on.
//
// The selection and caret follow the text so the same logical lines stay
// covered. The whole operation is one undo step.
func (d *Document) Indent(span text.Span, dir Direction) {
	mustDirection(dir)
	starts := d.touchedLineStarts(span.Clamp(len(d.buf)))

	var anchor, active int
	hasSel := d.sel != nil
	if hasSel {
		anchor, active = d.sel.Anchor, d.sel.Active
	}
	caret := d.caret

	b := d.BeginBatch()
	defer b.End()

	// Later lines first so earlier line starts stay valid.
	for i := len(starts) - 1; i >= 0; i-- {
		s := starts[i]
		if dir > 0 {
			ins := []rune(d.indent)
			d.splice(s, s, ins)
			n := len(ins)
			if hasSel {
				anchor = shiftInsert(anchor, s, n, false)
				active = shiftInsert(active, s, n, false)
			}
			caret = shiftInsert(caret, s, n, !hasSel)
			continue
		}
		k := d.outdentWidth(s)
		if k == 0 {
			continue
		}
		d.splice(s, s+k, nil)
		anchor = shiftRemove(anchor, s, k)
		active = shiftRemove(active, s, k)
		caret = shiftRemove(caret, s, k)
	}

	if hasSel {
		d.Select(anchor, active)
	}
	d.caret = d.clamp(caret)
	d.commit()
}

// touchedLineStarts returns the start offsets of the lines span touches,
// in ascending order.
func (d *Document) touchedLineStarts(span text.Span) []int {
	end := span.End()
	if !span.IsEmpty() && d.buf[end-1] == '\n' {
		end--
	}
	first := d.LineStart(span.Start)
	last := d.LineStart(end)
	starts := []int{first}
	for i := first; i < last; i++ {
		if d.buf[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// outdentWidth returns how many runes an outdent strips from the line
// starting at s.
func (d *Document) outdentWidth(s int) int {
	if s < len(d.buf) && d.buf[s] == '\t' {
		return 1
	}
	limit := utf8.RuneCountInString(d.indent)
	k := 0
	for k < limit && s+k < len(d.buf) && d.buf[s+k] == ' ' {
		k++
	}
	return k
}

// shiftInsert adjusts p for n runes inserted at s. Selection endpoints
// sitting exactly at s stay put; a bare caret moves with the text.
func shiftInsert(p, s, n int, inclusive bool) int {
	if p > s || (inclusive && p == s) {
		return p + n
	}
	return p
}

// shiftRemove adjusts p for k runes removed at s.
func shiftRemove(p, s, k int) int {
	switch {
	case p >= s+k:
		return p - k
	case p > s:
		return s
	default:
		return p
	}
}
