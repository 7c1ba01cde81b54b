package document

import (
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// InsertAtCaret inserts s at the caret, replacing the selection if there
// is one, and leaves the caret after the inserted text.
func (d *Document) InsertAtCaret(s string) {
	start, end := d.caret, d.caret
	if d.sel != nil {
		span := d.sel.Span()
		start, end = span.Start, span.End()
	}
	if s == "" && start == end {
		return
	}
	ins := []rune(s)
	d.splice(start, end, ins)
	d.sel = nil
	d.caret = start + len(ins)
	d.commit()
}

// Replace replaces the text covered by span with s and leaves the caret
// after the replacement.
func (d *Document) Replace(span text.Span, s string) {
	span = span.Clamp(len(d.buf))
	ins := []rune(s)
	if span.IsEmpty() && len(ins) == 0 {
		return
	}
	d.splice(span.Start, span.End(), ins)
	d.sel = nil
	d.caret = span.Start + len(ins)
	d.commit()
}

// Remove deletes the text covered by span. A caret inside the removed
// range moves to its start; a caret after it shifts left.
func (d *Document) Remove(span text.Span) {
	span = span.Clamp(len(d.buf))
	if span.IsEmpty() {
		return
	}
	d.splice(span.Start, span.End(), nil)
	switch {
	case d.caret >= span.End():
		d.caret -= span.Length
	case d.caret > span.Start:
		d.caret = span.Start
	}
	d.sel = nil
	d.commit()
}

// DeleteSelectedText removes the selection, if any, and places the caret
// at its start.
func (d *Document) DeleteSelectedText() {
	if d.sel == nil {
		return
	}
	span := d.sel.Span()
	d.Remove(span)
	d.caret = span.Start
}

// Backspace deletes the selection, or the grapheme cluster before the
// caret.
func (d *Document) Backspace() {
	if d.sel != nil {
		d.DeleteSelectedText()
		return
	}
	if d.caret == 0 {
		return
	}
	d.Remove(text.SpanFromBounds(d.PrevCluster(d.caret), d.caret))
}

// DeleteForward deletes the selection, or the grapheme cluster after the
// caret.
func (d *Document) DeleteForward() {
	if d.sel != nil {
		d.DeleteSelectedText()
		return
	}
	if d.caret >= len(d.buf) {
		return
	}
	d.Remove(text.SpanFromBounds(d.caret, d.NextCluster(d.caret)))
}

// SetText replaces the whole document as a single undoable edit and puts
// the caret at the end.
func (d *Document) SetText(s string) {
	if s == d.text {
		d.sel = nil
		d.caret = len(d.buf)
		return
	}
	d.splice(0, len(d.buf), []rune(s))
	d.sel = nil
	d.caret = len(d.buf)
	d.commit()
}

// Reset replaces the document and discards the undo history.
func (d *Document) Reset(s string) {
	d.buf = []rune(s)
	d.refresh()
	d.sel = nil
	d.caret = len(d.buf)
	d.pending = false
	d.synced = false
	d.undo.Reset(d.snapshot())
	d.notify()
}

// Undo reverts the most recent edit. It returns false if there is nothing
// to undo.
func (d *Document) Undo() bool {
	d.undo.Sync(d.caret, d.sel)
	s, ok := d.undo.Undo()
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// Redo reapplies the most recently undone edit. It returns false if there
// is nothing to redo.
func (d *Document) Redo() bool {
	s, ok := d.undo.Redo()
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// CanUndo reports whether Undo would change the document.
func (d *Document) CanUndo() bool { return d.undo.CanUndo() }

// CanRedo reports whether Redo would change the document.
func (d *Document) CanRedo() bool { return d.undo.CanRedo() }

// PrevCluster returns the offset of the grapheme cluster that ends at
// offset.
func (d *Document) PrevCluster(offset int) int {
	offset = d.clamp(offset)
	if offset == 0 {
		return 0
	}
	if d.buf[offset-1] == '\n' {
		return offset - 1
	}
	start := d.LineStart(offset)
	prev := start
	for i := range text.Graphemes(string(d.buf[start:offset])) {
		prev = start + i
	}
	return prev
}

// NextCluster returns the offset just past the grapheme cluster that
// starts at offset.
func (d *Document) NextCluster(offset int) int {
	offset = d.clamp(offset)
	if offset >= len(d.buf) {
		return offset
	}
	if d.buf[offset] == '\n' {
		return offset + 1
	}
	for _, cluster := range text.Graphemes(string(d.buf[offset:d.LineEnd(offset)])) {
		return offset + utf8.RuneCountInString(cluster)
	}
	return offset + 1
}

// splice replaces buf[start:end] with ins and refreshes the cached text.
// The first splice after a commit stores the pre-edit caret and selection
// in the current undo entry.
func (d *Document) splice(start, end int, ins []rune) {
	if !d.synced {
		d.undo.Sync(d.caret, d.sel)
		d.synced = true
	}
	tail := d.buf[end:]
	buf := make([]rune, 0, start+len(ins)+len(tail))
	buf = append(buf, d.buf[:start]...)
	buf = append(buf, ins...)
	buf = append(buf, tail...)
	d.buf = buf
	d.refresh()
}
