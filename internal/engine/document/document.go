package document

import (
	"strings"

	"github.com/dshills/promptline/internal/engine/history"
	"github.com/dshills/promptline/internal/engine/text"
)

// DefaultIndent is the indent string used when Options leaves it empty.
const DefaultIndent = "    "

// Selection is an anchor/active pair. The anchor is the fixed end, the
// active end moves with the caret.
type Selection = history.Selection

// Options configures a Document.
type Options struct {
	// Indent is inserted by Indent and determines how much leading
	// whitespace an outdent may strip.
	Indent string

	// MaxUndo bounds the number of undo snapshots.
	MaxUndo int
}

// Document is the editable text of a single read operation.
// It is not safe for concurrent use.
type Document struct {
	buf   []rune
	text  string
	caret int
	sel   *Selection

	undo   *history.History
	indent string

	batchDepth int
	pending    bool
	synced     bool

	listeners []func()
}

// New creates an empty document.
func New(opts Options) *Document {
	return NewFromString("", opts)
}

// NewFromString creates a document holding s with the caret at the end.
func NewFromString(s string, opts Options) *Document {
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	d := &Document{
		buf:    []rune(s),
		indent: indent,
	}
	d.refresh()
	d.caret = len(d.buf)
	d.undo = history.New(d.snapshot(), opts.MaxUndo)
	return d
}

// Text returns the document contents.
func (d *Document) Text() string {
	return d.text
}

// Len returns the length of the document in runes.
func (d *Document) Len() int {
	return len(d.buf)
}

// Runes returns the underlying buffer. Callers must not modify it and
// must not retain it across edits.
func (d *Document) Runes() []rune {
	return d.buf
}

// RuneAt returns the rune at offset i, or 0 if i is out of range.
func (d *Document) RuneAt(i int) rune {
	if i < 0 || i >= len(d.buf) {
		return 0
	}
	return d.buf[i]
}

// Slice returns the text covered by span, clamped to the buffer.
func (d *Document) Slice(span text.Span) string {
	span = span.Clamp(len(d.buf))
	return string(d.buf[span.Start:span.End()])
}

// IndentString returns the configured indent string.
func (d *Document) IndentString() string {
	return d.indent
}

// Caret returns the caret offset.
func (d *Document) Caret() int {
	return d.caret
}

// SetCaret moves the caret, clamping it to the buffer. The selection is
// left untouched.
func (d *Document) SetCaret(offset int) {
	d.caret = d.clamp(offset)
}

// Selection returns the current selection, if any.
func (d *Document) Selection() (Selection, bool) {
	if d.sel == nil {
		return Selection{}, false
	}
	return *d.sel, true
}

// SelectionSpan returns the selected range, if any.
func (d *Document) SelectionSpan() (text.Span, bool) {
	if d.sel == nil {
		return text.Span{}, false
	}
	return d.sel.Span(), true
}

// Select sets the selection and moves the caret to its active end.
// An empty selection clears it.
func (d *Document) Select(anchor, active int) {
	anchor, active = d.clamp(anchor), d.clamp(active)
	d.caret = active
	if anchor == active {
		d.sel = nil
		return
	}
	d.sel = &Selection{Anchor: anchor, Active: active}
}

// ExtendSelection moves the active end of the selection to offset,
// starting a selection at the caret if there is none.
func (d *Document) ExtendSelection(offset int) {
	anchor := d.caret
	if d.sel != nil {
		anchor = d.sel.Anchor
	}
	d.Select(anchor, offset)
}

// ClearSelection removes the selection without changing the text.
func (d *Document) ClearSelection() {
	d.sel = nil
}

// SelectAll selects the whole document.
func (d *Document) SelectAll() {
	d.Select(0, len(d.buf))
}

// SelectedText returns the selected text, or "" if nothing is selected.
func (d *Document) SelectedText() string {
	if d.sel == nil {
		return ""
	}
	return d.Slice(d.sel.Span())
}

// OnChange registers fn to be called after every committed change to the
// text, including undo and redo.
func (d *Document) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// LineStart returns the offset of the first character of the line that
// contains offset.
func (d *Document) LineStart(offset int) int {
	offset = d.clamp(offset)
	for i := offset - 1; i >= 0; i-- {
		if d.buf[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// LineEnd returns the offset of the newline ending the line that contains
// offset, or the document length for the last line.
func (d *Document) LineEnd(offset int) int {
	for i := d.clamp(offset); i < len(d.buf); i++ {
		if d.buf[i] == '\n' {
			return i
		}
	}
	return len(d.buf)
}

// LineIndex returns the zero-based logical line containing offset.
func (d *Document) LineIndex(offset int) int {
	offset = d.clamp(offset)
	n := 0
	for _, r := range d.buf[:offset] {
		if r == '\n' {
			n++
		}
	}
	return n
}

// LineCount returns the number of logical lines.
func (d *Document) LineCount() int {
	return strings.Count(d.text, "\n") + 1
}

// CaretOnFirstLine returns true if no newline precedes the caret.
func (d *Document) CaretOnFirstLine() bool {
	return d.LineStart(d.caret) == 0
}

// CaretOnLastLine returns true if no newline follows the caret.
func (d *Document) CaretOnLastLine() bool {
	return d.LineEnd(d.caret) == len(d.buf)
}

func (d *Document) clamp(offset int) int {
	return min(max(offset, 0), len(d.buf))
}

// refresh rebuilds the cached string projection. It runs after every
// buffer mutation, including the ones inside a batch.
func (d *Document) refresh() {
	d.text = string(d.buf)
}

func (d *Document) snapshot() history.Snapshot {
	s := history.Snapshot{Text: d.text, Caret: d.caret}
	if d.sel != nil {
		sel := *d.sel
		s.Selection = &sel
	}
	return s
}

// commit records an undo snapshot and notifies listeners, or defers both
// to the end of the outermost batch.
func (d *Document) commit() {
	if d.batchDepth > 0 {
		d.pending = true
		return
	}
	d.pending = false
	d.synced = false
	if d.undo.Track(d.snapshot()) {
		d.notify()
	}
}

func (d *Document) notify() {
	for _, fn := range d.listeners {
		fn()
	}
}

// restore replaces the buffer and caret state from a snapshot.
func (d *Document) restore(s history.Snapshot) {
	d.buf = []rune(s.Text)
	d.refresh()
	d.synced = false
	d.caret = d.clamp(s.Caret)
	d.sel = nil
	if s.Selection != nil {
		d.Select(s.Selection.Anchor, s.Selection.Active)
		d.caret = d.clamp(s.Caret)
	}
	d.notify()
}
