package prompt

import (
	"strings"
	"unicode"

	"github.com/dshills/promptline/internal/engine/document"
	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/input/key"
	"golang.org/x/text/unicode/norm"
)

// codePane edits the document.
type codePane struct {
	// goal is the cell column kept across consecutive Up/Down moves, or
	// -1.
	goal int
}

func newCodePane() *codePane {
	return &codePane{goal: -1}
}

func (c *codePane) keyDown(s *session, p *key.Press) {
	if p.Handled {
		return
	}
	if c.handle(s, p) {
		p.Handled = true
	}
}

func (c *codePane) keyUp(_ *session, p *key.Press) {
	if p.Key != key.KeyUp && p.Key != key.KeyDown {
		c.goal = -1
	}
}

func (c *codePane) handle(s *session, p *key.Press) bool {
	doc := s.doc
	mods := p.Modifiers
	shift := mods.HasShift()
	word := mods.HasCtrl() || mods.HasAlt()

	switch {
	case p.Key == key.KeyPaste:
		doc.InsertAtCaret(normalizePaste(p.Text, s.opts.Indent))
	case p.IsChar():
		doc.InsertAtCaret(string(p.Rune))

	case p.Is(key.KeyEnter, key.ModNone):
		if s.opts.Submit == nil || s.opts.Submit(doc.Text(), doc.Caret()) {
			s.submit = true
			return true
		}
		insertNewline(doc)
	case p.Key == key.KeyEnter:
		insertNewline(doc)

	case p.Key == key.KeyBackspace && word:
		deleteWord(doc, document.Backward)
	case p.Key == key.KeyBackspace:
		doc.Backspace()
	case p.Key == key.KeyDelete && word:
		deleteWord(doc, document.Forward)
	case p.Key == key.KeyDelete:
		doc.DeleteForward()
	case p.IsCtrl('w'):
		deleteWord(doc, document.Backward)
	case p.IsCtrl('d'):
		if doc.Len() == 0 {
			s.eof = true
			return true
		}
		doc.DeleteForward()

	case p.Key == key.KeyLeft, p.Key == key.KeyRight:
		dir := document.Backward
		if p.Key == key.KeyRight {
			dir = document.Forward
		}
		horizontal(doc, dir, word, shift)
	case p.Key == key.KeyHome && mods.HasCtrl():
		moveCaret(doc, 0, shift)
	case p.Key == key.KeyEnd && mods.HasCtrl():
		moveCaret(doc, doc.Len(), shift)
	case p.Key == key.KeyHome:
		moveCaret(doc, doc.LineBoundary(document.Backward, true), shift)
	case p.Key == key.KeyEnd:
		moveCaret(doc, doc.LineBoundary(document.Forward, false), shift)
	case p.Key == key.KeyUp:
		return c.vertical(s, -1, shift)
	case p.Key == key.KeyDown:
		return c.vertical(s, 1, shift)

	case p.Is(key.KeyTab, key.ModNone):
		if span, ok := doc.SelectionSpan(); ok && strings.Contains(doc.Slice(span), "\n") {
			doc.Indent(span, document.Forward)
		} else {
			doc.InsertAtCaret(doc.IndentString())
		}
	case p.Is(key.KeyTab, key.ModShift):
		span, ok := doc.SelectionSpan()
		if !ok {
			span = text.NewSpan(doc.Caret(), 0)
		}
		doc.Indent(span, document.Backward)

	case p.IsCtrl('a'):
		doc.SelectAll()
	case p.IsCtrl('z'):
		doc.Undo()
	case p.IsCtrl('y'), p.Key == key.KeyRune && mods == key.ModCtrl|key.ModShift && unicode.ToLower(p.Rune) == 'z':
		doc.Redo()
	case p.IsCtrl('g'):
		if s.opts.Stream == nil {
			return false
		}
		s.stream = true
	case p.Is(key.KeyEscape, key.ModNone):
		if _, ok := doc.Selection(); !ok {
			return false
		}
		doc.ClearSelection()
	default:
		return false
	}
	return true
}

// vertical moves the caret one wrapped row up or down. It reports false
// when the caret is already on the first or last row, leaving the key to
// the history pane.
func (c *codePane) vertical(s *session, dir int, extend bool) bool {
	cur := s.layout.CoordinateOf(s.doc.Caret())
	row := cur.Row + dir
	if row < 0 || row >= len(s.layout.Lines) {
		return false
	}
	if c.goal < 0 {
		c.goal = cur.Column
	}
	moveCaret(s.doc, s.layout.OffsetOf(text.NewCoordinate(row, c.goal)), extend)
	return true
}

func horizontal(doc *document.Document, dir document.Direction, word, extend bool) {
	if span, ok := doc.SelectionSpan(); ok && !extend {
		if dir < 0 {
			moveCaret(doc, span.Start, false)
		} else {
			moveCaret(doc, span.End(), false)
		}
		return
	}
	var to int
	switch {
	case word:
		to = doc.WordBoundary(dir)
	case dir < 0:
		to = doc.PrevCluster(doc.Caret())
	default:
		to = doc.NextCluster(doc.Caret())
	}
	moveCaret(doc, to, extend)
}

func moveCaret(doc *document.Document, to int, extend bool) {
	if extend {
		doc.ExtendSelection(to)
		return
	}
	doc.ClearSelection()
	doc.SetCaret(to)
}

func deleteWord(doc *document.Document, dir document.Direction) {
	if _, ok := doc.Selection(); ok {
		doc.DeleteSelectedText()
		return
	}
	to := doc.WordBoundary(dir)
	doc.Remove(text.SpanFromBounds(min(to, doc.Caret()), max(to, doc.Caret())))
}

// insertNewline inserts a soft newline followed by the leading
// whitespace of the caret's line.
func insertNewline(doc *document.Document) {
	start := doc.LineStart(doc.Caret())
	end := start
	for end < doc.Caret() {
		if r := doc.RuneAt(end); r != ' ' && r != '\t' {
			break
		}
		end++
	}
	doc.InsertAtCaret("\n" + doc.Slice(text.SpanFromBounds(start, end)))
}

// normalizePaste converts line endings to "\n", expands tabs to indent
// and composes the text to NFC.
func normalizePaste(s, indent string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", indent)
	return norm.NFC.String(s)
}
