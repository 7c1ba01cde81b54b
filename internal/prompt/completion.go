package prompt

import (
	"slices"

	"github.com/dshills/promptline/internal/engine/document"
	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/input/fuzzy"
	"github.com/dshills/promptline/internal/input/key"
)

// completionPane owns the completion list.
//
// The list opens when a word character starts a new word, or on
// Ctrl+Space, and stays open while the word being typed matches at least
// one item. Items starting with the word are listed first.
//
// Escape or acceptance closes the list. So does a word that matches
// nothing, or a caret that leaves the word.
type completionPane struct {
	open   bool
	forced bool

	// start is the offset of the word being completed.
	start int

	all    []CompletionItem
	window *SlidingWindow[CompletionItem]

	// consumed is set when the key-down pass acted on the press.
	consumed  bool
	requested bool
}

func newCompletionPane() *completionPane {
	return &completionPane{}
}

// Open reports whether the list is visible.
func (c *completionPane) Open() bool {
	return c.open
}

func (c *completionPane) keyDown(s *session, p *key.Press) {
	c.consumed = false
	if p.Handled || s.opts.Completion == nil {
		return
	}

	if !c.open {
		if p.Is(key.KeyRune, key.ModCtrl) && p.Rune == ' ' {
			c.requested = true
			c.consumed = true
			p.Handled = true
		}
		return
	}

	switch {
	case p.Is(key.KeyUp, key.ModNone):
		c.window.Previous()
	case p.Is(key.KeyDown, key.ModNone):
		c.window.Next()
	case p.Is(key.KeyPageUp, key.ModNone):
		c.window.Move(-c.window.Capacity())
	case p.Is(key.KeyPageDown, key.ModNone):
		c.window.Move(c.window.Capacity())
	case p.Is(key.KeyEnter, key.ModNone), p.Is(key.KeyTab, key.ModNone):
		c.accept(s)
	case p.Is(key.KeyEscape, key.ModNone):
		c.close()
	default:
		return
	}
	c.consumed = true
	p.Handled = true
}

func (c *completionPane) keyUp(s *session, p *key.Press) {
	if s.opts.Completion == nil || s.submit {
		return
	}
	if c.requested {
		c.requested = false
		c.begin(s, true)
		return
	}
	if c.consumed {
		return
	}

	if c.open {
		c.update(s)
		return
	}
	if p.IsChar() && document.IsWordRune(p.Rune) {
		if span := s.doc.WordSpanAtCaret(); span.Length == 1 {
			c.begin(s, false)
		}
	}
}

// begin fetches completions for the word at the caret.
func (c *completionPane) begin(s *session, forced bool) {
	if _, ok := s.doc.Selection(); ok {
		return
	}
	span := s.doc.WordSpanAtCaret()
	items, err := s.opts.Completion(s.ctx, s.doc.Text(), s.doc.Caret(), span)
	if err != nil {
		s.logger.Warn("completion failed: %v", err)
		c.close()
		return
	}
	c.open = true
	c.forced = forced
	c.start = span.Start
	c.all = items
	room := s.height - (s.layout.Cursor.Row + 1) - 2
	c.window = NewSlidingWindow[CompletionItem](nil, min(s.opts.CompletionRows, max(room, 1)))
	c.update(s)
}

// update refilters the list for the word now at the caret, or closes it
// when the caret has left the word.
func (c *completionPane) update(s *session) {
	span := s.doc.WordSpanAtCaret()
	_, selecting := s.doc.Selection()
	if selecting || span.Start != c.start || (span.IsEmpty() && !c.forced) {
		c.close()
		return
	}

	var selected string
	if it, ok := c.window.Selected(); ok {
		selected = it.filter()
	}

	matches := fuzzy.Filter(s.doc.Slice(span), c.all, CompletionItem.filter)
	keep := max(slices.IndexFunc(matches, func(it CompletionItem) bool {
		return it.filter() == selected
	}), 0)
	if len(matches) == 0 {
		c.close()
		return
	}
	c.window.Reset(matches)
	c.window.Select(keep)
}

func (c *completionPane) accept(s *session) {
	it, ok := c.window.Selected()
	c.close()
	if !ok {
		return
	}
	s.doc.Replace(text.SpanFromBounds(c.start, s.doc.Caret()), it.ReplacementText)
}

func (c *completionPane) close() {
	c.open = false
	c.forced = false
	c.all = nil
	c.window = nil
}

// selected returns the highlighted item while the list is open.
func (c *completionPane) selected() (CompletionItem, bool) {
	if !c.open || c.window == nil {
		return CompletionItem{}, false
	}
	return c.window.Selected()
}
