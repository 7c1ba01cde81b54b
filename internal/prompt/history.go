package prompt

import (
	"github.com/dshills/promptline/internal/input/key"
)

// historyPane recalls earlier entries with Up and Down once the caret
// cannot move further in that direction.
type historyPane struct {
	// draft is the text being edited when navigation began.
	draft string

	// shown is the text of the recalled entry.
	shown string
}

func newHistoryPane() *historyPane {
	return &historyPane{}
}

func (h *historyPane) keyDown(s *session, p *key.Press) {
	log := s.opts.History
	if p.Handled || log == nil {
		return
	}

	switch {
	case p.Is(key.KeyUp, key.ModNone):
		if !log.Navigating() {
			h.draft = s.doc.Text()
		}
		entry, ok := log.Previous(h.prefix(s))
		if !ok {
			return
		}
		h.show(s, entry)
	case p.Is(key.KeyDown, key.ModNone):
		if !log.Navigating() {
			return
		}
		entry, ok := log.Next(h.prefix(s))
		if !ok {
			entry = h.draft
		}
		h.show(s, entry)
	default:
		return
	}
	p.Handled = true
}

func (h *historyPane) keyUp(s *session, _ *key.Press) {
	log := s.opts.History
	if log != nil && log.Navigating() && s.doc.Text() != h.shown {
		// Editing a recalled entry ends navigation.
		log.Reset()
	}
}

func (h *historyPane) show(s *session, entry string) {
	s.doc.SetText(entry)
	h.shown = entry
}

func (h *historyPane) prefix(s *session) string {
	if s.opts.HistoryPrefixFilter {
		return h.draft
	}
	return ""
}
