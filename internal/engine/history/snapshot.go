package history

import "github.com/dshills/promptline/internal/engine/text"

// Snapshot is the state of a document after an edit.
type Snapshot struct {
	Text      string
	Caret     int
	Selection *Selection
}

// Selection is the anchor/active pair of a document selection.
type Selection struct {
	Anchor int
	Active int
}

// Span returns the selected range.
func (s Selection) Span() text.Span {
	return text.SpanFromBounds(s.Anchor, s.Active)
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s.Selection != nil {
		sel := *s.Selection
		s.Selection = &sel
	}
	return s
}
