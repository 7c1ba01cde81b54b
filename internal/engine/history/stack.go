package history

// DefaultMaxEntries is used when New is given a non-positive bound.
const DefaultMaxEntries = 1000

// History manages undo/redo snapshots for a document.
// It is not safe for concurrent use; a document and its history belong to
// the goroutine running the read.
type History struct {
	entries []Snapshot
	current int

	// Configuration
	maxEntries int
}

// New creates a history whose first entry is the initial document state.
func New(initial Snapshot, maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		entries:    []Snapshot{initial.Clone()},
		maxEntries: maxEntries,
	}
}

// Track records the state of the document after an edit.
// Returns true if a new entry was added.
func (h *History) Track(s Snapshot) bool {
	if h.entries[h.current].Text == s.Text {
		// Same text: only the caret/selection moved.
		h.entries[h.current] = s.Clone()
		return false
	}

	// Discard redo entries
	h.entries = h.entries[:h.current+1]
	h.entries = append(h.entries, s.Clone())
	h.current++

	// Enforce max entries
	if excess := len(h.entries) - h.maxEntries; excess > 0 {
		h.entries = h.entries[excess:]
		h.current -= excess
	}
	return true
}

// Sync refreshes the caret and selection of the current entry without
// touching the text. It is used right before an undo so that a later redo
// lands the caret where the user left it.
func (h *History) Sync(caret int, sel *Selection) {
	cur := h.entries[h.current]
	cur.Caret = caret
	cur.Selection = sel
	h.entries[h.current] = cur.Clone()
}

// Undo moves the cursor back one entry and returns that snapshot.
// Returns false when there is nothing to undo.
func (h *History) Undo() (Snapshot, bool) {
	if h.current == 0 {
		return Snapshot{}, false
	}
	h.current--
	return h.entries[h.current].Clone(), true
}

// Redo moves the cursor forward one entry and returns that snapshot.
// Returns false when there is nothing to redo.
func (h *History) Redo() (Snapshot, bool) {
	if h.current >= len(h.entries)-1 {
		return Snapshot{}, false
	}
	h.current++
	return h.entries[h.current].Clone(), true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.current < len(h.entries)-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Current returns the snapshot under the cursor.
func (h *History) Current() Snapshot {
	return h.entries[h.current].Clone()
}

// Reset drops every entry and starts over from s.
func (h *History) Reset(s Snapshot) {
	h.entries = []Snapshot{s.Clone()}
	h.current = 0
}

// MaxEntries returns the maximum number of snapshots kept.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
