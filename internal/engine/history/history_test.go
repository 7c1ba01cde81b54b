package history

import "testing"

func snap(text string, caret int) Snapshot {
	return Snapshot{Text: text, Caret: caret}
}

func TestHistoryUndoRedo(t *testing.T) {
	h := New(snap("", 0), 0)
	h.Track(snap("a", 1))
	h.Track(snap("ab", 2))

	if !h.CanUndo() || h.CanRedo() {
		t.Fatal("expected undo only")
	}

	s, ok := h.Undo()
	if !ok || s.Text != "a" || s.Caret != 1 {
		t.Fatalf("Undo() = %+v, %v", s, ok)
	}
	s, ok = h.Redo()
	if !ok || s.Text != "ab" || s.Caret != 2 {
		t.Fatalf("Redo() = %+v, %v", s, ok)
	}
}

func TestHistoryBoundariesAreNoOps(t *testing.T) {
	h := New(snap("", 0), 0)
	if _, ok := h.Undo(); ok {
		t.Error("Undo on fresh history should report false")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo on fresh history should report false")
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistoryIdenticalTextCoalesces(t *testing.T) {
	h := New(snap("", 0), 0)
	h.Track(snap("abc", 3))
	if added := h.Track(snap("abc", 1)); added {
		t.Error("identical text must not add an entry")
	}
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if c := h.Current(); c.Caret != 1 {
		t.Errorf("caret not refreshed: %d", c.Caret)
	}
}

func TestHistoryTrackDiscardsRedo(t *testing.T) {
	h := New(snap("", 0), 0)
	h.Track(snap("a", 1))
	h.Track(snap("ab", 2))
	h.Undo()
	h.Track(snap("ax", 2))

	if h.CanRedo() {
		t.Error("redo branch should be discarded")
	}
	s, _ := h.Undo()
	if s.Text != "a" {
		t.Errorf("Undo() text = %q, want %q", s.Text, "a")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	h := New(snap("", 0), 3)
	for _, txt := range []string{"a", "ab", "abc", "abcd"} {
		h.Track(snap(txt, len(txt)))
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	h.Undo()
	s, ok := h.Undo()
	if !ok || s.Text != "ab" {
		t.Errorf("oldest reachable = %q, %v", s.Text, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Error("should not undo past the bound")
	}
}

func TestHistorySyncKeepsSelection(t *testing.T) {
	h := New(snap("", 0), 0)
	h.Track(snap("hello", 5))
	h.Sync(2, &Selection{Anchor: 0, Active: 2})
	h.Undo()
	s, _ := h.Redo()
	if s.Caret != 2 || s.Selection == nil || s.Selection.Span().Length != 2 {
		t.Errorf("Redo() = %+v", s)
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	s := Snapshot{Text: "x", Selection: &Selection{Anchor: 1, Active: 2}}
	c := s.Clone()
	s.Selection.Anchor = 9
	if c.Selection.Anchor != 1 {
		t.Error("clone shares selection")
	}
}
