package prompt

// SlidingWindow is a fixed-capacity view over items with a selected
// index. Moving the selection slides the view only when the selection
// would leave it.
type SlidingWindow[T any] struct {
	items    []T
	capacity int
	selected int
	offset   int
}

// NewSlidingWindow creates a window showing up to capacity items with the
// first item selected.
func NewSlidingWindow[T any](items []T, capacity int) *SlidingWindow[T] {
	return &SlidingWindow[T]{items: items, capacity: max(capacity, 1)}
}

// Len returns the number of items.
func (w *SlidingWindow[T]) Len() int { return len(w.items) }

// Capacity returns the maximum number of visible items.
func (w *SlidingWindow[T]) Capacity() int { return w.capacity }

// Items returns all items.
func (w *SlidingWindow[T]) Items() []T { return w.items }

// SelectedIndex returns the index of the selected item in Items.
func (w *SlidingWindow[T]) SelectedIndex() int { return w.selected }

// Selected returns the selected item, or false when there are no items.
func (w *SlidingWindow[T]) Selected() (T, bool) {
	if len(w.items) == 0 {
		var zero T
		return zero, false
	}
	return w.items[w.selected], true
}

// Visible returns the items in view.
func (w *SlidingWindow[T]) Visible() []T {
	end := min(w.offset+w.capacity, len(w.items))
	return w.items[w.offset:end]
}

// VisibleSelected returns the position of the selection within Visible.
func (w *SlidingWindow[T]) VisibleSelected() int {
	return w.selected - w.offset
}

// Offset returns the index of the first visible item.
func (w *SlidingWindow[T]) Offset() int { return w.offset }

// Next selects the following item, wrapping to the first.
func (w *SlidingWindow[T]) Next() {
	if len(w.items) == 0 {
		return
	}
	w.Select((w.selected + 1) % len(w.items))
}

// Previous selects the preceding item, wrapping to the last.
func (w *SlidingWindow[T]) Previous() {
	if len(w.items) == 0 {
		return
	}
	w.Select((w.selected - 1 + len(w.items)) % len(w.items))
}

// Move moves the selection by n items without wrapping.
func (w *SlidingWindow[T]) Move(n int) {
	w.Select(w.selected + n)
}

// Select selects item i, clamped to the valid range.
func (w *SlidingWindow[T]) Select(i int) {
	if len(w.items) == 0 {
		w.selected, w.offset = 0, 0
		return
	}
	w.selected = min(max(i, 0), len(w.items)-1)
	switch {
	case w.selected < w.offset:
		w.offset = w.selected
	case w.selected >= w.offset+w.capacity:
		w.offset = w.selected - w.capacity + 1
	}
}

// Reset replaces the items and selects the first.
func (w *SlidingWindow[T]) Reset(items []T) {
	w.items = items
	w.selected, w.offset = 0, 0
}
