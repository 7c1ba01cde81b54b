package prompt

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestSlidingWindow(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		name       string
		ops        func(w *SlidingWindow[string])
		selected   string
		visible    []string
		visibleSel int
	}{
		{"initial", func(*SlidingWindow[string]) {}, "a", []string{"a", "b", "c"}, 0},
		{"next inside view", func(w *SlidingWindow[string]) { w.Next(); w.Next() }, "c", []string{"a", "b", "c"}, 2},
		{"next slides view", func(w *SlidingWindow[string]) { w.Move(3) }, "d", []string{"b", "c", "d"}, 2},
		{"previous wraps", func(w *SlidingWindow[string]) { w.Previous() }, "e", []string{"c", "d", "e"}, 2},
		{"next wraps", func(w *SlidingWindow[string]) { w.Select(4); w.Next() }, "a", []string{"a", "b", "c"}, 0},
		{"move clamps", func(w *SlidingWindow[string]) { w.Move(10) }, "e", []string{"c", "d", "e"}, 2},
		{"move back keeps view until leaving", func(w *SlidingWindow[string]) { w.Select(4); w.Move(-2) }, "c", []string{"c", "d", "e"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewSlidingWindow(items, 3)
			tt.ops(w)
			if got, _ := w.Selected(); got != tt.selected {
				t.Errorf("Selected() = %q, want %q", got, tt.selected)
			}
			if got := w.Visible(); !slices.Equal(got, tt.visible) {
				t.Errorf("Visible() = %q, want %q", got, tt.visible)
			}
			if got := w.VisibleSelected(); got != tt.visibleSel {
				t.Errorf("VisibleSelected() = %d, want %d", got, tt.visibleSel)
			}
		})
	}
}

func TestSlidingWindowEmpty(t *testing.T) {
	w := NewSlidingWindow[int](nil, 0)
	w.Next()
	w.Previous()
	w.Move(2)
	if _, ok := w.Selected(); ok {
		t.Error("empty window has a selection")
	}
	if w.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1", w.Capacity())
	}
	w.Reset([]int{7, 8})
	if got, ok := w.Selected(); !ok || got != 7 {
		t.Errorf("Selected() after Reset = %d, %v", got, ok)
	}
}

func TestLazyComputesOnce(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	l := NewLazy(func(context.Context) (int, error) {
		calls++
		return 42, boom
	})
	for range 3 {
		v, err := l.Get(context.Background())
		if v != 42 || !errors.Is(err, boom) {
			t.Fatalf("Get() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("computed %d times, want 1", calls)
	}

	v, err := LazyValue("ready").Get(context.Background())
	if v != "ready" || err != nil {
		t.Errorf("LazyValue Get() = %q, %v", v, err)
	}
}
