package fuzzy

import (
	"slices"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		query, text string
		ok          bool
		prefix      bool
		positions   []int
	}{
		{"sel", "select", true, true, []int{0, 1, 2}},
		{"SEL", "select", true, true, []int{0, 1, 2}},
		{"slc", "select", true, false, []int{0, 2, 4}},
		{"ts", "select", false, false, nil},
		{"", "select", true, true, nil},
		{"é", "Été", true, true, []int{0}},
		{"selects", "select", false, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.text, func(t *testing.T) {
			r, ok := Match(tt.query, tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if r.Prefix != tt.prefix {
				t.Errorf("Prefix = %v, want %v", r.Prefix, tt.prefix)
			}
			if !slices.Equal(r.Positions, tt.positions) {
				t.Errorf("Positions = %v, want %v", r.Positions, tt.positions)
			}
		})
	}
}

func TestScoreOrdering(t *testing.T) {
	better := func(query, a, b string) {
		t.Helper()
		ra, _ := Match(query, a)
		rb, _ := Match(query, b)
		if ra.Score <= rb.Score {
			t.Errorf("%q: score(%q) = %d, not above score(%q) = %d", query, a, ra.Score, b, rb.Score)
		}
	}
	better("ord", "orders", "on_record")
	better("ui", "userId", "quit")
	better("ab", "ab", "a_long_tail_b")
	better("sel", "select", "selection_of_things")
}

func TestScoreMinimum(t *testing.T) {
	w := DefaultWeights()
	w.Base = 0
	w.Skip = 100
	r, ok := w.Match("z", "aaaaaaaaaz")
	if !ok {
		t.Fatal("no match")
	}
	if r.Score != 1 {
		t.Errorf("Score = %d, want 1", r.Score)
	}
}

func TestFilter(t *testing.T) {
	items := []string{"quiet", "lazy", "equip", "quick", "unique"}
	id := func(s string) string { return s }

	tests := []struct {
		query string
		want  []string
	}{
		{"", items},
		{"qu", []string{"quiet", "quick", "equip", "unique"}},
		{"QUI", []string{"quiet", "quick", "equip"}},
		{"zz", []string{}},
		{"lz", []string{"lazy"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(tt.query, items, id)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestIsWordBoundary(t *testing.T) {
	runes := []rune("get_userId x")
	tests := []struct {
		idx  int
		want bool
	}{
		{0, true},
		{1, false},
		{4, true},
		{8, true},
		{9, false},
		{11, true},
		{12, false},
	}
	for _, tt := range tests {
		if got := isWordBoundary(runes, tt.idx); got != tt.want {
			t.Errorf("isWordBoundary(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
}
