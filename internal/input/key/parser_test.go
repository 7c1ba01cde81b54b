package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Press
	}{
		{"a", NewRune('a', ModNone)},
		{"A", NewRune('A', ModShift)},
		{"Enter", NewSpecial(KeyEnter, ModNone)},
		{"esc", NewSpecial(KeyEscape, ModNone)},
		{"Space", NewRune(' ', ModNone)},
		{"Ctrl+S", NewRune('s', ModCtrl)},
		{"Ctrl+Space", NewRune(' ', ModCtrl)},
		{"Shift+Enter", NewSpecial(KeyEnter, ModShift)},
		{"Ctrl+Shift+Left", NewSpecial(KeyLeft, ModCtrl|ModShift)},
		{"Ctrl++", NewRune('+', ModCtrl)},
		{"F12", NewSpecial(KeyF12, ModNone)},
		{"<C-s>", NewRune('s', ModCtrl)},
		{"<S-CR>", NewSpecial(KeyEnter, ModShift)},
		{"<Esc>", NewSpecial(KeyEscape, ModNone)},
		{"<lt>", NewRune('<', ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"Ctrl+Nope", ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on an invalid spec")
		}
	}()
	MustParse("Hyper+x")
}

func TestPressString(t *testing.T) {
	tests := []struct {
		press Press
		want  string
	}{
		{NewRune('a', ModNone), "a"},
		{NewRune('A', ModShift), "A"},
		{NewRune(' ', ModCtrl), "Ctrl+Space"},
		{NewSpecial(KeyEnter, ModShift), "Shift+Enter"},
		{NewSpecial(KeyLeft, ModCtrl|ModShift), "Ctrl+Shift+Left"},
		{NewPaste("x"), `Paste("x")`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.press.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPressPredicates(t *testing.T) {
	if !NewRune('A', ModShift).IsChar() {
		t.Error("shifted letter should be a char")
	}
	if NewRune('a', ModCtrl).IsChar() {
		t.Error("Ctrl+a should not be a char")
	}
	if !NewRune('G', ModCtrl).IsCtrl('g') {
		t.Error("IsCtrl should ignore case")
	}
	if NewSpecial(KeyEnter, ModShift).Is(KeyEnter, ModNone) {
		t.Error("Is should compare modifiers exactly")
	}
}

func TestType(t *testing.T) {
	got := Type("a\tb\n")
	want := []Press{
		NewRune('a', ModNone),
		NewSpecial(KeyTab, ModNone),
		NewRune('b', ModNone),
		NewSpecial(KeyEnter, ModNone),
	}
	if len(got) != len(want) {
		t.Fatalf("Type() = %v", got)
	}
	for i := range got {
		if !got[i].Equals(want[i]) {
			t.Errorf("Type()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
