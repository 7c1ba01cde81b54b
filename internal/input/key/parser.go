package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Press.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+Enter", "Ctrl+Shift+Left"
//   - Vim-style: "<C-s>", "<S-CR>", "<Esc>"
func Parse(spec string) (Press, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Press{}, ErrEmptySpec
	}

	sep := "+"
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		spec = spec[1 : len(spec)-1]
		sep = "-"
	}

	parts := strings.Split(spec, sep)
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		// "Ctrl++" names the '+' key itself.
		parts = append(parts[:len(parts)-2], sep)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Press{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(name string, mods Modifier) (Press, error) {
	switch strings.ToLower(name) {
	case "space":
		return NewRune(' ', mods), nil
	case "lt":
		return NewRune('<', mods), nil
	case "gt":
		return NewRune('>', mods), nil
	}
	if k := KeyFromName(name); k != KeyNone {
		return NewSpecial(k, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Press{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	r := runes[0]
	switch {
	case mods.HasCtrl():
		// For Ctrl combinations, use lowercase
		r = unicode.ToLower(r)
	case unicode.IsUpper(r):
		// Uppercase letters have implicit Shift
		mods = mods.With(ModShift)
	}
	return NewRune(r, mods), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code and tests.
func MustParse(spec string) Press {
	p, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return p
}

// MustParseAll parses several specifications.
func MustParseAll(specs ...string) []Press {
	out := make([]Press, len(specs))
	for i, s := range specs {
		out[i] = MustParse(s)
	}
	return out
}
