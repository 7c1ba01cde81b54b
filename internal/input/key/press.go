package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Press is a single key press travelling through the prompt's handlers.
type Press struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune presses.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Text is the pasted text of a KeyPaste press.
	Text string

	// Handled is set by the first handler that acts on the press. Later
	// handlers still see the press and decide for themselves whether to
	// skip it.
	Handled bool
}

// NewRune creates a press for a character.
func NewRune(r rune, mods Modifier) Press {
	return Press{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecial creates a press for a special key.
func NewSpecial(k Key, mods Modifier) Press {
	return Press{Key: k, Modifiers: mods}
}

// NewPaste creates a paste press.
func NewPaste(text string) Press {
	return Press{Key: KeyPaste, Text: text}
}

// Type returns one press per rune of s, with newlines typed as Enter.
func Type(s string) []Press {
	presses := make([]Press, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			presses = append(presses, NewSpecial(KeyEnter, ModNone))
		case '\t':
			presses = append(presses, NewSpecial(KeyTab, ModNone))
		default:
			presses = append(presses, NewRune(r, ModNone))
		}
	}
	return presses
}

// IsRune returns true if this is a character key press.
func (p Press) IsRune() bool {
	return p.Key == KeyRune && p.Rune != 0
}

// IsChar returns true if this is a printable character typed without
// Ctrl, Alt or Meta.
func (p Press) IsChar() bool {
	return p.IsRune() && unicode.IsPrint(p.Rune) && !p.IsModified()
}

// IsModified returns true if any modifier is pressed.
// For character presses, Shift alone is not considered modified
// (since Shift changes the character itself).
func (p Press) IsModified() bool {
	if p.IsRune() {
		return p.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return p.Modifiers != ModNone
}

// Is reports whether the press is key k with exactly the modifiers mods.
func (p Press) Is(k Key, mods Modifier) bool {
	return p.Key == k && p.Modifiers == mods
}

// IsCtrl reports whether the press is Ctrl plus the letter r.
func (p Press) IsCtrl(r rune) bool {
	return p.Key == KeyRune && p.Modifiers == ModCtrl && unicode.ToLower(p.Rune) == r
}

// Equals returns true if two presses represent the same key.
// Handled is not compared.
func (p Press) Equals(other Press) bool {
	return p.Key == other.Key && p.Rune == other.Rune &&
		p.Modifiers == other.Modifiers && p.Text == other.Text
}

// String returns a canonical string representation such as "Ctrl+S",
// "a" or "Shift+Enter".
func (p Press) String() string {
	var name string
	switch p.Key {
	case KeyRune:
		if p.Rune == ' ' {
			name = "Space"
		} else {
			name = string(p.Rune)
		}
	case KeyPaste:
		name = fmt.Sprintf("Paste(%q)", p.Text)
	default:
		name = p.Key.String()
	}

	mods := p.Modifiers
	if p.Key == KeyRune {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return strings.Join([]string{mods.String(), name}, "+")
}
