package key

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	esc        = 0x1b
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"
)

// Decoder turns terminal input bytes into key presses. It keeps
// incomplete input, such as a bracketed paste split across reads, until
// the rest arrives.
type Decoder struct {
	pending []byte
	paste   *strings.Builder
}

// Decode appends data to any pending input and returns the presses it
// completes. A lone trailing ESC is reported as the Escape key.
func (d *Decoder) Decode(data []byte) []Press {
	buf := append(d.pending, data...)
	d.pending = nil

	var out []Press
	for len(buf) > 0 {
		if d.paste != nil {
			end := bytes.Index(buf, []byte(pasteEnd))
			if end < 0 {
				keep := partialSuffix(buf, pasteEnd)
				d.paste.Write(buf[:len(buf)-keep])
				d.pending = append(d.pending, buf[len(buf)-keep:]...)
				return out
			}
			d.paste.Write(buf[:end])
			out = append(out, NewPaste(d.paste.String()))
			d.paste = nil
			buf = buf[end+len(pasteEnd):]
			continue
		}

		if bytes.HasPrefix(buf, []byte(pasteStart)) {
			d.paste = &strings.Builder{}
			buf = buf[len(pasteStart):]
			continue
		}
		if len(buf) < len(pasteStart) && bytes.HasPrefix([]byte(pasteStart), buf) && len(buf) > 2 {
			d.pending = append(d.pending, buf...)
			return out
		}

		p, n := decodeOne(buf)
		if n == 0 {
			d.pending = append(d.pending, buf...)
			return out
		}
		if p.Key != KeyNone {
			out = append(out, p)
		}
		buf = buf[n:]
	}
	return out
}

// partialSuffix returns the length of the longest suffix of buf that is
// a proper prefix of marker.
func partialSuffix(buf []byte, marker string) int {
	for n := min(len(marker)-1, len(buf)); n > 0; n-- {
		if bytes.HasSuffix(buf, []byte(marker[:n])) {
			return n
		}
	}
	return 0
}

// decodeOne decodes the press at the start of buf and returns the number
// of bytes consumed, or 0 if buf holds an incomplete UTF-8 sequence.
func decodeOne(buf []byte) (Press, int) {
	b := buf[0]
	switch {
	case b == esc:
		return decodeEscape(buf)
	case b == '\r':
		return NewSpecial(KeyEnter, ModNone), 1
	case b == '\n':
		return NewSpecial(KeyEnter, ModCtrl), 1
	case b == '\t':
		return NewSpecial(KeyTab, ModNone), 1
	case b == 0x7f:
		return NewSpecial(KeyBackspace, ModNone), 1
	case b == 0x08:
		return NewSpecial(KeyBackspace, ModCtrl), 1
	case b == 0x00:
		return NewRune(' ', ModCtrl), 1
	case b < 0x1b:
		return NewRune(rune('a'+b-1), ModCtrl), 1
	case b < 0x20:
		return NewRune(rune('4'+b-0x1c), ModCtrl), 1
	}

	if !utf8.FullRune(buf) {
		return Press{}, 0
	}
	r, n := utf8.DecodeRune(buf)
	return NewRune(r, ModNone), n
}

func decodeEscape(buf []byte) (Press, int) {
	if len(buf) == 1 {
		return NewSpecial(KeyEscape, ModNone), 1
	}
	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return NewSpecial(KeyEscape, ModNone), 1
		}
		if k, ok := ss3Keys[buf[2]]; ok {
			return NewSpecial(k, ModNone), 3
		}
		return Press{}, 3
	case esc:
		return NewSpecial(KeyEscape, ModNone), 1
	}

	// ESC followed by a key is that key with Alt.
	p, n := decodeOne(buf[1:])
	if n == 0 {
		return Press{}, 0
	}
	p.Modifiers = p.Modifiers.With(ModAlt)
	return p, n + 1
}

var ss3Keys = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
}

var csiLetterKeys = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
}

var csiTildeKeys = map[int]Key{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown, 7: KeyHome, 8: KeyEnd,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4,
	15: KeyF5, 17: KeyF6, 18: KeyF7, 19: KeyF8,
	20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

// decodeCSI decodes "ESC [ params final". Unknown sequences are consumed
// and dropped.
func decodeCSI(buf []byte) (Press, int) {
	end := -1
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		// Incomplete: treat the ESC as a key so input never stalls.
		return NewSpecial(KeyEscape, ModNone), 1
	}
	n := end + 1
	final := buf[end]
	params := parseParams(string(buf[2:end]))
	param := func(i int) int {
		if i < len(params) {
			return params[i]
		}
		return 0
	}

	switch final {
	case '~':
		if param(0) == 27 {
			// xterm modifyOtherKeys: ESC [ 27 ; mod ; code ~
			return otherKey(param(2), xtermModifier(param(1))), n
		}
		if k, ok := csiTildeKeys[param(0)]; ok {
			return NewSpecial(k, xtermModifier(param(1))), n
		}
	case 'u':
		// CSI u: ESC [ code ; mod u
		return otherKey(param(0), xtermModifier(param(1))), n
	case 'Z':
		return NewSpecial(KeyTab, ModShift), n
	default:
		if k, ok := csiLetterKeys[final]; ok {
			return NewSpecial(k, xtermModifier(param(1))), n
		}
	}
	return Press{}, n
}

func otherKey(code int, mods Modifier) Press {
	switch code {
	case 13:
		return NewSpecial(KeyEnter, mods)
	case 9:
		return NewSpecial(KeyTab, mods)
	case 27:
		return NewSpecial(KeyEscape, mods)
	case 127:
		return NewSpecial(KeyBackspace, mods)
	case 0:
		return Press{}
	}
	return NewRune(rune(code), mods)
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ";")
	out := make([]int, len(fields))
	for i, f := range fields {
		out[i], _ = strconv.Atoi(f)
	}
	return out
}
