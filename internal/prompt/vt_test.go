package prompt

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// wideTail marks the second column of a wide glyph.
const wideTail = "\x00"

// vt is a minimal terminal for tests. It understands the output the
// prompt produces: printable text, CR, LF (as CR LF), relative cursor
// moves, erase below, erase screen and SGR (ignored).
type vt struct {
	width, height int
	rows          [][]string
	row, col      int
	pendingWrap   bool
	writes        int
	out           strings.Builder
}

func newVT(width, height int) *vt {
	return &vt{width: width, height: height, rows: [][]string{make([]string, width)}}
}

func (v *vt) Size() (int, int) { return v.width, v.height }

func (v *vt) Write(p []byte) (int, error) {
	v.writes++
	v.out.Write(p)
	s := string(p)
	for i := 0; i < len(s); {
		switch s[i] {
		case 0x1b:
			i += v.escape(s[i:])
			continue
		case '\r':
			v.col, v.pendingWrap = 0, false
		case '\n':
			v.lineFeed()
		default:
			r, n := utf8.DecodeRuneInString(s[i:])
			v.put(string(r))
			i += n
			continue
		}
		i++
	}
	return len(p), nil
}

func (v *vt) ensure(row int) {
	for len(v.rows) <= row {
		v.rows = append(v.rows, make([]string, v.width))
	}
}

func (v *vt) lineFeed() {
	v.row++
	v.col = 0
	v.pendingWrap = false
	v.ensure(v.row)
}

func (v *vt) put(g string) {
	if v.pendingWrap {
		v.lineFeed()
	}
	w := text.StringWidth(g)
	if v.col+w > v.width {
		v.lineFeed()
	}
	v.rows[v.row][v.col] = g
	if w == 2 {
		v.rows[v.row][v.col+1] = wideTail
	}
	v.col += max(w, 1)
	if v.col >= v.width {
		v.col = v.width - 1
		v.pendingWrap = true
	}
}

// escape applies the sequence at the start of s and returns its length.
func (v *vt) escape(s string) int {
	if len(s) < 2 || s[1] != '[' {
		return 1
	}
	end := 2
	for end < len(s) && (s[end] < 0x40 || s[end] > 0x7e) {
		end++
	}
	if end >= len(s) {
		return len(s)
	}
	params := s[2:end]
	n := 1
	if params != "" {
		if x, err := strconv.Atoi(params); err == nil {
			n = x
		}
	}
	v.pendingWrap = false
	switch s[end] {
	case 'A':
		v.row = max(v.row-n, 0)
	case 'B':
		// Cursor down stops at the last existing row.
		v.row = min(v.row+n, len(v.rows)-1)
	case 'C':
		v.col = min(v.col+n, v.width-1)
	case 'D':
		v.col = max(v.col-n, 0)
	case 'H':
		v.row, v.col = 0, 0
	case 'J':
		if params == "2" || params == "3" {
			v.rows = [][]string{make([]string, v.width)}
			break
		}
		for c := v.col; c < v.width; c++ {
			v.rows[v.row][c] = ""
		}
		v.rows = v.rows[:v.row+1]
	}
	return end + 1
}

// lines returns the visible rows with trailing blanks trimmed and
// trailing empty rows dropped.
func (v *vt) lines() []string {
	out := make([]string, len(v.rows))
	for i, r := range v.rows {
		var b strings.Builder
		for _, g := range r {
			if g == wideTail {
				continue
			}
			if g == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(g)
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
