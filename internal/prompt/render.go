package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/engine/wrap"
	"github.com/dshills/promptline/internal/renderer/core"
	"github.com/dshills/promptline/internal/renderer/diff"
	"github.com/dshills/promptline/internal/renderer/screen"
)

// compose builds the screen for the session's current state. Overlays
// are left out for the final screen of a read.
func (s *session) compose(overlays bool) *screen.Screen {
	prompt := core.CellsFromFormatted(s.opts.Prompt)
	pw := prompt.Width()
	cont := core.PadRow(core.TruncateRow(core.CellsFromFormatted(s.opts.Continuation), pw, ""), pw, core.Format{})

	body := s.formatted()
	rows := make([]core.Row, 0, len(s.layout.Lines)+1)
	for i, line := range s.layout.Lines {
		prefix := cont
		if i == 0 {
			prefix = prompt
		}
		row := append(core.Row(nil), prefix...)
		row = append(row, core.CellsFromFormatted(body.Slice(line.StartOffset, line.Length()))...)
		rows = append(rows, row)
	}

	cursor := s.layout.Cursor
	if cursor.Row >= len(rows) {
		// The caret sits after a row that fills the width exactly.
		rows = append(rows, append(core.Row(nil), cont...))
	}
	prefix := prompt
	if cursor.Row > 0 {
		prefix = cont
	}
	cursor.Column += glyphCount(prefix)

	areas := []screen.Area{screen.NewArea(text.Coordinate{}, rows, false)}
	if overlays {
		areas = append(areas, s.overlays(pw)...)
	}
	return screen.New(s.width, s.height, cursor, areas...)
}

// glyphCount counts the cells of row that are not continuations, which
// is how screen.New measures cursor columns.
func glyphCount(row core.Row) int {
	n := 0
	for _, c := range row {
		if !c.IsContinuation {
			n++
		}
	}
	return n
}

// overlays returns the completion box and, when the selected item has a
// description and there is room to its right, the documentation box.
func (s *session) overlays(pw int) []screen.Area {
	c := s.completion
	if !c.open || c.window == nil || c.window.Len() == 0 {
		return nil
	}
	theme := s.opts.Theme

	visible := c.window.Visible()
	items := make([]core.FormattedString, len(visible))
	for i, it := range visible {
		items[i] = core.Plain(it.display())
	}
	box := screen.BuildBox(items, screen.BoxOptions{
		MaxWidth:       min(s.opts.CompletionMaxWidth, s.width),
		Padding:        1,
		Selected:       c.window.VisibleSelected(),
		SelectedFormat: theme.CompletionSelected,
		BorderFormat:   theme.CompletionBorder,
	})
	bw := screen.BoxWidth(box)

	top := s.layout.Cursor.Row + 1
	col := pw + s.visualColumn(c.start) - 2
	col = max(min(col, s.width-bw), 0)
	areas := []screen.Area{screen.NewArea(text.NewCoordinate(top, col), box, true)}

	it, ok := c.window.Selected()
	if !ok || it.ExtendedDescription == nil {
		return areas
	}
	desc, err := it.ExtendedDescription.Get(s.ctx)
	if err != nil {
		s.logger.Warn("description failed: %v", err)
		return areas
	}
	dcol := col + bw - 1
	dwidth := min(s.width-dcol, s.opts.CompletionMaxWidth*2)
	if desc.IsEmpty() || dwidth < s.opts.DocumentationMinWidth {
		return areas
	}

	var lines []core.FormattedString
	for _, wl := range wrap.Words(desc.Text, dwidth-4) {
		lines = append(lines, desc.Slice(wl.StartOffset, wl.Length()))
	}
	if limit := s.height - top - 2; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	doc := screen.BuildBox(lines, screen.BoxOptions{
		MaxWidth:     dwidth,
		Padding:      1,
		Selected:     -1,
		BorderFormat: theme.DocumentationBorder,
	})
	return append(areas, screen.NewArea(text.NewCoordinate(top, dcol), screen.Connect(box, doc), true))
}

// visualColumn returns the column of offset within its wrapped row.
func (s *session) visualColumn(offset int) int {
	coord := s.layout.CoordinateOf(offset)
	if coord.Row >= len(s.layout.Lines) {
		return 0
	}
	line := s.layout.Lines[coord.Row]
	runes := []rune(line.Text)
	n := min(max(offset-line.StartOffset, 0), len(runes))
	return text.StringWidth(string(runes[:n]))
}

// renderer writes screens to the console as diffs.
type renderer struct {
	out      io.Writer
	opts     diff.Options
	previous *screen.Screen

	// reserved is the number of terminal rows known to exist from the
	// prompt's first row down.
	reserved int
}

func newRenderer(out io.Writer, width int, opts diff.Options) *renderer {
	return &renderer{out: out, opts: opts, previous: screen.Empty(width), reserved: 1}
}

// draw brings the terminal from the previous screen to next in one
// write.
func (r *renderer) draw(next *screen.Screen) error {
	var b strings.Builder
	if next.Width != r.previous.Width {
		b.WriteString(diff.Erase(r.previous))
		r.previous = screen.Empty(next.Width)
		r.reserved = 1
	}
	if next.Height > r.reserved {
		// Cursor-down does not scroll; make the rows exist first.
		b.WriteString(diff.ScrollReserve(next.Height-1-r.previous.Cursor.Row, r.previous.Cursor.Column, r.opts))
		r.reserved = next.Height
	}
	b.WriteString(diff.Calculate(next, r.previous, text.Coordinate{}, r.opts))
	r.previous = next
	return r.write(b.String())
}

// clear erases the whole terminal and forgets what was drawn.
func (r *renderer) clear() error {
	r.previous = screen.Empty(r.previous.Width)
	r.reserved = 1
	return r.write(diff.EraseScreen)
}

// finish leaves the cursor at the start of the line below the prompt.
func (r *renderer) finish() error {
	p := r.previous
	return r.write(diff.Down(p.Height-1-p.Cursor.Row) + "\r\n")
}

func (r *renderer) write(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(r.out, s); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}
