// Package highlight colors prompt text with chroma lexers and styles.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/promptline/internal/renderer/core"
)

// Errors returned by New.
var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrUnknownStyle    = errors.New("unknown style")
)

// DefaultStyle is used when Options.Style is empty.
const DefaultStyle = "monokai"

// Options configures a Highlighter.
type Options struct {
	// Language is a chroma lexer name or alias such as "go" or "sql".
	// When empty the language is guessed from the text.
	Language string

	// Style is a chroma style name.
	Style string

	// TrueColor keeps the style's RGB colors. Otherwise colors are mapped
	// to the nearest of the 16 ANSI palette colors.
	TrueColor bool
}

// Highlighter turns text into format spans.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	base      chroma.Colour
	trueColor bool
}

// New creates a highlighter.
func New(opts Options) (*Highlighter, error) {
	h := &Highlighter{trueColor: opts.TrueColor}
	if opts.Language != "" {
		l := lexers.Get(opts.Language)
		if l == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, opts.Language)
		}
		h.lexer = chroma.Coalesce(l)
	}

	name := opts.Style
	if name == "" {
		name = DefaultStyle
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	h.style = style
	h.base = style.Get(chroma.Text).Colour
	return h, nil
}

// Highlight returns the format spans for text. Runs of the style's plain
// text color are left unformatted.
func (h *Highlighter) Highlight(ctx context.Context, text string) ([]core.FormatSpan, error) {
	if text == "" {
		return nil, nil
	}
	lexer := h.lexer
	if lexer == nil {
		lexer = chroma.Coalesce(analyse(text))
	}
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}

	limit := utf8.RuneCountInString(text)
	var spans []core.FormatSpan
	pos := 0
	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if tok.Type == chroma.EOFType || pos >= limit {
			break
		}
		n := min(utf8.RuneCountInString(tok.Value), limit-pos)
		if f, ok := h.format(h.style.Get(tok.Type)); ok && n > 0 {
			spans = appendSpan(spans, core.NewFormatSpan(pos, n, f))
		}
		pos += n
	}
	return spans, nil
}

// format converts a style entry. It reports false for entries that look
// like plain text.
func (h *Highlighter) format(e chroma.StyleEntry) (core.Format, bool) {
	var f core.Format
	if e.Bold == chroma.Yes {
		f = f.Bold()
	}
	if e.Italic == chroma.Yes {
		f = f.Italic()
	}
	if e.Underline == chroma.Yes {
		f = f.Underline()
	}
	if e.Colour.IsSet() && e.Colour != h.base {
		c := core.ColorFromRGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
		if !h.trueColor {
			c = nearestANSI(c)
		}
		f = f.WithForeground(c)
	}
	return f, !f.IsDefault()
}

// appendSpan appends s, extending the last span instead when it is
// adjacent and has the same format.
func appendSpan(spans []core.FormatSpan, s core.FormatSpan) []core.FormatSpan {
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		if last.Span.End() == s.Span.Start && last.Format == s.Format {
			last.Span.Length += s.Span.Length
			return spans
		}
	}
	return append(spans, s)
}

func analyse(text string) chroma.Lexer {
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
