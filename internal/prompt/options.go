package prompt

import (
	"context"

	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/history"
	"github.com/dshills/promptline/internal/logging"
	"github.com/dshills/promptline/internal/renderer/core"
)

// CompletionItem is one entry of the completion list.
type CompletionItem struct {
	// ReplacementText replaces the word being completed.
	ReplacementText string

	// DisplayText is shown in the list. Defaults to ReplacementText.
	DisplayText string

	// FilterText is matched against the typed prefix. Defaults to
	// ReplacementText.
	FilterText string

	// ExtendedDescription, if set, is shown in the documentation box
	// next to the list while the item is selected.
	ExtendedDescription *Lazy[core.FormattedString]
}

func (c CompletionItem) display() string {
	if c.DisplayText != "" {
		return c.DisplayText
	}
	return c.ReplacementText
}

func (c CompletionItem) filter() string {
	if c.FilterText != "" {
		return c.FilterText
	}
	return c.ReplacementText
}

// CompletionFunc returns the completions for the word covered by replace.
// It must not retain or modify its arguments.
type CompletionFunc func(ctx context.Context, text string, caret int, replace text.Span) ([]CompletionItem, error)

// HighlightFunc returns the format spans for text. Text not covered by a
// span uses the default format.
type HighlightFunc func(ctx context.Context, text string) ([]core.FormatSpan, error)

// StreamFunc produces text to insert at the caret, one chunk at a time.
// The channel must be closed when the stream ends.
type StreamFunc func(ctx context.Context, text string, caret int) (<-chan string, error)

// SubmitFunc decides whether Enter submits text or inserts a newline.
type SubmitFunc func(text string, caret int) bool

// Theme holds the formats the prompt draws with.
type Theme struct {
	Prompt              core.Format
	Selection           core.Format
	CompletionBorder    core.Format
	CompletionSelected  core.Format
	DocumentationBorder core.Format
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Prompt:              core.NewFormat(core.ColorGreen).Bold(),
		Selection:           core.Format{}.Reverse(),
		CompletionBorder:    core.NewFormat(core.ColorBrightBlack),
		CompletionSelected:  core.Format{}.WithBackground(core.ColorBlue).WithForeground(core.ColorBrightWhite),
		DocumentationBorder: core.NewFormat(core.ColorBrightBlack),
	}
}

// Options configures a Prompt. The zero value is usable.
type Options struct {
	// Prompt is drawn before the first row. Defaults to "> ".
	Prompt core.FormattedString

	// Continuation is drawn before every further row and is padded or
	// cut to the width of Prompt. Defaults to blanks.
	Continuation core.FormattedString

	// Indent is inserted by Tab and pasted tabs.
	Indent string

	// MaxUndo bounds the undo history of each read.
	MaxUndo int

	Completion CompletionFunc
	Highlight  HighlightFunc
	Stream     StreamFunc
	Submit     SubmitFunc

	// History is navigated with Up and Down and receives every
	// submitted entry.
	History *history.Log

	// HistoryPrefixFilter recalls only entries that start with the text
	// typed before navigation began.
	HistoryPrefixFilter bool

	// CompletionRows is the number of visible completion items.
	CompletionRows int

	// CompletionMaxWidth clamps the width of the completion box.
	CompletionMaxWidth int

	// DocumentationMinWidth is the narrowest documentation box drawn.
	DocumentationMinWidth int

	// WindowsNewlines selects newline handling for consoles where a
	// newline keeps the cursor column.
	WindowsNewlines bool

	Theme  Theme
	Logger *logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Theme == (Theme{}) {
		o.Theme = DefaultTheme()
	}
	if o.Prompt.Text == "" {
		o.Prompt = core.Formatted("> ", o.Theme.Prompt)
	}
	if o.Indent == "" {
		o.Indent = "    "
	}
	if o.MaxUndo <= 0 {
		o.MaxUndo = 500
	}
	if o.CompletionRows <= 0 {
		o.CompletionRows = 8
	}
	if o.CompletionMaxWidth <= 0 {
		o.CompletionMaxWidth = 40
	}
	if o.DocumentationMinWidth <= 0 {
		o.DocumentationMinWidth = 16
	}
	if o.Logger == nil {
		o.Logger = logging.Null()
	}
	return o
}
