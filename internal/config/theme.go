package config

import (
	"fmt"

	"github.com/dshills/promptline/internal/prompt"
	"github.com/dshills/promptline/internal/renderer/core"
)

// StyleConfig describes a format. Colors are names ("darkorange"), hex
// values ("#ff8700") or palette indices ("208").
type StyleConfig struct {
	Fg        string `toml:"fg" yaml:"fg"`
	Bg        string `toml:"bg" yaml:"bg"`
	Bold      bool   `toml:"bold" yaml:"bold"`
	Italic    bool   `toml:"italic" yaml:"italic"`
	Underline bool   `toml:"underline" yaml:"underline"`
	Reverse   bool   `toml:"reverse" yaml:"reverse"`
}

// Format converts the style.
func (s StyleConfig) Format() (core.Format, error) {
	fg, err := core.ParseColor(s.Fg)
	if err != nil {
		return core.Format{}, err
	}
	bg, err := core.ParseColor(s.Bg)
	if err != nil {
		return core.Format{}, err
	}
	f := core.Format{}.WithForeground(fg).WithBackground(bg)
	if s.Bold {
		f = f.Bold()
	}
	if s.Italic {
		f = f.Italic()
	}
	if s.Underline {
		f = f.Underline()
	}
	if s.Reverse {
		f = f.Reverse()
	}
	return f, nil
}

// ThemeConfig holds the prompt's formats.
type ThemeConfig struct {
	Prompt              StyleConfig `toml:"prompt" yaml:"prompt"`
	Selection           StyleConfig `toml:"selection" yaml:"selection"`
	CompletionBorder    StyleConfig `toml:"completion_border" yaml:"completion_border"`
	CompletionSelected  StyleConfig `toml:"completion_selected" yaml:"completion_selected"`
	DocumentationBorder StyleConfig `toml:"documentation_border" yaml:"documentation_border"`
}

// DefaultTheme matches prompt.DefaultTheme.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Prompt:              StyleConfig{Fg: "green", Bold: true},
		Selection:           StyleConfig{Reverse: true},
		CompletionBorder:    StyleConfig{Fg: "8"},
		CompletionSelected:  StyleConfig{Fg: "15", Bg: "4"},
		DocumentationBorder: StyleConfig{Fg: "8"},
	}
}

// Theme converts the theme.
func (t ThemeConfig) Theme() (prompt.Theme, error) {
	var out prompt.Theme
	for _, f := range []struct {
		name  string
		style StyleConfig
		dst   *core.Format
	}{
		{"prompt", t.Prompt, &out.Prompt},
		{"selection", t.Selection, &out.Selection},
		{"completion_border", t.CompletionBorder, &out.CompletionBorder},
		{"completion_selected", t.CompletionSelected, &out.CompletionSelected},
		{"documentation_border", t.DocumentationBorder, &out.DocumentationBorder},
	} {
		format, err := f.style.Format()
		if err != nil {
			return prompt.Theme{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = format
	}
	return out, nil
}

// PromptOptions converts the settings the prompt reads directly.
// Callbacks, history and logger are left for the caller.
func (c *Config) PromptOptions() (prompt.Options, error) {
	theme, err := c.Theme.Theme()
	if err != nil {
		return prompt.Options{}, err
	}
	return prompt.Options{
		Prompt:                core.Formatted(c.Prompt.Text, theme.Prompt),
		Continuation:          core.Plain(c.Prompt.Continuation),
		Indent:                c.Editor.Indent(),
		MaxUndo:               c.Editor.MaxUndo,
		HistoryPrefixFilter:   c.History.PrefixFilter,
		CompletionRows:        c.Completion.Rows,
		CompletionMaxWidth:    c.Completion.MaxWidth,
		DocumentationMinWidth: c.Completion.DocumentationMinWidth,
		Theme:                 theme,
	}, nil
}
