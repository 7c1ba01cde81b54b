// Package config holds the prompt's settings and loads them from TOML or
// YAML files and PROMPTLINE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// History backends.
const (
	HistoryNone   = "none"
	HistoryMemory = "memory"
	HistoryFile   = "file"
	HistorySQLite = "sqlite"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config is the complete configuration.
type Config struct {
	Prompt     PromptConfig     `toml:"prompt" yaml:"prompt"`
	Editor     EditorConfig     `toml:"editor" yaml:"editor"`
	Completion CompletionConfig `toml:"completion" yaml:"completion"`
	History    HistoryConfig    `toml:"history" yaml:"history"`
	Theme      ThemeConfig      `toml:"theme" yaml:"theme"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Script     ScriptConfig     `toml:"script" yaml:"script"`
	Highlight  HighlightConfig  `toml:"highlight" yaml:"highlight"`
}

// PromptConfig sets the prompt strings.
type PromptConfig struct {
	Text         string `toml:"text" yaml:"text"`
	Continuation string `toml:"continuation" yaml:"continuation"`
}

// EditorConfig sets editing behavior.
type EditorConfig struct {
	IndentWidth int  `toml:"indent_width" yaml:"indent_width"`
	IndentTabs  bool `toml:"indent_tabs" yaml:"indent_tabs"`
	MaxUndo     int  `toml:"max_undo" yaml:"max_undo"`
}

// Indent returns the string Tab inserts.
func (e EditorConfig) Indent() string {
	if e.IndentTabs {
		return "\t"
	}
	return strings.Repeat(" ", e.IndentWidth)
}

// CompletionConfig sizes the completion list.
type CompletionConfig struct {
	Enabled               bool `toml:"enabled" yaml:"enabled"`
	Rows                  int  `toml:"rows" yaml:"rows"`
	MaxWidth              int  `toml:"max_width" yaml:"max_width"`
	DocumentationMinWidth int  `toml:"documentation_min_width" yaml:"documentation_min_width"`
}

// HistoryConfig selects where submitted entries are kept.
type HistoryConfig struct {
	Backend      string `toml:"backend" yaml:"backend"`
	Path         string `toml:"path" yaml:"path"`
	MaxEntries   int    `toml:"max_entries" yaml:"max_entries"`
	PrefixFilter bool   `toml:"prefix_filter" yaml:"prefix_filter"`
}

// LoggingConfig sets where and what is logged.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// ScriptConfig names a Lua script supplying callbacks.
type ScriptConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// HighlightConfig configures syntax highlighting. An empty Language
// disables it.
type HighlightConfig struct {
	Language  string `toml:"language" yaml:"language"`
	Style     string `toml:"style" yaml:"style"`
	TrueColor bool   `toml:"true_color" yaml:"true_color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prompt: PromptConfig{Text: "> "},
		Editor: EditorConfig{IndentWidth: 4, MaxUndo: 500},
		Completion: CompletionConfig{
			Enabled:               true,
			Rows:                  8,
			MaxWidth:              40,
			DocumentationMinWidth: 16,
		},
		History: HistoryConfig{
			Backend:    HistoryFile,
			MaxEntries: 1000,
		},
		Theme:     DefaultTheme(),
		Logging:   LoggingConfig{Level: "info"},
		Highlight: HighlightConfig{Style: "monokai"},
	}
}

// Validate reports every invalid setting, joined and wrapped with
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Editor.IndentWidth >= 1 && c.Editor.IndentWidth <= 16,
		"editor.indent_width: %d not in [1, 16]", c.Editor.IndentWidth)
	check(c.Editor.MaxUndo >= 1, "editor.max_undo: %d must be positive", c.Editor.MaxUndo)
	check(c.Completion.Rows >= 1, "completion.rows: %d must be positive", c.Completion.Rows)
	check(c.Completion.MaxWidth >= 8, "completion.max_width: %d is below 8", c.Completion.MaxWidth)
	check(c.Completion.DocumentationMinWidth >= 1,
		"completion.documentation_min_width: %d must be positive", c.Completion.DocumentationMinWidth)

	backends := []string{HistoryNone, HistoryMemory, HistoryFile, HistorySQLite}
	check(slices.Contains(backends, c.History.Backend),
		"history.backend: %q is not one of %s", c.History.Backend, strings.Join(backends, ", "))
	check(c.History.MaxEntries >= 1, "history.max_entries: %d must be positive", c.History.MaxEntries)

	levels := []string{"debug", "info", "warn", "warning", "error"}
	check(slices.Contains(levels, strings.ToLower(c.Logging.Level)),
		"logging.level: unknown level %q", c.Logging.Level)

	if _, err := c.Theme.Theme(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
