package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment variable ApplyEnv reads.
const EnvPrefix = "PROMPTLINE_"

// envSetting binds one environment variable to a setting.
type envSetting struct {
	name string
	set  func(c *Config, v string) error
}

func envString(dst func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

func envInt(dst func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func envBool(dst func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst(c) = b
		return nil
	}
}

var envSettings = []envSetting{
	{"PROMPT", envString(func(c *Config) *string { return &c.Prompt.Text })},
	{"PROMPT_CONTINUATION", envString(func(c *Config) *string { return &c.Prompt.Continuation })},
	{"EDITOR_INDENT_WIDTH", envInt(func(c *Config) *int { return &c.Editor.IndentWidth })},
	{"EDITOR_INDENT_TABS", envBool(func(c *Config) *bool { return &c.Editor.IndentTabs })},
	{"EDITOR_MAX_UNDO", envInt(func(c *Config) *int { return &c.Editor.MaxUndo })},
	{"COMPLETION_ENABLED", envBool(func(c *Config) *bool { return &c.Completion.Enabled })},
	{"COMPLETION_ROWS", envInt(func(c *Config) *int { return &c.Completion.Rows })},
	{"HISTORY_BACKEND", envString(func(c *Config) *string { return &c.History.Backend })},
	{"HISTORY_PATH", envString(func(c *Config) *string { return &c.History.Path })},
	{"HISTORY_MAX_ENTRIES", envInt(func(c *Config) *int { return &c.History.MaxEntries })},
	{"HISTORY_PREFIX_FILTER", envBool(func(c *Config) *bool { return &c.History.PrefixFilter })},
	{"LOG_LEVEL", envString(func(c *Config) *string { return &c.Logging.Level })},
	{"LOG_FILE", envString(func(c *Config) *string { return &c.Logging.File })},
	{"SCRIPT", envString(func(c *Config) *string { return &c.Script.Path })},
	{"HIGHLIGHT_LANGUAGE", envString(func(c *Config) *string { return &c.Highlight.Language })},
	{"HIGHLIGHT_STYLE", envString(func(c *Config) *string { return &c.Highlight.Style })},
	{"HIGHLIGHT_TRUE_COLOR", envBool(func(c *Config) *bool { return &c.Highlight.TrueColor })},
}

// ApplyEnv overlays PROMPTLINE_* variables found by lookup, normally
// os.LookupEnv. An empty value is a value, not an unset variable.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		name := EnvPrefix + s.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.set(c, v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}
