package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/promptline/internal/config"
	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/history"
	"github.com/dshills/promptline/internal/input/key"
)

// console is a prompt.Console that records output.
type console struct {
	bytes.Buffer
}

func (c *console) Size() (int, int) { return 80, 24 }

func noEnv(string) (string, bool) { return "", false }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "promptline.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func keys(groups ...any) *key.SliceSource {
	src := key.NewSliceSource()
	for _, g := range groups {
		switch v := g.(type) {
		case string:
			src.Push(key.Type(v)...)
		case key.Press:
			src.Push(v)
		}
	}
	return src
}

var (
	enter = key.NewSpecial(key.KeyEnter, key.ModNone)
	tab   = key.NewSpecial(key.KeyTab, key.ModNone)
)

func TestServe(t *testing.T) {
	var handled []string
	a, err := New(context.Background(), Options{
		ConfigPath: writeConfig(t, "[history]\nbackend = \"memory\"\n"),
		LookupEnv:  noEnv,
		Handle: func(entry string) string {
			handled = append(handled, entry)
			return "=> " + entry
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()

	var out console
	src := keys("hello", enter, "abc", key.NewRune('c', key.ModCtrl), "he", tab, enter, key.NewRune('d', key.ModCtrl))
	if err := a.Serve(context.Background(), &out, src); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if strings.Join(handled, "|") != "hello|hello" {
		t.Errorf("handled = %q", handled)
	}
	if !strings.Contains(out.String(), "=> hello\n") {
		t.Errorf("output %q lacks the handler result", out.String())
	}
}

func TestFileHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	cfg := "[history]\nbackend = \"file\"\npath = \"" + filepath.ToSlash(path) + "\"\n"
	a, err := New(context.Background(), Options{ConfigPath: writeConfig(t, cfg), LookupEnv: noEnv})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Serve(context.Background(), &console{}, keys("select 1", enter)); err != nil {
		t.Fatal(err)
	}
	a.Shutdown()

	got, err := history.NewFileStore(path).Load(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "select 1" {
		t.Errorf("stored = %q", got)
	}
}

func TestNewOverrides(t *testing.T) {
	env := map[string]string{"PROMPTLINE_PROMPT": "env> ", "PROMPTLINE_HISTORY_BACKEND": "sqlite"}
	a, err := New(context.Background(), Options{
		HistoryBackend: config.HistoryNone,
		LogLevel:       "debug",
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()

	cfg := a.Config()
	if cfg.Prompt.Text != "env> " || cfg.History.Backend != config.HistoryNone || cfg.Logging.Level != "debug" {
		t.Errorf("config = %+v", cfg)
	}
	if a.history != nil || a.promptOpts.Completion != nil {
		t.Error("history or completion enabled without a history backend")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"invalid level", Options{LogLevel: "loud", HistoryBackend: "none"}, config.ErrInvalidConfig},
		{"missing config", Options{ConfigPath: "/no/such/promptline.toml"}, config.ErrFileNotFound},
		{"bad language", Options{ConfigPath: "", HistoryBackend: "none", LookupEnv: func(k string) (string, bool) {
			return "no-such-language", k == "PROMPTLINE_HIGHLIGHT_LANGUAGE"
		}}, ErrInitialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.LookupEnv == nil {
				tt.opts.LookupEnv = noEnv
			}
			if _, err := New(context.Background(), tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestScriptCallbacks(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "prompt.lua")
	src := `function complete(text, caret, word) return {"select"} end`
	if err := os.WriteFile(scriptPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := "[history]\nbackend = \"memory\"\n[script]\npath = \"" + filepath.ToSlash(scriptPath) + "\"\n"

	var handled []string
	a, err := New(context.Background(), Options{
		ConfigPath: writeConfig(t, cfg),
		LookupEnv:  noEnv,
		Handle:     func(e string) string { handled = append(handled, e); return "" },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()
	if err := a.Serve(context.Background(), &console{}, keys("s", tab, enter)); err != nil {
		t.Fatal(err)
	}
	if len(handled) != 1 || handled[0] != "select" {
		t.Errorf("handled = %q", handled)
	}
}

func TestHistoryCompleter(t *testing.T) {
	store := history.NewMemoryStore("select name from users", "select id from orders")
	log := history.NewLog(context.Background(), store, 10, nil)
	items, err := historyCompleter(log)(context.Background(), "", 0, text.Span{})
	if err != nil {
		t.Fatal(err)
	}
	var words []string
	for _, it := range items {
		words = append(words, it.ReplacementText)
	}
	want := "select|from|orders|name|users"
	if strings.Join(words, "|") != want {
		t.Errorf("words = %q, want %s", words, want)
	}
}

func TestHistoryCompleterMatchesWordBoundaries(t *testing.T) {
	store := history.NewMemoryStore("let my_var = 1")
	log := history.NewLog(context.Background(), store, 10, nil)
	items, err := historyCompleter(log)(context.Background(), "", 0, text.Span{})
	if err != nil {
		t.Fatal(err)
	}
	var words []string
	for _, it := range items {
		words = append(words, it.ReplacementText)
	}
	// The editor ends a word at '_', so "my_var" is offered as "var".
	if got := strings.Join(words, "|"); got != "let|var" {
		t.Errorf("words = %q, want let|var", got)
	}
}

func TestComponentError(t *testing.T) {
	base := errors.New("boom")
	err := NewComponentError("history", "open /tmp/h", base)
	if !errors.Is(err, base) || err.Error() != "history: open /tmp/h: boom" {
		t.Errorf("err = %v", err)
	}
	if got := NewComponentError("script", "", base).Error(); got != "script: boom" {
		t.Errorf("Error() = %q", got)
	}
}
