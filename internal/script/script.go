package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/prompt"
	"github.com/dshills/promptline/internal/renderer/core"
)

// Script exposes the callbacks a Lua file defines.
type Script struct {
	state *State
}

// Load runs the Lua file at path.
func Load(path string, opts ...StateOption) (*Script, error) {
	s := &Script{state: NewState(opts...)}
	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return s, nil
}

// LoadString runs Lua source.
func LoadString(src string, opts ...StateOption) (*Script, error) {
	s := &Script{state: NewState(opts...)}
	if err := s.state.DoString(src); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return s, nil
}

// Close releases the interpreter.
func (s *Script) Close() error {
	return s.state.Close()
}

// Apply sets each callback the script defines on opts.
func (s *Script) Apply(opts *prompt.Options) {
	if fn := s.Completion(); fn != nil {
		opts.Completion = fn
	}
	if fn := s.Highlight(); fn != nil {
		opts.Highlight = fn
	}
	if fn := s.Stream(); fn != nil {
		opts.Stream = fn
	}
	if fn := s.Submit(); fn != nil {
		opts.Submit = fn
	}
}

// Completion returns the script's complete function, or nil.
func (s *Script) Completion() prompt.CompletionFunc {
	if !s.state.Has("complete") {
		return nil
	}
	return func(ctx context.Context, t string, caret int, replace text.Span) ([]prompt.CompletionItem, error) {
		runes := []rune(t)
		end := min(replace.End(), len(runes))
		word := string(runes[min(replace.Start, end):end])
		ret, err := s.state.Call(ctx, "complete", lua.LString(t), lua.LNumber(caret), lua.LString(word))
		if err != nil {
			return nil, err
		}
		return s.completionItems(ret)
	}
}

func (s *Script) completionItems(v lua.LValue) ([]prompt.CompletionItem, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		if v == lua.LNil {
			return nil, nil
		}
		return nil, fmt.Errorf("complete: want a table, got %s", v.Type())
	}
	var items []prompt.CompletionItem
	var err error
	tbl.ForEach(func(_, v lua.LValue) {
		if err != nil {
			return
		}
		switch v := v.(type) {
		case lua.LString:
			items = append(items, prompt.CompletionItem{ReplacementText: string(v)})
		case *lua.LTable:
			items = append(items, s.completionItem(v))
		default:
			err = fmt.Errorf("complete: unexpected item %s", v.Type())
		}
	})
	return items, err
}

func (s *Script) completionItem(t *lua.LTable) prompt.CompletionItem {
	it := prompt.CompletionItem{
		ReplacementText: lua.LVAsString(t.RawGetString("text")),
		DisplayText:     lua.LVAsString(t.RawGetString("display")),
		FilterText:      lua.LVAsString(t.RawGetString("filter")),
	}
	switch doc := t.RawGetString("doc").(type) {
	case lua.LString:
		it.ExtendedDescription = prompt.LazyValue(core.Plain(string(doc)))
	case *lua.LFunction:
		it.ExtendedDescription = prompt.NewLazy(func(ctx context.Context) (core.FormattedString, error) {
			ret, err := s.state.CallValue(ctx, doc)
			if err != nil {
				return core.FormattedString{}, err
			}
			return core.Plain(lua.LVAsString(ret)), nil
		})
	}
	return it
}

// Highlight returns the script's highlight function, or nil.
func (s *Script) Highlight() prompt.HighlightFunc {
	if !s.state.Has("highlight") {
		return nil
	}
	return func(ctx context.Context, t string) ([]core.FormatSpan, error) {
		ret, err := s.state.Call(ctx, "highlight", lua.LString(t))
		if err != nil {
			return nil, err
		}
		return formatSpans(ret)
	}
}

func formatSpans(v lua.LValue) ([]core.FormatSpan, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		if v == lua.LNil {
			return nil, nil
		}
		return nil, fmt.Errorf("highlight: want a table, got %s", v.Type())
	}
	var spans []core.FormatSpan
	var err error
	tbl.ForEach(func(_, v lua.LValue) {
		if err != nil {
			return
		}
		t, ok := v.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("highlight: unexpected span %s", v.Type())
			return
		}
		var f core.Format
		if f, err = format(t); err != nil {
			return
		}
		start := int(lua.LVAsNumber(t.RawGetString("start")))
		length := int(lua.LVAsNumber(t.RawGetString("length")))
		spans = append(spans, core.NewFormatSpan(start, length, f))
	})
	return spans, err
}

func format(t *lua.LTable) (core.Format, error) {
	var f core.Format
	for _, c := range []struct {
		field string
		set   func(core.Color)
	}{
		{"fg", func(c core.Color) { f = f.WithForeground(c) }},
		{"bg", func(c core.Color) { f = f.WithBackground(c) }},
	} {
		name, ok := t.RawGetString(c.field).(lua.LString)
		if !ok {
			continue
		}
		color, err := core.ParseColor(string(name))
		if err != nil {
			return core.Format{}, fmt.Errorf("highlight: %w", err)
		}
		c.set(color)
	}
	if lua.LVAsBool(t.RawGetString("bold")) {
		f = f.Bold()
	}
	if lua.LVAsBool(t.RawGetString("italic")) {
		f = f.Italic()
	}
	if lua.LVAsBool(t.RawGetString("underline")) {
		f = f.Underline()
	}
	return f, nil
}

// Stream returns the script's stream function, or nil. The script's
// result is delivered as chunks in order.
func (s *Script) Stream() prompt.StreamFunc {
	if !s.state.Has("stream") {
		return nil
	}
	return func(ctx context.Context, t string, caret int) (<-chan string, error) {
		ret, err := s.state.Call(ctx, "stream", lua.LString(t), lua.LNumber(caret))
		if err != nil {
			return nil, err
		}
		var chunks []string
		switch v := ret.(type) {
		case lua.LString:
			chunks = []string{string(v)}
		case *lua.LTable:
			v.ForEach(func(_, c lua.LValue) {
				chunks = append(chunks, lua.LVAsString(c))
			})
		}
		ch := make(chan string, len(chunks))
		for _, c := range chunks {
			ch <- c
		}
		close(ch)
		return ch, nil
	}
}

// Submit returns the script's submit function, or nil. A failing call
// submits.
func (s *Script) Submit() prompt.SubmitFunc {
	if !s.state.Has("submit") {
		return nil
	}
	return func(t string, caret int) bool {
		ret, err := s.state.Call(context.Background(), "submit", lua.LString(t), lua.LNumber(caret))
		if err != nil {
			s.state.logger.Warn("submit failed: %v", err)
			return true
		}
		return lua.LVAsBool(ret)
	}
}
