// Package script lets a Lua file supply the prompt's callbacks.
//
// A script defines any of these global functions. Offsets are rune
// offsets counted from 0.
//
//	complete(text, caret, word)  -> list of strings or {text, display, filter, doc}
//	highlight(text)              -> list of {start, length, fg, bg, bold, italic, underline}
//	stream(text, caret)          -> string or list of strings
//	submit(text, caret)          -> boolean
//
// A completion's doc may be a string or a function returning one; the
// function runs the first time the description is shown.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/promptline/internal/logging"
)

// DefaultTimeout bounds a single callback.
const DefaultTimeout = 2 * time.Second

var (
	// ErrStateClosed is returned when calling into a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when a global is not a function.
	ErrNotFunction = errors.New("not a function")
)

// State is a Lua interpreter with only the base, table, string and math
// libraries. Calls are serialized.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	logger  *logging.Logger
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the time limit for each call.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger sends the script's print output to logger.
func WithLogger(logger *logging.Logger) StateOption {
	return func(s *State) {
		s.logger = logger
	}
}

// NewState creates a state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		logger:  logging.Null(),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	// The prompt owns the terminal.
	L.SetGlobal("print", L.NewFunction(s.print))
	s.L = L
	return s
}

func (s *State) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	s.logger.Info("%s", strings.Join(parts, "\t"))
	return 0
}

// DoFile runs a Lua file.
func (s *State) DoFile(path string) error {
	return s.do(func() error { return s.L.DoFile(path) })
}

// DoString runs Lua source.
func (s *State) DoString(src string) error {
	return s.do(func() error { return s.L.DoString(src) })
}

func (s *State) do(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Has reports whether the global name is a function.
func (s *State) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.L.GetGlobal(name).Type() == lua.LTFunction
}

// Call calls the global function name and returns its first result.
func (s *State) Call(ctx context.Context, name string, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	fn := s.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, fmt.Errorf("%s: %w", name, ErrNotFunction)
	}
	return s.call(ctx, fn, args...)
}

// CallValue calls fn, which must be a Lua function from this state.
func (s *State) CallValue(ctx context.Context, fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	if fn.Type() != lua.LTFunction {
		return lua.LNil, ErrNotFunction
	}
	return s.call(ctx, fn, args...)
}

func (s *State) call(ctx context.Context, fn lua.LValue, args ...lua.LValue) (ret lua.LValue, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			ret, err = lua.LNil, fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		return lua.LNil, err
	}
	ret = s.L.Get(-1)
	s.L.Pop(1)
	return ret, nil
}

// Close releases the interpreter. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
