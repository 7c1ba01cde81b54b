// Package terminal puts the controlling terminal in raw mode and adapts it
// to the prompt's Console and key Source.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/mattn/go-colorable"
	"golang.org/x/term"

	"github.com/dshills/promptline/internal/input/key"
)

// ErrNotTerminal is returned by Open when input is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Fallback size when the terminal does not report one.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

const (
	bracketedPasteOn  = "\x1b[?2004h"
	bracketedPasteOff = "\x1b[?2004l"
)

// Terminal is a terminal in raw mode.
type Terminal struct {
	in    *os.File
	out   *os.File
	w     io.Writer
	state *term.State

	resize     chan struct{}
	stopResize func()

	mu     sync.Mutex
	closed bool
}

// Open switches in to raw mode, enables bracketed paste and starts
// watching for size changes. Close restores the terminal.
func Open(in, out *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("%s: %w", in.Name(), ErrNotTerminal)
	}
	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	if err := enableVT(in, out); err != nil {
		term.Restore(int(in.Fd()), state)
		return nil, fmt.Errorf("enable virtual terminal: %w", err)
	}

	t := &Terminal{
		in:     in,
		out:    out,
		w:      newWriter(out),
		state:  state,
		resize: make(chan struct{}, 1),
	}
	t.stopResize = watchResize(t, t.resize)
	if _, err := io.WriteString(t.w, bracketedPasteOn); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// newWriter returns the output writer. Raw mode turns off output
// processing, so outside Windows a bare "\n" becomes "\r\n".
func newWriter(out *os.File) io.Writer {
	w := colorable.NewColorable(out)
	if runtime.GOOS == "windows" {
		return w
	}
	return &crlfWriter{w: w}
}

// WindowsNewlines reports whether the console keeps the cursor column on
// "\n", as Windows consoles do.
func (t *Terminal) WindowsNewlines() bool {
	return runtime.GOOS == "windows"
}

// Write writes to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// Size returns the terminal size, or the default size when it is not
// known.
func (t *Terminal) Size() (width, height int) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// Keys returns a key source reading from the terminal. It reports a
// resize press when the terminal size changes.
func (t *Terminal) Keys() *key.ReaderSource {
	return key.NewReaderSource(t.in, key.WithResize(t.resize))
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.stopResize != nil {
		t.stopResize()
	}
	_, werr := io.WriteString(t.w, bracketedPasteOff)
	if err := term.Restore(int(t.in.Fd()), t.state); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return werr
}

// notify sends on ch without blocking; one pending resize is enough.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
