package key

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// Source yields key presses. Next blocks until a press is available, the
// source is exhausted (io.EOF) or ctx is done.
type Source interface {
	Next(ctx context.Context) (Press, error)
}

// PasteThreshold is the number of printable characters a single read
// must yield to be delivered as one paste.
const PasteThreshold = 4

// ReaderSource decodes key presses from a terminal input stream.
type ReaderSource struct {
	chunks  chan []byte
	errc    chan error
	resize  <-chan struct{}
	decoder Decoder
	queue   []Press
	start   sync.Once
	r       io.Reader
}

// ReaderOption configures a ReaderSource.
type ReaderOption func(*ReaderSource)

// WithResize makes the source report a KeyResize press whenever ch
// receives.
func WithResize(ch <-chan struct{}) ReaderOption {
	return func(s *ReaderSource) {
		s.resize = ch
	}
}

// NewReaderSource creates a source reading from r. Reading starts on the
// first call to Next and continues in a background goroutine, since reads
// from a terminal cannot be interrupted.
func NewReaderSource(r io.Reader, opts ...ReaderOption) *ReaderSource {
	s := &ReaderSource{
		r:      r,
		chunks: make(chan []byte),
		errc:   make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReaderSource) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.chunks <- chunk
		}
		if err != nil {
			s.errc <- err
			return
		}
	}
}

// Next returns the next key press.
func (s *ReaderSource) Next(ctx context.Context) (Press, error) {
	s.start.Do(func() { go s.readLoop() })
	for len(s.queue) == 0 {
		select {
		case <-ctx.Done():
			return Press{}, ctx.Err()
		case <-s.resize:
			return NewSpecial(KeyResize, ModNone), nil
		case chunk := <-s.chunks:
			s.queue = append(s.queue, batch(s.decoder.Decode(chunk))...)
		case err := <-s.errc:
			// Keep reporting the error on later calls.
			s.errc <- err
			if errors.Is(err, io.EOF) {
				return Press{}, io.EOF
			}
			return Press{}, err
		}
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	return p, nil
}

// batch folds the presses of a single read into one paste when they are
// all typing keys and at least PasteThreshold of them are characters.
func batch(presses []Press) []Press {
	chars := 0
	for _, p := range presses {
		switch {
		case p.IsChar():
			chars++
		case p.Is(KeyEnter, ModNone), p.Is(KeyTab, ModNone), p.Key == KeyPaste:
		default:
			return presses
		}
	}
	if len(presses) < 2 || (chars < PasteThreshold && !hasPaste(presses)) {
		return presses
	}

	var b strings.Builder
	for _, p := range presses {
		switch p.Key {
		case KeyRune:
			b.WriteRune(p.Rune)
		case KeyEnter:
			b.WriteByte('\n')
		case KeyTab:
			b.WriteByte('\t')
		case KeyPaste:
			b.WriteString(p.Text)
		}
	}
	return []Press{NewPaste(b.String())}
}

func hasPaste(presses []Press) bool {
	for _, p := range presses {
		if p.Key == KeyPaste {
			return true
		}
	}
	return false
}

// SliceSource replays a fixed list of presses, then reports io.EOF.
type SliceSource struct {
	presses []Press
}

// NewSliceSource creates a source replaying presses in order.
func NewSliceSource(presses ...Press) *SliceSource {
	return &SliceSource{presses: presses}
}

// Push appends presses to the end of the script.
func (s *SliceSource) Push(presses ...Press) {
	s.presses = append(s.presses, presses...)
}

// Remaining returns the number of presses not yet replayed.
func (s *SliceSource) Remaining() int {
	return len(s.presses)
}

// Next returns the next scripted press.
func (s *SliceSource) Next(ctx context.Context) (Press, error) {
	if err := ctx.Err(); err != nil {
		return Press{}, err
	}
	if len(s.presses) == 0 {
		return Press{}, io.EOF
	}
	p := s.presses[0]
	s.presses = s.presses[1:]
	return p, nil
}
