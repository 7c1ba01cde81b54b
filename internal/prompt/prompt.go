package prompt

import (
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/dshills/promptline/internal/input/key"
	"github.com/dshills/promptline/internal/renderer/diff"
	"github.com/google/uuid"
)

// Console is where the prompt draws.
type Console interface {
	io.Writer

	// Size returns the console size in columns and rows.
	Size() (width, height int)
}

// Prompt reads lines from a key source, drawing on a console. Only one
// read may run at a time.
type Prompt struct {
	console Console
	keys    key.Source
	opts    Options

	// backlog holds presses read while a stream was inserting.
	backlog []key.Press
}

// New creates a prompt.
func New(console Console, keys key.Source, opts Options) *Prompt {
	return &Prompt{
		console: console,
		keys:    keys,
		opts:    opts.withDefaults(),
	}
}

// Options returns the prompt's options with defaults applied.
func (p *Prompt) Options() Options {
	return p.opts
}

// SetTheme replaces the theme used by later reads.
func (p *Prompt) SetTheme(t Theme) {
	p.opts.Theme = t
}

// ReadLine reads one entry. It returns the submitted text, a cancelled
// Result after Ctrl+C, or ErrEOF when input ends or Ctrl+D is pressed on
// an empty prompt. Submitted entries are added to the history.
func (p *Prompt) ReadLine(ctx context.Context) (Result, error) {
	logger := p.opts.Logger.WithField("read", uuid.NewString())
	s := newSession(ctx, &p.opts, p.console, logger)
	r := newRenderer(p.console, s.width, diff.Options{WindowsNewlines: p.opts.WindowsNewlines})
	if h := p.opts.History; h != nil {
		h.Reset()
	}

	logger.Debug("read started")
	if err := r.draw(s.compose(true)); err != nil {
		return Result{}, err
	}

	for {
		press, err := p.next(ctx)
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			return Result{}, err
		}

		switch {
		case s.eof:
		case press.Key == key.KeyResize:
			s.relayout()
		case press.IsCtrl('c'):
			if err := p.end(s, r); err != nil {
				return Result{}, err
			}
			logger.Debug("read cancelled")
			return cancelled(ctx, s.doc.Text()), nil
		case press.IsCtrl('l'):
			if err := r.clear(); err != nil {
				return Result{}, err
			}
		default:
			s.handle(press)
		}

		if s.stream {
			s.stream = false
			if err := p.insertStream(s, r); err != nil {
				return Result{}, err
			}
		}

		switch {
		case s.eof:
			if err := p.end(s, r); err != nil {
				return Result{}, err
			}
			logger.Debug("read reached end of input")
			return Result{}, ErrEOF
		case s.submit:
			text := s.doc.Text()
			if err := p.end(s, r); err != nil {
				return Result{}, err
			}
			if h := p.opts.History; h != nil {
				h.Add(text)
			}
			logger.Debug("read submitted %d runes", utf8.RuneCountInString(text))
			return submitted(ctx, text), nil
		}

		if err := r.draw(s.compose(true)); err != nil {
			return Result{}, err
		}
	}
}

// end draws the final screen: no overlays, no selection, caret at the
// end of the text. The cursor is left on the line below.
func (p *Prompt) end(s *session, r *renderer) error {
	s.completion.close()
	s.doc.ClearSelection()
	s.doc.SetCaret(s.doc.Len())
	s.relayout()
	if err := r.draw(s.compose(false)); err != nil {
		return err
	}
	return r.finish()
}

func (p *Prompt) next(ctx context.Context) (key.Press, error) {
	if len(p.backlog) > 0 {
		press := p.backlog[0]
		p.backlog = p.backlog[1:]
		return press, nil
	}
	return p.keys.Next(ctx)
}

// insertStream inserts the output of the stream callback at the caret,
// redrawing after every chunk. Escape or Ctrl+C stops the stream; other
// keys pressed meanwhile are handled afterwards.
func (p *Prompt) insertStream(s *session, r *renderer) error {
	chunks, err := p.opts.Stream(s.ctx, s.doc.Text(), s.doc.Caret())
	if err != nil {
		s.logger.Warn("stream failed: %v", err)
		return nil
	}

	ctx, cancel := context.WithCancel(s.ctx)
	stop := p.watch(ctx, cancel)
	var drawErr error
	err = s.doc.InsertStreamingFunc(ctx, chunks, func(string) {
		s.relayout()
		if drawErr == nil {
			drawErr = r.draw(s.compose(false))
		}
	})
	p.backlog = append(p.backlog, stop()...)
	s.relayout()

	switch {
	case drawErr != nil:
		return drawErr
	case s.ctx.Err() != nil:
		return s.ctx.Err()
	case err != nil:
		s.logger.Debug("stream stopped: %v", err)
	}
	return nil
}

// watch reads keys in the background until ctx is done. Escape and
// Ctrl+C call cancel. The returned function stops the watcher and returns
// the other keys it read.
func (p *Prompt) watch(ctx context.Context, cancel context.CancelFunc) func() []key.Press {
	done := make(chan []key.Press, 1)
	go func() {
		var queued []key.Press
		defer func() { done <- queued }()
		for {
			press, err := p.keys.Next(ctx)
			if err != nil {
				return
			}
			if press.Is(key.KeyEscape, key.ModNone) || press.IsCtrl('c') {
				cancel()
				return
			}
			queued = append(queued, press)
		}
	}()
	return func() []key.Press {
		cancel()
		return <-done
	}
}
