package prompt

import (
	"context"
	"slices"

	"github.com/dshills/promptline/internal/engine/document"
	"github.com/dshills/promptline/internal/engine/wrap"
	"github.com/dshills/promptline/internal/input/key"
	"github.com/dshills/promptline/internal/logging"
	"github.com/dshills/promptline/internal/renderer/core"
)

// handler is one stage of the key pipeline.
type handler interface {
	keyDown(s *session, p *key.Press)
	keyUp(s *session, p *key.Press)
}

// session is the state of a single read.
type session struct {
	ctx     context.Context
	opts    *Options
	logger  *logging.Logger
	console Console
	doc     *document.Document

	width  int
	height int
	layout wrap.WordWrappedText

	completion *completionPane
	handlers   []handler

	submit bool
	eof    bool
	stream bool

	highlighted    bool
	highlightText  string
	highlightSpans []core.FormatSpan
}

func newSession(ctx context.Context, opts *Options, console Console, logger *logging.Logger) *session {
	s := &session{
		ctx:     ctx,
		opts:    opts,
		logger:  logger,
		console: console,
		doc: document.New(document.Options{
			Indent:  opts.Indent,
			MaxUndo: opts.MaxUndo,
		}),
		completion: newCompletionPane(),
	}
	s.handlers = []handler{s.completion, newCodePane(), newHistoryPane()}
	s.relayout()
	return s
}

// handle runs p through the key-down and key-up passes.
func (s *session) handle(p key.Press) {
	s.relayout()
	for _, h := range s.handlers {
		h.keyDown(s, &p)
	}
	s.relayout()
	for _, h := range s.handlers {
		h.keyUp(s, &p)
	}
	s.relayout()
}

// relayout reads the console size and rewraps the document.
func (s *session) relayout() {
	w, h := s.console.Size()
	s.width, s.height = max(w, 1), max(h, 1)
	s.layout = wrap.Characters(s.doc.Text(), s.doc.Caret(), s.codeWidth())
}

func (s *session) codeWidth() int {
	return max(s.width-s.opts.Prompt.Width(), 1)
}

// formatted returns the document text with highlight and selection
// formats applied.
func (s *session) formatted() core.FormattedString {
	fs := core.FormattedString{Text: s.doc.Text(), Spans: s.highlights()}
	if span, ok := s.doc.SelectionSpan(); ok {
		fs.Spans = append(slices.Clip(fs.Spans), core.FormatSpan{Span: span, Format: s.opts.Theme.Selection})
	}
	return fs
}

// highlights runs the highlight callback once per distinct text.
func (s *session) highlights() []core.FormatSpan {
	if s.opts.Highlight == nil {
		return nil
	}
	t := s.doc.Text()
	if s.highlighted && t == s.highlightText {
		return s.highlightSpans
	}
	spans, err := s.opts.Highlight(s.ctx, t)
	if err != nil {
		s.logger.Warn("highlight failed: %v", err)
		spans = nil
	}
	s.highlighted, s.highlightText, s.highlightSpans = true, t, spans
	return spans
}
