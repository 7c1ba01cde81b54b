package prompt

import (
	"context"
	"errors"
)

// ErrEOF is returned by ReadLine when the input ends or Ctrl+D is pressed
// on an empty prompt.
var ErrEOF = errors.New("prompt: end of input")

// Result is the outcome of a read.
type Result struct {
	// Text is the document text when the read ended.
	Text string

	// Submitted is false when the read was cancelled with Ctrl+C.
	Submitted bool

	ctx context.Context
}

// Context returns a context tied to the read. It is already cancelled for
// a cancelled read, so work started from the result can stop early.
func (r Result) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Cancelled reports whether the read was cancelled.
func (r Result) Cancelled() bool {
	return !r.Submitted
}

func submitted(ctx context.Context, text string) Result {
	return Result{Text: text, Submitted: true, ctx: ctx}
}

func cancelled(ctx context.Context, text string) Result {
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	return Result{Text: text, ctx: ctx}
}
