package document

import "context"

// Batch groups edits into a single undo step. See BeginBatch.
type Batch struct {
	d    *Document
	done bool
}

// BeginBatch starts a batch. Edits made until the matching End are
// recorded as one undo snapshot, and change listeners fire once when the
// outermost batch ends. Batches nest.
func (d *Document) BeginBatch() *Batch {
	d.batchDepth++
	return &Batch{d: d}
}

// End closes the batch. Calling End more than once has no effect.
func (b *Batch) End() {
	if b.done {
		return
	}
	b.done = true
	d := b.d
	d.batchDepth--
	if d.batchDepth == 0 && d.pending {
		d.commit()
	}
}

// InsertStreaming inserts chunks at the caret in arrival order until the
// channel closes or ctx is done. The whole stream is one undo step. On
// cancellation the text inserted so far stays in the document and the
// context error is returned.
func (d *Document) InsertStreaming(ctx context.Context, chunks <-chan string) error {
	return d.InsertStreamingFunc(ctx, chunks, nil)
}

// InsertStreamingFunc is InsertStreaming with a callback run after each
// chunk is inserted, while the batch is still open. The document's text
// and caret are current inside the callback.
func (d *Document) InsertStreamingFunc(ctx context.Context, chunks <-chan string, each func(chunk string)) error {
	b := d.BeginBatch()
	defer b.End()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return nil
			}
			d.InsertAtCaret(chunk)
			if each != nil {
				each(chunk)
			}
		}
	}
}
