// Package document implements the editable text buffer of a prompt.
//
// A Document owns a rune buffer, a caret, an optional selection and an
// undo/redo history. All mutation goes through its methods; every public
// edit is atomic with respect to the cached string projection returned by
// Text and records exactly one undo snapshot, unless it runs inside a batch.
//
// # Batches
//
// A batch groups several edits into a single undo step and defers change
// notifications until the outermost batch ends:
//
//	b := doc.BeginBatch()
//	defer b.End()
//	doc.InsertAtCaret("foo")
//	doc.InsertAtCaret("bar")
//
// Batch.End is idempotent, so it is safe to both defer it and call it
// early on the happy path.
//
// # Offsets
//
// Offsets are rune indices. Out-of-range offsets are clamped; boundary
// searches reject a zero direction by panicking, as that is always a
// programming error.
package document
