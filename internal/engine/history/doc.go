// Package history provides undo/redo for the document model.
//
// Unlike a command log, the history records whole-document snapshots:
// each entry holds the text, the caret and the selection as they were
// after an edit completed.
//
//	h := history.New(history.Snapshot{}, 500)
//	h.Track(history.Snapshot{Text: "a", Caret: 1})
//	prev, ok := h.Undo() // the empty document
//
// # Invariants
//
//   - Two consecutive snapshots never hold the same text. Tracking a
//     snapshot whose text equals the current one only refreshes the
//     caret and selection of the current entry.
//   - Tracking after an undo discards every redo entry past the cursor.
//   - The number of entries is bounded; the oldest ones are dropped.
package history
