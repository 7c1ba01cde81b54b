// Package prompt implements ReadLine: an in-line, multi-line prompt with
// selection, undo, completion and history that redraws only the cells
// that changed.
//
// # Pipeline
//
// Every key press runs through three handlers in a fixed order, twice:
//
//   - completion pane: the completion list and its documentation box
//   - code pane: edits the document
//   - history pane: recalls earlier entries on Up and Down
//
// The key-down pass edits. The wrap layout is then recomputed and the
// key-up pass reacts to the new text and caret, which is where the
// completion list opens, filters and closes. A handler that acts on a
// press marks it Handled; later handlers still see it and skip their own
// work.
//
// # Rendering
//
// After each press the prompt assembles a screen from the code area and
// any open overlays and writes the diff against the previous screen in a
// single Write.
package prompt
